package cmd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	recordsDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitdecode_records_decoded_total",
		Help: "The total number of data messages decoded across all files",
	})

	definitionsSeen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitdecode_definitions_seen_total",
		Help: "The total number of definition messages installed across all files",
	})

	decodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitdecode_decode_failures_total",
		Help: "The total number of files that failed to decode",
	})

	decodeErrorsByKind = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitdecode_decode_errors_total",
		Help: "The total number of decode failures, labelled by error kind",
	}, []string{"kind"})

	decodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fitdecode_decode_duration_seconds",
		Help:    "Time spent decoding a single FIT file",
		Buckets: prometheus.DefBuckets,
	})
)

func startMetricsServer(addr string) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.WithField("addr", addr).Debug("starting metrics server")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.WithError(err).Error("metrics server stopped")
		}
	}()
}
