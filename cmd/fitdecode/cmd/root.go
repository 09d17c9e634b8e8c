package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	metricsAddr string

	logger = logrus.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fitdecode",
	Short: "fitdecode - FIT binary fitness file decoder",
	Long: `fitdecode parses FIT (Flexible and Interoperable Data Transfer)
binary files and prints their decoded records.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetLevel(logrus.WarnLevel)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		if metricsAddr != "" {
			startMetricsServer(metricsAddr)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug-level decoder tracing")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve prometheus metrics at host:port/metrics")
	rootCmd.AddCommand(decodeCmd)
}
