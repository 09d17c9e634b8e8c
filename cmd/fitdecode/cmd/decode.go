package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/thomas-god/fitdecode/fit"
)

var asJSON bool

var decodeCmd = &cobra.Command{
	Use:   "decode <path>",
	Short: "Decode a FIT file and print its records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open fit file: %w", err)
		}
		defer f.Close()

		spinner, _ := pterm.DefaultSpinner.Start("Decoding " + path)

		start := time.Now()
		decoded, err := fit.Decode(f, fit.WithLogger(logger))
		decodeDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			spinner.Fail("Decode failed: ", err)
			decodeFailures.Inc()
			var decErr *fit.DecodeError
			if errors.As(err, &decErr) {
				decodeErrorsByKind.WithLabelValues(decErr.Kind.String()).Inc()
			} else {
				decodeErrorsByKind.WithLabelValues("unknown").Inc()
			}
			return err
		}
		recordsDecoded.Add(float64(len(decoded.Messages)))
		definitionsSeen.Add(float64(decoded.DefinitionCount))
		spinner.Success()

		if asJSON {
			return printJSON(decoded)
		}
		printSummary(decoded)
		return nil
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&asJSON, "json", false, "print the decoded file as JSON instead of a human-readable summary")
}

func printJSON(f *fit.File) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

func printSummary(f *fit.File) {
	pterm.DefaultSection.Println("FIT file header")
	pterm.Info.Printfln("protocol=%d profile=%d data_size=%d bytes", f.Header.Protocol, f.Header.Profile, f.Header.DataSize)

	pterm.DefaultSection.Println("Decoded messages")
	counts := make(map[string]int)
	for _, m := range f.Messages {
		counts[m.GlobalMessage.String()]++
	}

	rows := pterm.TableData{{"message", "count"}}
	for name, count := range counts {
		rows = append(rows, []string{name, fmt.Sprintf("%d", count)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Error.Println("failed to render summary table:", err)
	}
}
