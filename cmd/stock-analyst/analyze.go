package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-analyst/internal/analyst"
	"github.com/trogers1052/stock-analyst/internal/display"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Run one analysis and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		publish, _ := cmd.Flags().GetBool("publish")

		a, err := newApp(cmd.Context(), publish)
		if err != nil {
			return err
		}
		defer a.Close()

		outcome := a.service.Analyze(cmd.Context(), tickerArg(args))

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if outcome.Status == analyst.StatusFatal {
				if err := enc.Encode(outcome.ErrorResponse()); err != nil {
					return err
				}
				return outcome.Err
			}
			return enc.Encode(outcome.Response)
		}

		if outcome.Status == analyst.StatusFatal {
			fmt.Fprintln(os.Stderr, display.Error(outcome.ErrorResponse()))
			return outcome.Err
		}
		fmt.Print(display.Analysis(outcome.Response, outcome.Warning))
		return nil
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt [ticker]",
	Short: "Print the briefing prompt without calling the generation service",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		briefing, err := a.service.Prepare(cmd.Context(), analyst.NormalizeTicker(tickerArg(args)))
		if err != nil {
			return err
		}
		fmt.Println(briefing.Prompt)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "print the response body as JSON")
	analyzeCmd.Flags().Bool("publish", false, "also publish the result event to Kafka")
}

func tickerArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
