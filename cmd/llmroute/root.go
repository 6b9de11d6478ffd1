package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// version is injected at build time via -ldflags.
var version = "dev"

var (
	verbose bool
	quiet   bool
)

var logger = log.New(os.Stderr)

var rootCmd = &cobra.Command{
	Use:           "llmroute",
	Short:         "Tiered model selection and dispatch for LLM processing",
	Long:          "llmroute selects a model per request from a tier-keyed catalog, dispatches operation-specific prompts to OpenAI-compatible endpoints, and tracks per-user quota usage.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case quiet:
			logger.SetLevel(log.ErrorLevel)
		case verbose:
			logger.SetLevel(log.DebugLevel)
		default:
			logger.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Errors only")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(quotaCmd)
}

// printJSON writes v to stdout as indented JSON, matching the output
// contract of the older scripts.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// fail prints a JSON error object and exits non-zero.
func fail(err error) {
	printJSON(map[string]any{
		"success": false,
		"error":   err.Error(),
	})
	os.Exit(1)
}
