package main

import (
	"bufio"
	"os"

	ai "github.com/secondbrainhq/llmrouter"
	"github.com/spf13/cobra"
)

var (
	batchOperation string
	batchTier      string
	batchBudget    float64
	batchUserID    string
	batchStdin     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [content ...]",
	Short: "Process many content items and print a JSON result array",
	Long:  "Items are passed as arguments, or one per line on stdin with --stdin. Results preserve input order; a failed item never aborts its siblings.",
	Run: func(cmd *cobra.Command, args []string) {
		op, tier, err := parseOpTier(batchOperation, batchTier)
		if err != nil {
			fail(err)
		}

		contents := args
		if batchStdin {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if line := scanner.Text(); line != "" {
					contents = append(contents, line)
				}
			}
			if err := scanner.Err(); err != nil {
				fail(err)
			}
		}
		if len(contents) == 0 {
			fail(ai.NewConfigError("no content items supplied"))
		}

		r, cleanup, err := buildRouter(batchUserID != "")
		if err != nil {
			fail(err)
		}
		defer cleanup()

		opts := []ai.Option{ai.WithTier(tier), ai.WithBudget(batchBudget)}
		if batchUserID != "" {
			opts = append(opts, ai.WithUser(batchUserID))
		}

		results := r.ProcessBatch(cmd.Context(), contents, op, opts...)
		printJSON(results)

		for _, res := range results {
			if res.Success {
				return
			}
		}
		os.Exit(1) // every item failed
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchOperation, "operation", "categorize", "Operation: categorize, summarize, extract_insights, generate_tags")
	batchCmd.Flags().StringVar(&batchTier, "user-tier", "free", "User subscription tier: free, pro, premium")
	batchCmd.Flags().Float64Var(&batchBudget, "budget", 0, "Budget ceiling in USD (0 = none)")
	batchCmd.Flags().StringVar(&batchUserID, "user-id", "", "User ID for quota enforcement")
	batchCmd.Flags().BoolVar(&batchStdin, "stdin", false, "Read items from stdin, one per line")
}
