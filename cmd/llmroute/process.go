package main

import (
	"os"

	ai "github.com/secondbrainhq/llmrouter"
	"github.com/secondbrainhq/llmrouter/model"
	"github.com/secondbrainhq/llmrouter/provider/openrouter"
	"github.com/secondbrainhq/llmrouter/quota"
	"github.com/spf13/cobra"
)

var (
	processContent   string
	processOperation string
	processTier      string
	processBudget    float64
	processUserID    string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process one content item and print the result as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		op, tier, err := parseOpTier(processOperation, processTier)
		if err != nil {
			fail(err)
		}

		r, cleanup, err := buildRouter(processUserID != "")
		if err != nil {
			fail(err)
		}
		defer cleanup()

		opts := []ai.Option{ai.WithTier(tier), ai.WithBudget(processBudget)}
		if processUserID != "" {
			opts = append(opts, ai.WithUser(processUserID))
		}

		res := r.Process(cmd.Context(), processContent, op, opts...)
		printJSON(res)
		if !res.Success {
			os.Exit(1)
		}
	},
}

func init() {
	processCmd.Flags().StringVar(&processContent, "content", "", "Content to process")
	processCmd.Flags().StringVar(&processOperation, "operation", "categorize", "Operation: categorize, summarize, extract_insights, generate_tags")
	processCmd.Flags().StringVar(&processTier, "user-tier", "free", "User subscription tier: free, pro, premium")
	processCmd.Flags().Float64Var(&processBudget, "budget", 0, "Budget ceiling in USD (0 = none)")
	processCmd.Flags().StringVar(&processUserID, "user-id", "", "User ID for quota enforcement")
	processCmd.MarkFlagRequired("content")
}

// parseOpTier validates the operation and tier flags.
func parseOpTier(opFlag, tierFlag string) (ai.Operation, ai.Tier, error) {
	op, err := ai.ParseOperation(opFlag)
	if err != nil {
		return "", "", err
	}
	tier, err := ai.ParseTier(tierFlag)
	if err != nil {
		return "", "", err
	}
	return op, tier, nil
}

// buildRouter assembles the router from process configuration. The
// quota store is only opened when enforcement was requested. The
// returned cleanup releases it.
func buildRouter(withQuota bool) (*ai.Router, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	key, err := cfg.APIKey()
	if err != nil {
		return nil, nil, err
	}

	client := openrouter.New(key, openrouter.WithBaseURL(cfg.BaseURL))

	ropts := []ai.RouterOption{
		ai.WithRequestTimeout(cfg.Timeout),
		ai.WithLogger(logger),
	}
	cleanup := func() {}

	if withQuota {
		qm, err := quota.Open(cfg.QuotaDB)
		if err != nil {
			return nil, nil, err
		}
		ropts = append(ropts, ai.WithQuota(qm))
		cleanup = func() { qm.Close() }
	}

	return ai.New(client, model.Default(), ropts...), cleanup, nil
}
