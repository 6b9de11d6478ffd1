package main

import (
	"context"
	"errors"

	ai "github.com/secondbrainhq/llmrouter"
	"github.com/secondbrainhq/llmrouter/quota"
	"github.com/spf13/cobra"
)

var (
	quotaUserID    string
	quotaTier      string
	quotaTokens    int
	quotaCost      float64
	quotaOperation string
	quotaModel     string
	quotaLimit     int
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Inspect and maintain per-user quota state",
}

var quotaCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show a user's current quota, creating it if missing",
	Run: func(cmd *cobra.Command, args []string) {
		withQuotaManager(cmd.Context(), func(ctx context.Context, qm *quota.Manager) (any, error) {
			info, err := qm.Get(ctx, quotaUserID)
			if errors.Is(err, quota.ErrUserNotFound) {
				tier, terr := ai.ParseTier(quotaTier)
				if terr != nil {
					return nil, terr
				}
				info, err = qm.EnsureUser(ctx, quotaUserID, tier)
			}
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": true, "quota": info}, nil
		})
	},
}

var quotaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or reinitialize a user's quota entry",
	Run: func(cmd *cobra.Command, args []string) {
		withQuotaManager(cmd.Context(), func(ctx context.Context, qm *quota.Manager) (any, error) {
			tier, err := ai.ParseTier(quotaTier)
			if err != nil {
				return nil, err
			}
			info, err := qm.EnsureUser(ctx, quotaUserID, tier)
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": true, "quota": info}, nil
		})
	},
}

var quotaUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Record usage against a user's quota",
	Run: func(cmd *cobra.Command, args []string) {
		withQuotaManager(cmd.Context(), func(ctx context.Context, qm *quota.Manager) (any, error) {
			op, err := ai.ParseOperation(quotaOperation)
			if err != nil {
				return nil, err
			}
			if err := qm.RecordUsage(ctx, quotaUserID, op, quotaModel, quotaTokens, quotaCost); err != nil {
				return nil, err
			}
			return map[string]any{"success": true}, nil
		})
	},
}

var quotaResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a user's quota for a new billing period",
	Run: func(cmd *cobra.Command, args []string) {
		withQuotaManager(cmd.Context(), func(ctx context.Context, qm *quota.Manager) (any, error) {
			if err := qm.Reset(ctx, quotaUserID); err != nil {
				return nil, err
			}
			return map[string]any{"success": true}, nil
		})
	},
}

var quotaHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a user's recent usage records",
	Run: func(cmd *cobra.Command, args []string) {
		withQuotaManager(cmd.Context(), func(ctx context.Context, qm *quota.Manager) (any, error) {
			records, err := qm.History(ctx, quotaUserID, quotaLimit)
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": true, "history": records}, nil
		})
	},
}

var quotaSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate quota usage across all users by tier",
	Run: func(cmd *cobra.Command, args []string) {
		withQuotaManager(cmd.Context(), func(ctx context.Context, qm *quota.Manager) (any, error) {
			summary, err := qm.Summary(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": true, "summary": summary}, nil
		})
	},
}

// withQuotaManager opens the quota database, runs fn, and prints its
// JSON result. Any error becomes a JSON error object and a non-zero
// exit.
func withQuotaManager(ctx context.Context, fn func(context.Context, *quota.Manager) (any, error)) {
	cfg, err := loadConfig()
	if err != nil {
		fail(err)
	}
	qm, err := quota.Open(cfg.QuotaDB)
	if err != nil {
		fail(err)
	}
	defer qm.Close()

	out, err := fn(ctx, qm)
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

func init() {
	quotaCmd.PersistentFlags().StringVar(&quotaUserID, "user-id", "", "User ID")
	quotaCmd.PersistentFlags().StringVar(&quotaTier, "tier", "free", "User subscription tier: free, pro, premium")

	quotaUpdateCmd.Flags().IntVar(&quotaTokens, "tokens", 0, "Tokens used")
	quotaUpdateCmd.Flags().Float64Var(&quotaCost, "cost", 0, "Cost incurred in USD")
	quotaUpdateCmd.Flags().StringVar(&quotaOperation, "operation", "categorize", "Operation performed")
	quotaUpdateCmd.Flags().StringVar(&quotaModel, "model", "unknown", "Model used")
	quotaHistoryCmd.Flags().IntVar(&quotaLimit, "limit", 100, "Maximum records to return")

	// Every subcommand except summary operates on one user.
	for _, c := range []*cobra.Command{quotaCheckCmd, quotaCreateCmd, quotaUpdateCmd, quotaResetCmd, quotaHistoryCmd} {
		c.PreRun = func(cmd *cobra.Command, args []string) {
			if quotaUserID == "" {
				fail(ai.NewConfigError("--user-id is required"))
			}
		}
	}

	quotaCmd.AddCommand(quotaCheckCmd)
	quotaCmd.AddCommand(quotaCreateCmd)
	quotaCmd.AddCommand(quotaUpdateCmd)
	quotaCmd.AddCommand(quotaResetCmd)
	quotaCmd.AddCommand(quotaHistoryCmd)
	quotaCmd.AddCommand(quotaSummaryCmd)
}
