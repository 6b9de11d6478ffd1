package main

import (
	"fmt"
	"os"
	"strings"

	ai "github.com/secondbrainhq/llmrouter"
	"github.com/secondbrainhq/llmrouter/provider/openrouter"
	"github.com/spf13/cobra"
)

var (
	askModel     string
	askMaxTokens int
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Send one free-text prompt and print the raw response",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		key, err := cfg.APIKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

		client := openrouter.New(key, openrouter.WithBaseURL(cfg.BaseURL))
		comp, err := client.Complete(cmd.Context(), ai.CompletionRequest{
			Model:       askModel,
			Prompt:      strings.Join(args, " "),
			MaxTokens:   askMaxTokens,
			Temperature: 0.7,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error during request:", err)
			os.Exit(1)
		}
		fmt.Println(comp.Content)
	},
}

func init() {
	askCmd.Flags().StringVar(&askModel, "model", "openai/gpt-3.5-turbo", "Model identifier")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 1000, "Maximum output tokens")
}
