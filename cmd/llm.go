package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbench/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the configured LLM provider",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a one-shot request through the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := llm.WithPurpose(cmd.Context(), "check")

		usage := llm.NewUsageLog()
		provider, err := llm.NewProviderFromEnv(ctx, usage)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		fmt.Printf("Model: %s\n", provider.ModelID())

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ready"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		fmt.Printf("Reply:   %s\n", resp.Text())
		fmt.Printf("Latency: %dms\n", time.Since(start).Milliseconds())
		fmt.Printf("Tokens:  %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)

		if cost := llm.LookupCost(resp.Model); cost != nil {
			fmt.Printf("Cost:    %s\n", formatCost(cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		}
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}
