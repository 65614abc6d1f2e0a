package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbench/internal/bank"
	"github.com/abhisek/quizbench/internal/embedding"
	"github.com/abhisek/quizbench/internal/grading"
	"github.com/abhisek/quizbench/internal/llm"
	"github.com/abhisek/quizbench/internal/report"
	"github.com/abhisek/quizbench/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate the question bank against the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluation(cmd)
	},
}

func init() {
	runCmd.Flags().Float64("threshold", 0.70, "Minimum cosine similarity for a correct short answer")
	runCmd.Flags().String("true-token", "true", "Token graded as the affirmative true/false answer")
	runCmd.Flags().String("false-token", "false", "Token graded as the negative true/false answer")
	runCmd.Flags().Int("workers", 1, "Concurrent completion calls (1 = sequential)")
	runCmd.Flags().Int("max-tokens", 500, "Completion length limit per question")
	runCmd.Flags().Float64("top-p", 0.8, "Nucleus sampling parameter")
	runCmd.Flags().Bool("structured", false, "Constrain MCQ/TF answers to their options via structured output")
}

// runEvaluation wires the providers, loads the bank, and drives the run.
func runEvaluation(cmd *cobra.Command) error {
	ctx := cmd.Context()

	bankPath, _ := cmd.Flags().GetString("bank")
	b, err := bank.Load(bankPath)
	if err != nil {
		var notFound *bank.ErrNotFound
		var malformed *bank.ErrMalformed
		switch {
		case errors.As(err, &notFound):
			return fmt.Errorf("question bank file %s does not exist", notFound.Path)
		case errors.As(err, &malformed):
			return fmt.Errorf("question bank file %s could not be parsed: %w", malformed.Path, malformed.Err)
		default:
			return err
		}
	}

	gradingCfg := gradingConfigFromFlags(cmd)
	runnerCfg := runnerConfigFromFlags(cmd)

	usage := llm.NewUsageLog()
	provider, err := llm.NewProviderFromEnv(ctx, usage)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	embedder, err := embedding.NewProviderFromEnv(ctx)
	if err != nil {
		if len(b.SAQ) > 0 {
			return fmt.Errorf("embedding provider (required for short-answer grading): %w", err)
		}
		// No SAQ questions, so the embedder is never consulted.
		embedder = embedding.NewMockProvider(nil)
	}

	policy := grading.NewPolicy(embedder, gradingCfg)
	r := runner.New(provider, policy, runnerCfg)
	sink := report.NewConsole(os.Stdout, gradingCfg)

	stats, err := r.Run(ctx, b, sink)
	if err != nil {
		return fmt.Errorf("evaluation interrupted after %d questions: %w", stats.Total, err)
	}

	printUsage(usage)
	return nil
}

func gradingConfigFromFlags(cmd *cobra.Command) grading.Config {
	cfg := grading.DefaultConfig()
	if f := cmd.Flags().Lookup("threshold"); f != nil {
		cfg.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if f := cmd.Flags().Lookup("true-token"); f != nil {
		cfg.TrueToken, _ = cmd.Flags().GetString("true-token")
	}
	if f := cmd.Flags().Lookup("false-token"); f != nil {
		cfg.FalseToken, _ = cmd.Flags().GetString("false-token")
	}
	return cfg
}

func runnerConfigFromFlags(cmd *cobra.Command) runner.Config {
	cfg := runner.DefaultConfig()
	if f := cmd.Flags().Lookup("workers"); f != nil {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if f := cmd.Flags().Lookup("max-tokens"); f != nil {
		cfg.MaxTokens, _ = cmd.Flags().GetInt("max-tokens")
	}
	if f := cmd.Flags().Lookup("top-p"); f != nil {
		cfg.TopP, _ = cmd.Flags().GetFloat64("top-p")
	}
	if f := cmd.Flags().Lookup("structured"); f != nil {
		cfg.Structured, _ = cmd.Flags().GetBool("structured")
	}
	return cfg
}

// printUsage reports token consumption and estimated cost for the run.
func printUsage(usage *llm.UsageLog) {
	summaries := usage.Summarize()
	if len(summaries) == 0 {
		return
	}

	fmt.Println("\nLLM Usage")
	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("%-32s  %6s  %10s  %10s  %8s  %9s\n",
		"Model", "Calls", "Input", "Output", "Avg Ms", "Cost")
	fmt.Println(strings.Repeat("─", 72))

	var totalCost float64
	costKnown := true
	for _, s := range summaries {
		costStr := "?"
		if cost := llm.LookupCost(s.Model); cost != nil {
			c := cost.Cost(s.InputTokens, s.OutputTokens)
			totalCost += c
			costStr = formatCost(c)
		} else {
			costKnown = false
		}
		fmt.Printf("%-32s  %6d  %10d  %10d  %8d  %9s\n",
			truncate(s.Model, 32), s.Calls, s.InputTokens, s.OutputTokens, s.AvgLatencyMs, costStr)
	}

	fmt.Println(strings.Repeat("─", 72))
	label := "TOTAL"
	if !costKnown {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %8s  %9s\n", label, "", "", "", "", formatCost(totalCost))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
