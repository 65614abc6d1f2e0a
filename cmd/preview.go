package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbench/internal/bank"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the parsed question bank without calling the LLM",
	Long: `Load and display the question bank: per-type counts and every question
with its expected answer. Useful for checking a bank before spending tokens on a run.`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	bankPath, _ := cmd.Flags().GetString("bank")
	b, err := bank.Load(bankPath)
	if err != nil {
		var notFound *bank.ErrNotFound
		if errors.As(err, &notFound) {
			return fmt.Errorf("question bank file %s does not exist", notFound.Path)
		}
		return err
	}

	fmt.Printf("%s: %d questions (MCQ %d, TF %d, SAQ %d)\n",
		bankPath, b.Size(), len(b.MCQ), len(b.TF), len(b.SAQ))

	for i, q := range b.MCQ {
		fmt.Printf("\n[MCQ %d] %s\n", i+1, q.Question)
		fmt.Printf("Options: %s\n", strings.Join(q.Options, ", "))
		fmt.Printf("Answer:  %s\n", q.Answer)
	}
	for i, q := range b.TF {
		fmt.Printf("\n[TF %d] %s\n", i+1, q.Question)
		fmt.Printf("Answer:  %v\n", q.Answer)
	}
	for i, q := range b.SAQ {
		fmt.Printf("\n[SAQ %d] %s\n", i+1, q.Question)
		fmt.Printf("Answer:  %s\n", q.Answer)
	}

	return nil
}
