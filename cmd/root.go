package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizbench",
	Short: "LLM quiz-answering benchmark",
	Long:  "Quizbench asks a language model the questions in a bank and grades the answers per question type.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluation(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env in the working directory supplies API keys; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringP("bank", "b", "questions.json", "Path to the question bank JSON file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
