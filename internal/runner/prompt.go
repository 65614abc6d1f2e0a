package runner

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizbench/internal/grading"
)

// buildPrompt renders the type-specific prompt for a question.
//
// MCQ prompts enumerate the option labels and instruct the model to
// answer with the option only; TF prompts instruct a single-token
// answer using the configured boolean tokens (so the grading tokens and
// the elicited tokens stay in the same locale); SAQ prompts pass the
// stem directly.
func buildPrompt(q grading.Question, cfg grading.Config) string {
	switch q.Type {
	case grading.TypeMCQ:
		return fmt.Sprintf(
			"Answer with the correct option only. Do not explain your choice.\nMultiple-choice question: %s\nOptions: %s",
			q.Text, strings.Join(q.Options, ", "))

	case grading.TypeTF:
		return fmt.Sprintf(
			"True/false question: %s (answer with a single word: %s or %s)",
			q.Text, cfg.TrueToken, cfg.FalseToken)

	default:
		return fmt.Sprintf("Short-answer question: %s", q.Text)
	}
}
