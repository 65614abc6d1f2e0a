package runner

import (
	"encoding/json"

	"github.com/abhisek/quizbench/internal/grading"
	"github.com/abhisek/quizbench/internal/llm"
)

// answerSchema builds the structured-output schema for option-bounded
// question types: an object whose "answer" field is constrained to the
// MCQ options or the configured boolean tokens. SAQ answers are free
// text and get no schema.
func answerSchema(q grading.Question, cfg grading.Config) *llm.Schema {
	var allowed []string
	switch q.Type {
	case grading.TypeMCQ:
		if len(q.Options) == 0 {
			return nil
		}
		allowed = q.Options
	case grading.TypeTF:
		allowed = []string{cfg.TrueToken, cfg.FalseToken}
	default:
		return nil
	}

	enum := make([]any, len(allowed))
	for i, a := range allowed {
		enum[i] = a
	}

	return &llm.Schema{
		Name:        "quiz-answer",
		Description: "The selected answer for a quiz question.",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer": map[string]any{"type": "string", "enum": enum},
			},
			"required": []any{"answer"},
		},
	}
}

// extractAnswer pulls the answer field out of a schema-validated
// response. The provider has already validated the shape, so a decode
// failure means no schema was in play.
func extractAnswer(content json.RawMessage) (string, bool) {
	var out struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(content, &out); err != nil || out.Answer == "" {
		return "", false
	}
	return out.Answer, true
}
