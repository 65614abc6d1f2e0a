// Package grading decides whether a candidate answer is correct.
//
// One rule per question type: MCQ and TF are graded by case-insensitive
// substring containment, SAQ by embedding cosine similarity against a
// reference answer. Containment is a deliberate tolerance for LLM
// output noise (surrounding punctuation, restated option text) and must
// not be tightened to exact matching.
package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/quizbench/internal/embedding"
)

// Config holds grading policy configuration.
type Config struct {
	// Threshold is the minimum cosine similarity for an SAQ answer to
	// be graded correct.
	Threshold float64

	// TrueToken and FalseToken are the textual forms of the expected TF
	// booleans. They are per-locale configuration: a candidate answer is
	// graded by containment of the token matching the expected value,
	// so the tokens must match the language the prompts elicit
	// (e.g. "正确"/"错误" for a Chinese bank).
	TrueToken  string
	FalseToken string
}

// DefaultConfig returns a Config with the default threshold and
// English boolean tokens.
func DefaultConfig() Config {
	return Config{
		Threshold:  0.70,
		TrueToken:  "true",
		FalseToken: "false",
	}
}

// Verdict is the outcome of grading one candidate answer.
type Verdict struct {
	// Correct is the boolean grading decision.
	Correct bool

	// Similarity is the raw cosine similarity for SAQ grading.
	// Only meaningful when HasSimilarity is true.
	Similarity    float64
	HasSimilarity bool

	// Reason records why grading failed closed (unrecognized type,
	// embedding failure). Empty for ordinary verdicts.
	Reason string
}

// Policy maps (question, candidate answer) to a Verdict.
// A Policy is safe for concurrent use: grading has no shared mutable
// state, and each call is pure given its inputs and the embedding
// provider.
type Policy struct {
	embedder embedding.Provider
	cfg      Config
}

// NewPolicy creates a grading policy. The embedder is only consulted
// for SAQ questions.
func NewPolicy(embedder embedding.Provider, cfg Config) *Policy {
	return &Policy{embedder: embedder, cfg: cfg}
}

// Config returns the policy configuration.
func (p *Policy) Config() Config { return p.cfg }

// Grade decides whether candidate answers the question correctly.
// Grade never returns an error: embedding failures and unrecognized
// question types fail closed with the cause recorded in Reason, so a
// single bad call degrades accuracy rather than aborting a run.
func (p *Policy) Grade(ctx context.Context, q Question, candidate string) Verdict {
	switch q.Type {
	case TypeMCQ:
		// An empty expected answer is trivially contained and grades
		// true. Observed bank behavior, kept rather than silently fixed.
		return Verdict{Correct: containsFold(candidate, q.Answer)}

	case TypeTF:
		token := p.cfg.FalseToken
		if q.BoolAnswer {
			token = p.cfg.TrueToken
		}
		return Verdict{Correct: containsFold(candidate, token)}

	case TypeSAQ:
		sim, err := embedding.Similarity(ctx, p.embedder, candidate, q.Answer)
		if err != nil {
			return Verdict{Reason: fmt.Sprintf("similarity unavailable: %v", err)}
		}
		return Verdict{
			Correct:       sim >= p.cfg.Threshold,
			Similarity:    sim,
			HasSimilarity: true,
		}

	default:
		return Verdict{Reason: fmt.Sprintf("unrecognized question type %q", q.Type)}
	}
}

// containsFold reports whether sub is a case-insensitive substring of s.
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
