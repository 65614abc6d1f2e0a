// Package report renders evaluation progress and the final summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/quizbench/internal/grading"
	"github.com/abhisek/quizbench/internal/runner"
)

// Console writes human-readable progress to w: one block per question
// as it is graded, then the aggregate summary.
type Console struct {
	w   io.Writer
	cfg grading.Config
}

// NewConsole creates a console sink. The grading config is needed to
// display the expected TF token on a miss.
func NewConsole(w io.Writer, cfg grading.Config) *Console {
	return &Console{w: w, cfg: cfg}
}

func (c *Console) Result(res runner.Result) {
	fmt.Fprintf(c.w, "\n[%s %d] %s\n", res.Question.Type, res.Index+1, res.Question.Text)
	if res.Question.Type == grading.TypeMCQ && len(res.Question.Options) > 0 {
		fmt.Fprintf(c.w, "Options: %s\n", strings.Join(res.Question.Options, ", "))
	}
	fmt.Fprintf(c.w, "Answer: %s\n", res.Answer)

	if res.Verdict.HasSimilarity {
		fmt.Fprintf(c.w, "Similarity: %.2f\n", res.Verdict.Similarity)
	}

	switch {
	case res.Verdict.Correct:
		fmt.Fprintln(c.w, "✓ Correct")
	case res.Verdict.Reason != "":
		fmt.Fprintf(c.w, "✗ Wrong (%s)\n", res.Verdict.Reason)
	default:
		fmt.Fprintf(c.w, "✗ Wrong. Expected: %s\n", res.Question.ExpectedDisplay(c.cfg))
	}
}

func (c *Console) Summary(stats runner.Stats) {
	fmt.Fprintf(c.w, "\n%s\n", strings.Repeat("─", 48))
	fmt.Fprintf(c.w, "Run %s\n", stats.RunID)

	for _, typ := range []grading.Type{grading.TypeMCQ, grading.TypeTF, grading.TypeSAQ} {
		tc, ok := stats.ByType[typ]
		if !ok {
			continue
		}
		fmt.Fprintf(c.w, "%-4s %d/%d\n", typ, tc.Correct, tc.Total)
	}

	if acc, ok := stats.Accuracy(); ok {
		fmt.Fprintf(c.w, "Done! %d questions, %d correct, accuracy %.2f%%\n",
			stats.Total, stats.Correct, acc*100)
	} else {
		fmt.Fprintf(c.w, "Done! 0 questions, accuracy N/A\n")
	}
}

// Discard is a Sink that drops everything. Useful for tests and quiet runs.
type Discard struct{}

func (Discard) Result(runner.Result) {}
func (Discard) Summary(runner.Stats) {}
