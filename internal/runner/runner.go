// Package runner drives a question bank through a completion provider
// and the grading policy, accumulating run statistics.
//
// Questions are evaluated in a fixed total order: MCQ, then TF, then
// SAQ, bank order within each type. A completion failure never aborts
// the run; the failure text becomes the candidate answer and is graded
// like any other (in practice, incorrect).
package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/quizbench/internal/bank"
	"github.com/abhisek/quizbench/internal/grading"
	"github.com/abhisek/quizbench/internal/llm"
)

// Config holds evaluation parameters.
type Config struct {
	// MaxTokens is the completion length limit per question.
	MaxTokens int

	// TopP is the nucleus sampling parameter passed to the provider.
	TopP float64

	// Workers sets the number of concurrent completion calls.
	// 1 evaluates sequentially. Parallel runs produce identical
	// verdicts; per-question results are still reported in bank order.
	Workers int

	// Structured constrains MCQ and TF answers to their options via
	// the provider's schema mechanism. SAQ stays free text either way.
	Structured bool
}

// DefaultConfig returns the baseline evaluation parameters.
func DefaultConfig() Config {
	return Config{
		MaxTokens: 500,
		TopP:      0.8,
		Workers:   1,
	}
}

// Result is the per-question outcome, created once and never mutated.
type Result struct {
	// Index is the question's position in the flattened bank order.
	Index int

	Question grading.Question
	Prompt   string

	// Answer is the generated text, or the failure marker when the
	// completion call failed.
	Answer string

	// Failed reports whether the completion call failed.
	Failed bool

	Verdict grading.Verdict
}

// Sink consumes per-question results as they are finalized, then the
// run summary. Implementations need not be safe for concurrent use;
// the runner serializes calls in question order.
type Sink interface {
	Result(Result)
	Summary(Stats)
}

// Runner evaluates question banks.
type Runner struct {
	provider llm.Provider
	policy   *grading.Policy
	cfg      Config
}

// New creates a Runner. Both providers are injected; the runner holds
// no ambient state.
func New(provider llm.Provider, policy *grading.Policy, cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{provider: provider, policy: policy, cfg: cfg}
}

// Run evaluates every question in the bank and returns the aggregate
// statistics. Cancellation is honored between questions: on a canceled
// context the stats cover the questions already graded and ctx.Err()
// is returned.
func (r *Runner) Run(ctx context.Context, b *bank.Bank, sink Sink) (Stats, error) {
	questions := b.Questions()
	stats := newStats()

	if r.cfg.Workers > 1 {
		return r.runParallel(ctx, questions, sink, stats)
	}

	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		res := r.evaluate(ctx, i, q)
		stats.record(res)
		sink.Result(res)
	}

	sink.Summary(stats)
	return stats, nil
}

// evaluate runs the prompt → completion → grade pipeline for one question.
func (r *Runner) evaluate(ctx context.Context, index int, q grading.Question) Result {
	prompt := buildPrompt(q, r.policy.Config())
	ctx = llm.WithPurpose(ctx, strings.ToLower(string(q.Type)))

	res := Result{
		Index:    index,
		Question: q,
		Prompt:   prompt,
	}

	req := llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens: r.cfg.MaxTokens,
		TopP:      r.cfg.TopP,
	}
	if r.cfg.Structured {
		req.Schema = answerSchema(q, r.policy.Config())
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		// The failure becomes the candidate answer so grading proceeds
		// uniformly; it cannot match an expected answer.
		res.Answer = fmt.Sprintf("completion request failed: %v", err)
		res.Failed = true
	} else {
		res.Answer = resp.Text()
		if req.Schema != nil {
			if answer, ok := extractAnswer(resp.Content); ok {
				res.Answer = answer
			}
		}
	}

	res.Verdict = r.policy.Grade(ctx, q, res.Answer)
	return res
}

// runParallel evaluates questions with a bounded worker pool. Each
// worker writes only its own result slots; sink emission is
// reconstructed by original index and counters are reduced after the
// join, so reporting order and statistics match the sequential path.
func (r *Runner) runParallel(ctx context.Context, questions []grading.Question, sink Sink, stats Stats) (Stats, error) {
	type job struct {
		index int
		q     grading.Question
	}

	results := make([]Result, len(questions))
	done := make([]bool, len(questions))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				// Mirror the sequential path: a question is not
				// attempted once the run is canceled, even if its job
				// was already submitted.
				if ctx.Err() != nil {
					continue
				}
				results[j.index] = r.evaluate(ctx, j.index, j.q)
				done[j.index] = true
			}
		}()
	}

	var cancelErr error
submit:
	for i, q := range questions {
		select {
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break submit
		case jobs <- job{index: i, q: q}:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if !done[i] {
			continue
		}
		stats.record(results[i])
		sink.Result(results[i])
	}

	if cancelErr != nil {
		return stats, cancelErr
	}

	sink.Summary(stats)
	return stats, nil
}
