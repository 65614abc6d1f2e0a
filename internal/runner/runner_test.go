package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbench/internal/bank"
	"github.com/abhisek/quizbench/internal/embedding"
	"github.com/abhisek/quizbench/internal/grading"
	"github.com/abhisek/quizbench/internal/llm"
)

// scriptedProvider answers by prompt content, so verdicts do not depend
// on call order (which is nondeterministic across workers).
type scriptedProvider struct {
	mu      sync.Mutex
	answer  func(prompt string) (string, error)
	calls   []string
	schemas []*llm.Schema
}

func (p *scriptedProvider) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	prompt := req.Messages[0].Content

	p.mu.Lock()
	p.calls = append(p.calls, prompt)
	p.schemas = append(p.schemas, req.Schema)
	p.mu.Unlock()

	text, err := p.answer(prompt)
	if err != nil {
		return nil, err
	}
	return &llm.Response{Content: []byte(text), Model: "scripted", StopReason: "end"}, nil
}

func (p *scriptedProvider) ModelID() string { return "scripted" }

type recordingSink struct {
	results   []Result
	summaries []Stats
}

func (s *recordingSink) Result(r Result)  { s.results = append(s.results, r) }
func (s *recordingSink) Summary(st Stats) { s.summaries = append(s.summaries, st) }

func testBank() *bank.Bank {
	return &bank.Bank{
		MCQ: []bank.MCQ{
			{Question: "Capital of France?", Options: []string{"Paris", "London", "Berlin"}, Answer: "Paris"},
			{Question: "Largest planet?", Options: []string{"Mars", "Jupiter"}, Answer: "Jupiter"},
		},
		TF:  []bank.TF{{Question: "Water boils at 100C at sea level.", Answer: true}},
		SAQ: []bank.SAQ{{Question: "What does DNS do?", Answer: "resolves names"}},
	}
}

func testPolicy() *grading.Policy {
	embedder := embedding.NewMockProvider(map[string][]float32{
		"it resolves names": {1, 0},
		"resolves names":    {3, 4},
	})
	cfg := grading.DefaultConfig()
	cfg.Threshold = 0.5
	return grading.NewPolicy(embedder, cfg)
}

// scriptAnswers returns a prompt→answer function covering testBank:
// first MCQ answered correctly (lowercase, trailing punctuation), the
// second incorrectly, TF correctly, SAQ with similarity 0.6 ≥ 0.5.
func scriptAnswers(prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Capital of France"):
		return "paris.", nil
	case strings.Contains(prompt, "Largest planet"):
		return "Mars", nil
	case strings.Contains(prompt, "Water boils"):
		return "I believe that is true.", nil
	default:
		return "it resolves names", nil
	}
}

func TestRun_Sequential(t *testing.T) {
	provider := &scriptedProvider{answer: scriptAnswers}
	r := New(provider, testPolicy(), DefaultConfig())
	sink := &recordingSink{}

	stats, err := r.Run(context.Background(), testBank(), sink)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Correct)
	acc, ok := stats.Accuracy()
	require.True(t, ok)
	assert.InDelta(t, 0.75, acc, 1e-9)

	assert.Equal(t, TypeCount{Total: 2, Correct: 1}, stats.ByType[grading.TypeMCQ])
	assert.Equal(t, TypeCount{Total: 1, Correct: 1}, stats.ByType[grading.TypeTF])
	assert.Equal(t, TypeCount{Total: 1, Correct: 1}, stats.ByType[grading.TypeSAQ])

	// Results arrive in flattened bank order.
	require.Len(t, sink.results, 4)
	for i, res := range sink.results {
		assert.Equal(t, i, res.Index)
	}
	assert.Equal(t, grading.TypeMCQ, sink.results[0].Question.Type)
	assert.Equal(t, grading.TypeMCQ, sink.results[1].Question.Type)
	assert.Equal(t, grading.TypeTF, sink.results[2].Question.Type)
	assert.Equal(t, grading.TypeSAQ, sink.results[3].Question.Type)

	// SAQ verdict carries the similarity score.
	saq := sink.results[3]
	require.True(t, saq.Verdict.HasSimilarity)
	assert.InDelta(t, 0.6, saq.Verdict.Similarity, 1e-9)

	require.Len(t, sink.summaries, 1)
	assert.Equal(t, stats.Total, sink.summaries[0].Total)
}

func TestRun_CompletionFailureDoesNotAbort(t *testing.T) {
	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Largest planet") {
			return "", &llm.ErrProviderUnavailable{Err: fmt.Errorf("status 503")}
		}
		return scriptAnswers(prompt)
	}}
	r := New(provider, testPolicy(), DefaultConfig())
	sink := &recordingSink{}

	stats, err := r.Run(context.Background(), testBank(), sink)
	require.NoError(t, err)

	// The failed question is still attempted and graded incorrect.
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Correct)

	failed := sink.results[1]
	assert.True(t, failed.Failed)
	assert.Contains(t, failed.Answer, "completion request failed")
	assert.False(t, failed.Verdict.Correct)
}

func TestRun_EmptyBank(t *testing.T) {
	provider := &scriptedProvider{answer: scriptAnswers}
	r := New(provider, testPolicy(), DefaultConfig())
	sink := &recordingSink{}

	stats, err := r.Run(context.Background(), &bank.Bank{}, sink)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	_, ok := stats.Accuracy()
	assert.False(t, ok, "accuracy must be undefined for an empty bank")
	assert.Empty(t, sink.results)
	assert.Empty(t, provider.calls)
	require.Len(t, sink.summaries, 1)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	b := &bank.Bank{}
	for i := 0; i < 12; i++ {
		b.MCQ = append(b.MCQ, bank.MCQ{
			Question: fmt.Sprintf("q%d", i),
			Options:  []string{"right", "wrong"},
			Answer:   "right",
		})
	}

	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		// Two questions answered wrong.
		if strings.Contains(prompt, "q1\n") || strings.Contains(prompt, "q3\n") {
			return "wrong", nil
		}
		return "right", nil
	}}

	cfg := DefaultConfig()
	cfg.Workers = 4
	r := New(provider, testPolicy(), cfg)
	sink := &recordingSink{}

	stats, err := r.Run(context.Background(), b, sink)
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Total)
	assert.Equal(t, 10, stats.Correct)

	// Reporting order is reconstructed by original index, not
	// completion order.
	require.Len(t, sink.results, 12)
	for i, res := range sink.results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, fmt.Sprintf("q%d", i), res.Question.Text)
	}
}

func TestRun_StructuredAnswers(t *testing.T) {
	b := &bank.Bank{
		MCQ: []bank.MCQ{{Question: "Capital of France?", Options: []string{"Paris", "London"}, Answer: "Paris"}},
		TF:  []bank.TF{{Question: "Water boils at 100C at sea level.", Answer: true}},
		SAQ: []bank.SAQ{{Question: "What does DNS do?", Answer: "resolves names"}},
	}

	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Capital of France"):
			return `{"answer":"Paris"}`, nil
		case strings.Contains(prompt, "Water boils"):
			return `{"answer":"true"}`, nil
		default:
			return "it resolves names", nil
		}
	}}

	cfg := DefaultConfig()
	cfg.Structured = true
	r := New(provider, testPolicy(), cfg)
	sink := &recordingSink{}

	stats, err := r.Run(context.Background(), b, sink)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Correct)

	// MCQ and TF requests carry an answer schema; SAQ stays free text.
	require.Len(t, provider.schemas, 3)
	require.NotNil(t, provider.schemas[0])
	require.NotNil(t, provider.schemas[1])
	assert.Nil(t, provider.schemas[2])

	props := provider.schemas[0].Definition["properties"].(map[string]any)
	enum := props["answer"].(map[string]any)["enum"].([]any)
	assert.Equal(t, []any{"Paris", "London"}, enum)

	// The graded answer is the extracted field, not the JSON wrapper.
	assert.Equal(t, "Paris", sink.results[0].Answer)
	assert.Equal(t, "true", sink.results[1].Answer)
	assert.Equal(t, "it resolves names", sink.results[2].Answer)
}

// gatedProvider blocks every completion until the gate opens, so a test
// can hold questions in flight while it cancels the run.
type gatedProvider struct {
	started chan struct{}
	gate    chan struct{}
}

func (p *gatedProvider) Generate(_ context.Context, _ llm.Request) (*llm.Response, error) {
	p.started <- struct{}{}
	<-p.gate
	return &llm.Response{Content: []byte("right"), Model: "gated", StopReason: "end"}, nil
}

func (p *gatedProvider) ModelID() string { return "gated" }

func TestRun_CancellationBetweenQuestions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		// Cancel after the first completion; the runner must stop
		// before the next question and return what it has.
		cancel()
		return "paris.", nil
	}}
	r := New(provider, testPolicy(), DefaultConfig())
	sink := &recordingSink{}

	stats, err := r.Run(ctx, testBank(), sink)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1, stats.Total)
	assert.Len(t, sink.results, 1)
	assert.Empty(t, sink.summaries, "no summary for an interrupted run")
}

func TestRun_ParallelCancellationSkipsUnattemptedQuestions(t *testing.T) {
	b := &bank.Bank{}
	for i := 0; i < 6; i++ {
		b.MCQ = append(b.MCQ, bank.MCQ{
			Question: fmt.Sprintf("q%d", i),
			Options:  []string{"right", "wrong"},
			Answer:   "right",
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	provider := &gatedProvider{started: make(chan struct{}, 8), gate: make(chan struct{})}

	// Cancel while the first two questions are in flight, then let
	// them finish. Questions whose jobs were submitted but never
	// started must not be attempted with a dead context.
	go func() {
		<-provider.started
		<-provider.started
		cancel()
		close(provider.gate)
	}()

	cfg := DefaultConfig()
	cfg.Workers = 2
	r := New(provider, testPolicy(), cfg)
	sink := &recordingSink{}

	stats, err := r.Run(ctx, b, sink)
	require.ErrorIs(t, err, context.Canceled)

	// Only the in-flight questions count, same as the sequential path.
	assert.Equal(t, 2, stats.Total)
	require.Len(t, sink.results, 2)
	for i, res := range sink.results {
		assert.Equal(t, i, res.Index)
		assert.False(t, res.Failed)
		assert.True(t, res.Verdict.Correct)
	}
	assert.Empty(t, sink.summaries, "no summary for an interrupted run")
}
