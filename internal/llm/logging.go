package llm

import (
	"context"
	"sync"
	"time"
)

// CallRecord captures one LLM request for run-scoped observability.
// Grading history is never persisted; records live only for the run.
type CallRecord struct {
	Purpose      string
	Model        string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// UsageLog accumulates CallRecords in memory. Safe for concurrent use.
type UsageLog struct {
	mu      sync.Mutex
	records []CallRecord
}

// NewUsageLog creates an empty UsageLog.
func NewUsageLog() *UsageLog {
	return &UsageLog{}
}

// Append records one call.
func (u *UsageLog) Append(rec CallRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.records = append(u.records, rec)
}

// Records returns a copy of all recorded calls in append order.
func (u *UsageLog) Records() []CallRecord {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]CallRecord, len(u.records))
	copy(out, u.records)
	return out
}

// UsageSummary aggregates recorded calls per model.
type UsageSummary struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// Summarize aggregates the recorded calls by model, in first-seen order.
func (u *UsageLog) Summarize() []UsageSummary {
	u.mu.Lock()
	defer u.mu.Unlock()

	byModel := make(map[string]*UsageSummary)
	var order []string
	var totalLatency = make(map[string]int64)

	for _, r := range u.records {
		s, ok := byModel[r.Model]
		if !ok {
			s = &UsageSummary{Model: r.Model}
			byModel[r.Model] = s
			order = append(order, r.Model)
		}
		s.Calls++
		if !r.Success {
			s.Failures++
		}
		s.InputTokens += r.InputTokens
		s.OutputTokens += r.OutputTokens
		totalLatency[r.Model] += r.LatencyMs
	}

	out := make([]UsageSummary, 0, len(order))
	for _, m := range order {
		s := byModel[m]
		if s.Calls > 0 {
			s.AvgLatencyMs = totalLatency[m] / int64(s.Calls)
		}
		out = append(out, *s)
	}
	return out
}

// loggingProvider records every completion request in a UsageLog.
type loggingProvider struct {
	inner Provider
	usage *UsageLog
}

// WithLogging wraps a Provider with call recording. A nil usage log
// disables recording.
func WithLogging(p Provider, usage *UsageLog) Provider {
	return &loggingProvider{inner: p, usage: usage}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if l.usage == nil {
		return l.inner.Generate(ctx, req)
	}

	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	rec := CallRecord{
		Purpose:   PurposeFrom(ctx),
		Model:     l.inner.ModelID(),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	l.usage.Append(rec)
	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
