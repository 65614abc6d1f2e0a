package embedding

import (
	"context"
	"sync"
)

// MockProvider is a deterministic Provider for testing.
// It returns canned vectors keyed by input text and records all calls.
type MockProvider struct {
	mu      sync.Mutex
	vectors map[string][]float32
	Calls   [][]string
}

// NewMockProvider creates a MockProvider with the given text→vector map.
func NewMockProvider(vectors map[string][]float32) *MockProvider {
	if vectors == nil {
		vectors = make(map[string][]float32)
	}
	return &MockProvider{vectors: vectors}
}

// SetVector registers the canned vector for a text.
func (m *MockProvider) SetVector(text string, vec []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[text] = vec
}

// Embed returns the canned vector for each text, or
// ErrProviderUnavailable for an unregistered text.
func (m *MockProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, texts)

	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, ok := m.vectors[t]
		if !ok {
			return nil, &ErrProviderUnavailable{}
		}
		out[i] = vec
	}
	return out, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}
