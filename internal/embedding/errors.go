package embedding

import "fmt"

// ErrProviderUnavailable indicates the embedding backend is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embedding provider unavailable: %v", e.Err)
	}
	return "embedding provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidEmbedding indicates the backend returned the wrong number
// of vectors for a batched request.
type ErrInvalidEmbedding struct {
	Count int
}

func (e *ErrInvalidEmbedding) Error() string {
	return fmt.Sprintf("embedding provider returned %d vectors, expected 2", e.Count)
}
