package runner

import (
	"github.com/google/uuid"

	"github.com/abhisek/quizbench/internal/grading"
)

// TypeCount is the attempted/correct tally for one question type.
type TypeCount struct {
	Total   int
	Correct int
}

// Stats are the aggregate results of one evaluation run.
type Stats struct {
	RunID   uuid.UUID
	Total   int
	Correct int
	ByType  map[grading.Type]TypeCount
}

// newStats creates empty run statistics with a fresh run ID.
func newStats() Stats {
	return Stats{
		RunID:  uuid.New(),
		ByType: make(map[grading.Type]TypeCount),
	}
}

// record folds one result into the tallies.
func (s *Stats) record(res Result) {
	s.Total++
	tc := s.ByType[res.Question.Type]
	tc.Total++
	if res.Verdict.Correct {
		s.Correct++
		tc.Correct++
	}
	s.ByType[res.Question.Type] = tc
}

// Accuracy returns correct/total. The second return value is false when
// no questions were attempted: accuracy is undefined and must be
// reported as N/A, never computed.
func (s Stats) Accuracy() (float64, bool) {
	if s.Total == 0 {
		return 0, false
	}
	return float64(s.Correct) / float64(s.Total), true
}
