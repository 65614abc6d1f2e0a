package grading

// Type identifies a question variant.
type Type string

const (
	TypeMCQ Type = "MCQ"
	TypeTF  Type = "TF"
	TypeSAQ Type = "SAQ"
)

// Question is the unified grading view of a bank entry.
type Question struct {
	Type Type

	// Text is the question stem.
	Text string

	// Options holds the MCQ option labels, in presentation order.
	Options []string

	// Answer is the expected answer for MCQ (correct option) and SAQ
	// (reference answer). Unused for TF.
	Answer string

	// BoolAnswer is the expected answer for TF. Unused otherwise.
	BoolAnswer bool
}

// ExpectedDisplay returns the expected answer in display form, used by
// reporters when a candidate answer is graded incorrect.
func (q Question) ExpectedDisplay(cfg Config) string {
	if q.Type == TypeTF {
		if q.BoolAnswer {
			return cfg.TrueToken
		}
		return cfg.FalseToken
	}
	return q.Answer
}
