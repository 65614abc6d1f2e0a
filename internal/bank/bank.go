// Package bank loads question banks from JSON documents.
//
// A bank document holds three named collections, one per question type:
//
//	{"MCQ": [{"question": ..., "options": [...], "answer": ...}],
//	 "TF":  [{"question": ..., "answer": true}],
//	 "SAQ": [{"question": ..., "answer": ...}]}
//
// Absent collections decode to empty slices. Individual entries are not
// validated on load; banks are human-curated and malformed entries
// surface as grading misses, not load failures.
package bank

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/quizbench/internal/grading"
)

// MCQ is a multiple-choice question.
type MCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// TF is a true/false question.
type TF struct {
	Question string `json:"question"`
	Answer   bool   `json:"answer"`
}

// SAQ is a short-answer question graded by semantic similarity.
type SAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Bank is a loaded question bank. Immutable after Load.
type Bank struct {
	MCQ []MCQ `json:"MCQ"`
	TF  []TF  `json:"TF"`
	SAQ []SAQ `json:"SAQ"`
}

// ErrNotFound indicates the bank file does not exist.
type ErrNotFound struct {
	Path string
	Err  error
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("question bank %s not found", e.Path)
}

func (e *ErrNotFound) Unwrap() error { return e.Err }

// ErrMalformed indicates the bank file exists but could not be parsed.
type ErrMalformed struct {
	Path string
	Err  error
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("question bank %s is malformed: %v", e.Path, e.Err)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }

// Load reads and decodes a question bank from the given path.
// Returns *ErrNotFound when the file is missing and *ErrMalformed when
// it cannot be decoded.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrNotFound{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &ErrMalformed{Path: path, Err: err}
	}

	return &b, nil
}

// Size returns the total number of questions across all types.
func (b *Bank) Size() int {
	return len(b.MCQ) + len(b.TF) + len(b.SAQ)
}

// Questions flattens the bank into grading order: MCQ first, then TF,
// then SAQ, preserving insertion order within each type.
func (b *Bank) Questions() []grading.Question {
	out := make([]grading.Question, 0, b.Size())
	for _, q := range b.MCQ {
		out = append(out, grading.Question{
			Type:    grading.TypeMCQ,
			Text:    q.Question,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	for _, q := range b.TF {
		out = append(out, grading.Question{
			Type:       grading.TypeTF,
			Text:       q.Question,
			BoolAnswer: q.Answer,
		})
	}
	for _, q := range b.SAQ {
		out = append(out, grading.Question{
			Type:   grading.TypeSAQ,
			Text:   q.Question,
			Answer: q.Answer,
		})
	}
	return out
}
