package bank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbench/internal/grading"
)

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeBank(t, `{
		"MCQ": [{"question": "Capital of France?", "options": ["Paris", "London", "Berlin"], "answer": "Paris"}],
		"TF":  [{"question": "Water boils at 100C at sea level.", "answer": true}],
		"SAQ": [{"question": "What does DNS do?", "answer": "Resolves names to addresses."}]
	}`)

	b, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Size())
	require.Len(t, b.MCQ, 1)
	assert.Equal(t, "Paris", b.MCQ[0].Answer)
	assert.Equal(t, []string{"Paris", "London", "Berlin"}, b.MCQ[0].Options)
	require.Len(t, b.TF, 1)
	assert.True(t, b.TF[0].Answer)
	require.Len(t, b.SAQ, 1)
}

func TestLoad_MissingSectionsDefaultEmpty(t *testing.T) {
	path := writeBank(t, `{"MCQ": [{"question": "q", "options": ["a"], "answer": "a"}]}`)

	b, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, b.MCQ, 1)
	assert.Empty(t, b.TF)
	assert.Empty(t, b.SAQ)
}

func TestLoad_EmptyDocument(t *testing.T) {
	path := writeBank(t, `{}`)

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Size())
	assert.Empty(t, b.Questions())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Path, "missing.json")
}

func TestLoad_Malformed(t *testing.T) {
	path := writeBank(t, `{"MCQ": [`)

	_, err := Load(path)
	require.Error(t, err)

	var malformed *ErrMalformed
	require.ErrorAs(t, err, &malformed)
	assert.NotNil(t, errors.Unwrap(malformed))
}

func TestQuestions_FlattenedInGradingOrder(t *testing.T) {
	b := &Bank{
		MCQ: []MCQ{
			{Question: "m1", Options: []string{"a", "b"}, Answer: "a"},
			{Question: "m2", Options: []string{"c", "d"}, Answer: "d"},
		},
		TF:  []TF{{Question: "t1", Answer: false}},
		SAQ: []SAQ{{Question: "s1", Answer: "ref"}},
	}

	qs := b.Questions()
	require.Len(t, qs, 4)

	// Fixed total order: MCQ, then TF, then SAQ; bank order within a type.
	assert.Equal(t, grading.TypeMCQ, qs[0].Type)
	assert.Equal(t, "m1", qs[0].Text)
	assert.Equal(t, "m2", qs[1].Text)
	assert.Equal(t, grading.TypeTF, qs[2].Type)
	assert.False(t, qs[2].BoolAnswer)
	assert.Equal(t, grading.TypeSAQ, qs[3].Type)
	assert.Equal(t, "ref", qs[3].Answer)
}
