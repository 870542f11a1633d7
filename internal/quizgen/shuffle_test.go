package quizgen

import (
	"math/rand"
	"testing"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shuffleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text: "Q1?",
			Options: []domain.Option{
				{Text: "A", IsCorrect: true},
				{Text: "B"},
				{Text: "C"},
				{Text: "D"},
			},
		},
		{
			Text: "Q2?",
			Options: []domain.Option{
				{Text: "E"},
				{Text: "F", IsCorrect: true},
				{Text: "G"},
				{Text: "H"},
			},
		},
	}
}

func TestShuffle_PreservesOptionMultiset(t *testing.T) {
	questions := shuffleQuestions()
	s := NewShuffler(rand.New(rand.NewSource(42)))
	s.Shuffle(questions)

	for i, q := range questions {
		require.Len(t, q.Options, 4)

		seen := make(map[domain.Option]int)
		for _, opt := range q.Options {
			seen[opt]++
		}
		for _, opt := range shuffleQuestions()[i].Options {
			assert.Equal(t, 1, seen[opt], "option %v must survive the permutation", opt)
		}
	}
}

func TestShuffle_CorrectnessTravelsWithOption(t *testing.T) {
	questions := shuffleQuestions()
	s := NewShuffler(rand.New(rand.NewSource(7)))

	// Shuffling twice must still leave exactly one correct option per
	// question, with the same text.
	s.Shuffle(questions)
	s.Shuffle(questions)

	wantCorrect := []string{"A", "F"}
	for i, q := range questions {
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
				assert.Equal(t, wantCorrect[i], opt.Text)
			}
		}
		assert.Equal(t, 1, correct)
	}
}

func TestShuffle_NilSourceStillWorks(t *testing.T) {
	questions := shuffleQuestions()
	s := NewShuffler(nil)
	s.Shuffle(questions)
	for _, q := range questions {
		require.NoError(t, q.Validate())
	}
}
