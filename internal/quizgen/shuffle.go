package quizgen

import (
	"math/rand"
	"time"

	"wikiquiz/internal/domain"
)

// Shuffler randomizes the presentation order of each question's options.
// Correctness travels with the option object, so the permutation never
// changes which answer is correct.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler creates a Shuffler. rng may be nil, in which case a time-seeded
// source is used; tests inject a fixed-seed source for determinism.
func NewShuffler(rng *rand.Rand) *Shuffler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Shuffler{rng: rng}
}

// Shuffle permutes the options of every question in place, independently.
func (s *Shuffler) Shuffle(questions []domain.Question) {
	for i := range questions {
		opts := questions[i].Options
		s.rng.Shuffle(len(opts), func(a, b int) {
			opts[a], opts[b] = opts[b], opts[a]
		})
	}
}
