package service

import (
	"math/rand/v2"

	"github.com/phrazzld/flashcards-api/internal/domain"
)

// LearningOptions controls how a learning session is drawn from a set.
type LearningOptions struct {
	// Seed makes the order reproducible. When nil a random seed is chosen
	// and reported back in LearningSession.Seed.
	Seed *int64

	// Limit caps the number of cards. Zero means no limit.
	Limit int
}

// LearningSession is a shuffled selection of a set's cards.
type LearningSession struct {
	Seed  int64
	Cards []*domain.FlashcardView
}

func newLearningSession(cards []*domain.FlashcardView, opts LearningOptions) *LearningSession {
	var seed int64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = rand.Int64()
	}

	shuffled := make([]*domain.FlashcardView, len(cards))
	copy(shuffled, cards)

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if opts.Limit > 0 && opts.Limit < len(shuffled) {
		shuffled = shuffled[:opts.Limit]
	}

	return &LearningSession{Seed: seed, Cards: shuffled}
}
