package twentyone

import (
	"errors"

	"twentyone-server/internal/rng"
)

// Options contains options for creating a new game of Twenty-One
type Options struct {
	// ScoreLimit is the number of round wins needed to take the match
	ScoreLimit int
	// DealerStandOn is the total at which the dealer stops drawing
	DealerStandOn int
	// Rand shuffles each round's deck. Defaults to rng.Crypto.
	Rand rng.Generator
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		ScoreLimit:    5,
		DealerStandOn: 17,
	}
}

func (o Options) validate() error {
	if o.ScoreLimit <= 0 {
		return errors.New("score limit must be > 0")
	}

	if o.DealerStandOn < 2 || o.DealerStandOn > Blackjack {
		return errors.New("dealer must stand on a total from 2 to 21")
	}

	return nil
}
