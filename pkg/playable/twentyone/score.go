package twentyone

import (
	"twentyone-server/pkg/deck"
)

// Blackjack is the best possible total
const Blackjack = 21

// HandState is the evaluated value of a hand
type HandState struct {
	Total int `json:"total"`
	// Soft is true while an ace is still counted as 11
	Soft      bool `json:"soft"`
	Busted    bool `json:"busted"`
	Blackjack bool `json:"blackjack"`
	// Cards is how many cards were evaluated
	Cards int `json:"cards"`
}

// Evaluate totals the hand with the soft-ace rule
// Every ace starts at 11. While the total is over 21 and an ace is still counted as 11, one ace
// drops to 1. A hand without aces is the plain sum of its card values.
func Evaluate(hand deck.Hand) HandState {
	total := 0
	softAces := 0
	for _, card := range hand {
		total += card.Value()
		if card.IsAce() {
			softAces++
		}
	}

	for total > Blackjack && softAces > 0 {
		total -= deck.AceModifier
		softAces--
	}

	return HandState{
		Total:     total,
		Soft:      softAces > 0,
		Busted:    total > Blackjack,
		Blackjack: total == Blackjack,
		Cards:     len(hand),
	}
}

// Total returns the total value of the hand
func Total(hand deck.Hand) int {
	return Evaluate(hand).Total
}
