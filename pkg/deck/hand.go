package deck

import (
	"strings"
)

// Hand represents an ordered collection of cards
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// Clear empties the hand
func (h *Hand) Clear() {
	*h = nil
}

// LastCard returns the last card in the hand or nil if the cards are empty
func (h Hand) LastCard() *Card {
	n := len(h)
	if n == 0 {
		return nil
	}

	return h[n-1]
}

// HasHiddenCard returns true if any card is face-down
func (h Hand) HasHiddenCard() bool {
	for _, c := range h {
		if c.Hidden {
			return true
		}
	}

	return false
}

// Describe lists the cards in prose: "A and B" or "A, B, and C"
func (h Hand) Describe() string {
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.String()
	}

	switch len(names) {
	case 0:
		return ""
	case 1, 2:
		return strings.Join(names, " and ")
	}

	last := len(names) - 1
	return strings.Join(names[:last], ", ") + ", and " + names[last]
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a deep copy of the hand
// The cards are copied so that hiding or revealing a card in the clone does not touch the original.
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	for i, c := range h {
		cp := *c
		h2[i] = &cp
	}

	return h2
}
