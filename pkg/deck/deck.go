package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"twentyone-server/internal/rng"
)

// ErrEmptyDeck is an error when Draw() is attempted and there are no more cards
var ErrEmptyDeck = errors.New("no cards left in the deck")

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a playing deck
// The top of the deck is the end of Cards.
type Deck struct {
	Cards []*Card `json:"-"`
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{}
	d.buildDeck()
	return d
}

// NewShuffled returns a full deck shuffled with the generator
func NewShuffled(gen rng.Generator) *Deck {
	d := New()
	d.Shuffle(gen)
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, Size)
	for rank := 2; rank <= Ace; rank++ {
		for _, suit := range Suits {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the remaining cards using a Fisher-Yates shuffle
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(CardToString(card)))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw removes and returns the top card
// If there are no more cards, an ErrEmptyDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return nil, ErrEmptyDeck
	}

	card := d.Cards[n-1]
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
