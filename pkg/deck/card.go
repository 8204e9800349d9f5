package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
)

// Suits is every suit in the order a new deck is built
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Name returns the display name of the suit (e.g., Spades)
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	}

	panic(fmt.Sprintf("unknown suit: %s", string(s)))
}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// AceValue is the nominal value of an ace. AceModifier is the amount an ace drops by when it counts as one.
const (
	AceValue    = 11
	AceModifier = 10
)

// Card is an individual playing card
// A card is face-up unless Hidden is set. A hidden card never exposes its rank or suit when rendered.
type Card struct {
	Rank   int  `json:"rank"`
	Suit   Suit `json:"suit"`
	Hidden bool `json:"hidden"`
}

// NewCard returns a face-up card
func NewCard(rank int, suit Suit) *Card {
	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// Value returns the blackjack point value of the card
// Number cards are worth their rank, face cards 10, and an ace 11.
func (c *Card) Value() int {
	switch {
	case c.Rank == Ace:
		return AceValue
	case c.Rank >= Jack:
		return 10
	}

	return c.Rank
}

// IsAce returns true if the card is an ace
func (c *Card) IsAce() bool {
	return c.Rank == Ace
}

// IsVisible returns true if the card is face-up
func (c *Card) IsVisible() bool {
	return !c.Hidden
}

// Hide turns the card face-down
func (c *Card) Hide() {
	c.Hidden = true
}

// Reveal turns the card face-up
func (c *Card) Reveal() {
	c.Hidden = false
}

// RankName returns the display name of the rank (e.g., 7, Queen)
func (c *Card) RankName() string {
	switch c.Rank {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	}

	return strconv.Itoa(c.Rank)
}

// String returns "<Rank> of <Suit>", or "a hidden card" when face-down
func (c *Card) String() string {
	if c.Hidden {
		return "a hidden card"
	}

	return fmt.Sprintf("%s of %s", c.RankName(), c.Suit.Name())
}

// Symbol returns a compact representation of the card (e.g., Q♢)
func (c *Card) Symbol() string {
	if c.Hidden {
		return "??"
	}

	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return rank + suit
}

// MarshalJSON masks the rank and suit of a face-down card
func (c *Card) MarshalJSON() ([]byte, error) {
	if c.Hidden {
		return json.Marshal(struct {
			Hidden bool `json:"hidden"`
		}{true})
	}

	return json.Marshal(struct {
		Rank   int    `json:"rank"`
		Suit   Suit   `json:"suit"`
		Value  int    `json:"value"`
		Name   string `json:"name"`
		Hidden bool   `json:"hidden"`
	}{
		Rank:  c.Rank,
		Suit:  c.Suit,
		Value: c.Value(),
		Name:  c.String(),
	})
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])(\*)?\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs].
// A trailing * marks the card as face-down.
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return &Card{
		Rank:   rank,
		Suit:   suit,
		Hidden: match[3] == "*",
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	var suit string
	switch card.Suit {
	case Clubs:
		suit = "c"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Spades:
		suit = "s"
	}

	hidden := ""
	if card.Hidden {
		hidden = "*"
	}

	return fmt.Sprintf("%d%s%s", card.Rank, suit, hidden)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
