package twentyone

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"twentyone-server/pkg/deck"
)

// stackedDeck returns a deck that deals the cards in the order given
func stackedDeck(cards string) *deck.Deck {
	c := deck.CardsFromString(cards)
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}

	return &deck.Deck{Cards: c}
}

// createTestGame returns a game that deals each round from the next deck in the list
// The last deck is reused once the list runs out.
func createTestGame(t *testing.T, options Options, decks ...string) *Game {
	t.Helper()

	i := 0
	g, err := newGame(logrus.StandardLogger(), "ann", options, func() *deck.Deck {
		d := decks[i]
		if i < len(decks)-1 {
			i++
		}

		return stackedDeck(d)
	})
	require.NoError(t, err)

	return g
}

func createTestRound(cards string) (*Round, *Participant, *Participant) {
	user := newParticipant("Ann", UserPolicy{})
	dealer := newParticipant(DealerName, DealerPolicy{StandOn: 17})
	return NewRound(1, stackedDeck(cards), user, dealer), user, dealer
}

func hand(cards string) deck.Hand {
	return deck.CardsFromString(cards)
}
