package twentyone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	test := func(t *testing.T, cards string, total int, soft, busted, blackjack bool) {
		t.Helper()

		hs := Evaluate(hand(cards))
		assert.Equal(t, total, hs.Total, cards)
		assert.Equal(t, soft, hs.Soft, cards)
		assert.Equal(t, busted, hs.Busted, cards)
		assert.Equal(t, blackjack, hs.Blackjack, cards)
	}

	test(t, "", 0, false, false, false)
	test(t, "2c,3d", 5, false, false, false)
	test(t, "13c,12d", 20, false, false, false)
	test(t, "13c,12d,2h", 22, false, true, false)
	test(t, "11c,12d,13h", 30, false, true, false)
	test(t, "10c,5d,6h", 21, false, false, true)

	test(t, "14c,6d", 17, true, false, false)
	test(t, "14c,13d", 21, true, false, true)
	test(t, "14c,14d", 12, true, false, false)
	test(t, "14c,14d,9h", 21, true, false, true)
	test(t, "14c,14d,14h,8s", 21, true, false, true)
	test(t, "14c,14d,14h,14s", 14, true, false, false)
	test(t, "14c,6d,10h", 17, false, false, false)
	test(t, "14c,6d,10h,5s", 22, false, true, false)
	test(t, "14c,14d,14h,14s,10c,8d", 22, false, true, false)
}

func TestEvaluate_noAces(t *testing.T) {
	a := assert.New(t)

	// without aces the total is the plain sum of the card values
	for _, cards := range []string{"2c,3c,4c", "10c,13d", "9c,9d,5h", "7c,7d,7h,7s"} {
		h := hand(cards)
		sum := 0
		for _, c := range h {
			sum += c.Value()
		}

		hs := Evaluate(h)
		a.Equal(sum, hs.Total)
		a.Equal(sum > 21, hs.Busted)
		a.False(hs.Soft)
		a.Equal(len(h), hs.Cards)
	}
}

func TestEvaluate_kingQueen(t *testing.T) {
	a := assert.New(t)
	a.Equal(20, Total(hand("13c,12d")))

	// adding any card worth more than 1 busts it
	for rank := 2; rank <= 13; rank++ {
		h := hand("13c,12d")
		h.AddCard(hand("2h")[0])
		h[2].Rank = rank
		a.True(Evaluate(h).Busted, "rank %d", rank)
	}

	// an ace drops to 1
	a.Equal(21, Total(hand("13c,12d,14h")))
}

func TestEvaluate_hiddenCardsCount(t *testing.T) {
	assert.Equal(t, 21, Total(hand("14c,13d*")))
}
