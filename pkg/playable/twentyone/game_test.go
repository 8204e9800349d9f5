package twentyone

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"twentyone-server/internal/rng"
	"twentyone-server/pkg/deck"
	"twentyone-server/pkg/playable"
)

const (
	userWinsDeck   = "10c,9c,10d,8d"
	dealerWinsDeck = "10c,7c,10d,9d"
	tieDeck        = "10c,8c,10d,8d"
)

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g, err := NewGame(logrus.StandardLogger(), "  ann  marie ", Options{ScoreLimit: 3, DealerStandOn: 17, Rand: rng.NewSeeded(1)})
	a.NoError(err)
	a.Equal("Ann Marie", g.User().Name)
	a.Equal("Dealer", g.Dealer().Name)
	a.Equal(1, g.RoundNumber())
	a.Equal("Twenty-One", g.Name())
	a.Len(g.MatchID(), 36)
	a.Equal(52, g.CurrentRound().CardsRemaining()+len(g.User().Hand)+len(g.Dealer().Hand))

	_, err = NewGame(logrus.StandardLogger(), "DEALER", DefaultOptions())
	a.Equal(ErrReservedName, err)

	_, err = NewGame(logrus.StandardLogger(), "ann", Options{ScoreLimit: 0, DealerStandOn: 17})
	a.EqualError(err, "score limit must be > 0")

	_, err = NewGame(logrus.StandardLogger(), "ann", Options{ScoreLimit: 5, DealerStandOn: 22})
	a.EqualError(err, "dealer must stand on a total from 2 to 21")
}

func TestGame_defaultsToCrypto(t *testing.T) {
	g, err := NewGame(logrus.StandardLogger(), "", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, DefaultUserName, g.User().Name)
	assert.Equal(t, rng.Crypto{}, g.Options().Rand)
}

func TestGame_matchToFive(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), userWinsDeck)

	for round := 1; round <= 5; round++ {
		a.Equal(round, g.RoundNumber())
		a.Equal([]Action{ActionHit, ActionStay}, g.ValidActions())
		a.NoError(g.Apply(ActionStay))
		a.Equal(round, g.User().Score)
		a.Equal(0, g.Dealer().Score)

		if round < 5 {
			a.False(g.IsMatchOver(), "round %d", round)
			a.Nil(g.Winner())
			a.Equal("done", g.State())
			a.Equal([]Action{ActionNextRound, ActionQuit}, g.ValidActions())

			details, over := g.GetEndOfGameDetails()
			a.Nil(details)
			a.False(over)

			a.NoError(g.Apply(ActionNextRound))
		}
	}

	a.True(g.IsMatchOver())
	a.Same(g.User(), g.Winner())
	a.Equal("match-over", g.State())
	a.Equal([]Action{ActionPlayAgain, ActionQuit}, g.ValidActions())
	a.Len(g.Results(), 5)

	details, over := g.GetEndOfGameDetails()
	a.True(over)
	a.Equal("Ann", details.Winner)
	a.Equal(5, details.Rounds)
	a.Equal(map[string]int{"Ann": 5, "Dealer": 0}, details.Scores)
	a.Equal(g.MatchID(), details.ID)
	a.Equal([]string{"user-win", "user-win", "user-win", "user-win", "user-win"}, details.Outcomes)

	err := g.Apply(ActionNextRound)
	a.True(errors.Is(err, ErrMatchOver))
	a.EqualError(err, "you cannot perform the action Next Round from state: match-over")
	a.Equal(5, g.RoundNumber())

	matchID := g.MatchID()
	a.NoError(g.Apply(ActionPlayAgain))
	a.False(g.IsMatchOver())
	a.Equal(1, g.RoundNumber())
	a.Equal(0, g.User().Score)
	a.Equal(0, g.Dealer().Score)
	a.Empty(g.Results())
	a.NotEqual(matchID, g.MatchID())
}

func TestGame_dealerTakesMatch(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, Options{ScoreLimit: 2, DealerStandOn: 17}, dealerWinsDeck)

	a.NoError(g.Apply(ActionStay))
	a.Equal(1, g.Dealer().Score)
	a.NoError(g.Apply(ActionNextRound))
	a.NoError(g.Apply(ActionStay))
	a.Same(g.Dealer(), g.Winner())

	details, over := g.GetEndOfGameDetails()
	a.True(over)
	a.Equal("Dealer", details.Winner)
}

func TestGame_tieKeepsScores(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), tieDeck, userWinsDeck)

	a.NoError(g.Apply(ActionStay))
	a.Equal(OutcomeTie, g.CurrentRound().Outcome)
	a.Equal(0, g.User().Score)
	a.Equal(0, g.Dealer().Score)

	a.NoError(g.Apply(ActionNextRound))
	a.Equal(2, g.RoundNumber())
	a.Len(g.User().Hand, 2)
	a.Len(g.Dealer().Hand, 2)
	a.True(g.Dealer().Hand.HasHiddenCard())
}

func TestGame_hitUntilBust(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), "10c,2c,10d,8d,3h,13s")

	a.NoError(g.Apply(ActionHit))
	a.Equal("user-turn", g.State())
	a.Equal(15, g.User().HandState().Total)

	a.NoError(g.Apply(ActionHit))
	a.Equal("done", g.State())
	a.Equal(OutcomeDealerWin, g.CurrentRound().Outcome)
	a.Equal(1, g.Dealer().Score)

	result := g.Results()[0]
	a.Equal(25, result.UserTotal)
	a.Equal("10c,2c,3h,13s", result.UserHand)
	a.Equal("10d,8d*", result.DealerHand)
}

func TestGame_openingBlackjackSettlesImmediately(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), "14c,13c,10d,7d")

	a.Equal("done", g.State())
	a.Equal(OutcomeUserWin, g.CurrentRound().Outcome)
	a.Equal(1, g.User().Score)
}

func TestGame_invalidActionLeavesState(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), userWinsDeck)

	before := g.Snapshot()
	err := g.Apply(ActionNextRound)

	var invalid *InvalidActionError
	a.True(errors.As(err, &invalid))
	a.Equal(ActionNextRound, invalid.Action)
	a.Equal("user-turn", invalid.State)
	a.False(errors.Is(err, ErrMatchOver))
	a.Equal(before, g.Snapshot())

	a.Error(g.Apply(ActionPlayAgain))
	a.Error(g.Apply(ActionPending))
	a.Equal(before, g.Snapshot())

	a.Error(g.NextRound())
	a.Error(g.PlayAgain())
}

func TestGame_quit(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), userWinsDeck)

	a.Error(g.Apply(ActionQuit))
	a.NoError(g.Apply(ActionStay))
	a.NoError(g.Apply(ActionQuit))
	a.True(g.IsQuit())
	a.Equal("quit", g.State())
	a.Nil(g.ValidActions())
	a.Error(g.Apply(ActionNextRound))
}

func TestGame_Action(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), userWinsDeck)

	resp, update, err := g.Action(&playable.PayloadIn{Subject: "x", Context: "c1"})
	a.EqualError(err, "invalid action: x")
	a.False(update)
	a.Nil(resp)

	resp, update, err = g.Action(&playable.PayloadIn{Subject: "s", Context: "c2"})
	a.NoError(err)
	a.True(update)
	a.Equal(playable.OK("c2"), resp)
	a.Equal(1, g.User().Score)

	resp, err = g.GetState()
	a.NoError(err)
	a.Equal("game", resp.Key)
	a.Equal("twenty-one", resp.Value)
	a.IsType(&GameState{}, resp.Data)
}

func TestGame_LogChan(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, Options{ScoreLimit: 1, DealerStandOn: 17}, userWinsDeck)
	a.NoError(g.Apply(ActionStay))

	var messages []string
	for done := false; !done; {
		select {
		case msgs := <-g.LogChan():
			for _, msg := range msgs {
				messages = append(messages, msg.Message)
			}
		default:
			done = true
		}
	}

	a.Equal([]string{
		"Ann was dealt 10 of Clubs and 9 of Clubs for a total of 19",
		"Dealer has 10 of Diamonds and a hidden card",
		"Ann stayed on 19",
		"Dealer flipped 8 of Diamonds",
		"Dealer's total is 18 with 10 of Diamonds and 8 of Diamonds",
		"You win!",
		"Congratulations, you won the match 1 to 0!",
	}, messages)
}

func TestGame_logsDeckHash(t *testing.T) {
	a := assert.New(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := newGame(logger, "ann", DefaultOptions(), func() *deck.Deck {
		return stackedDeck(userWinsDeck)
	})
	require.NoError(t, err)

	var entry *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "round started" {
			entry = e
		}
	}

	require.NotNil(t, entry)
	a.Equal(1, entry.Data["round"])
	a.Equal(stackedDeck(userWinsDeck).HashCode(), entry.Data["deck"])
}
