package twentyone

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"twentyone-server/pkg/snapshot"
)

func TestGame_Snapshot(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, DefaultOptions(), "10c,6c,13d,8d,5h")

	gs := g.Snapshot()
	a.Equal(1, gs.Round)
	a.Equal("user-turn", gs.State)
	a.Equal(5, gs.ScoreLimit)
	a.Equal(OutcomeNone, gs.Outcome)
	a.Equal("", gs.Message)
	a.Equal(1, gs.CardsRemaining)
	a.Equal([]Action{ActionHit, ActionStay}, gs.Actions)

	a.Equal("Ann", gs.User.Name)
	a.Equal(16, *gs.User.Total)
	a.Equal("10 of Clubs and 6 of Clubs", gs.User.Description)

	a.Nil(gs.Dealer.Total)
	a.False(gs.Dealer.Busted)
	a.Equal("King of Diamonds and a hidden card", gs.Dealer.Description)

	b, err := json.Marshal(gs.Dealer)
	a.NoError(err)
	a.NotContains(string(b), `"rank":8`)
	a.Contains(string(b), `{"hidden":true}`)
	a.Contains(string(b), `"total":null`)

	// the snapshot is detached from the live hands
	gs.Dealer.Hand[1].Reveal()
	a.True(g.Dealer().Hand.HasHiddenCard())

	a.NoError(g.Apply(ActionHit))
	gs = g.Snapshot()
	a.Equal("done", gs.State)
	a.Equal(21, *gs.User.Total)
	a.True(gs.User.Blackjack)
	a.Equal(18, *gs.Dealer.Total)
	a.Equal(OutcomeUserWin, gs.Outcome)
	a.Equal("You win!", gs.Message)
	a.Equal(1, gs.User.Score)
}

func TestGame_SnapshotMatchOver(t *testing.T) {
	a := assert.New(t)
	g := createTestGame(t, Options{ScoreLimit: 1, DealerStandOn: 17}, dealerWinsDeck)

	a.NoError(g.Apply(ActionStay))
	gs := g.Snapshot()
	a.Equal("match-over", gs.State)
	a.Equal("Dealer", gs.Winner)
	a.Equal("Sorry, the Dealer won the match 1 to 0.", gs.Message)
	a.Equal([]Action{ActionPlayAgain, ActionQuit}, gs.Actions)
}

func TestGame_SnapshotJSON(t *testing.T) {
	g := createTestGame(t, DefaultOptions(), "10c,6c,13d,8d,5h")
	gs := g.Snapshot()

	snapshot.ValidateSnapshot(t, []*ParticipantState{gs.User, gs.Dealer}, 0)
}
