package twentyone

import (
	"twentyone-server/pkg/deck"
)

// GameState is a read-only snapshot of the game
// Face-down cards are masked and the dealer's total is withheld while the hole card is down.
type GameState struct {
	MatchID        string            `json:"matchId"`
	Round          int               `json:"round"`
	State          string            `json:"state"`
	ScoreLimit     int               `json:"scoreLimit"`
	User           *ParticipantState `json:"user"`
	Dealer         *ParticipantState `json:"dealer"`
	Outcome        Outcome           `json:"outcome"`
	Message        string            `json:"message"`
	Winner         string            `json:"winner"`
	Actions        []Action          `json:"actions"`
	CardsRemaining int               `json:"cardsRemaining"`
}

// ParticipantState is a snapshot of a participant
type ParticipantState struct {
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	Hand        deck.Hand `json:"hand"`
	Description string    `json:"description"`
	// Total is nil while part of the hand is hidden
	Total     *int `json:"total"`
	Busted    bool `json:"busted"`
	Blackjack bool `json:"blackjack"`
}

// Snapshot returns the current state of the game
func (g *Game) Snapshot() *GameState {
	gs := &GameState{
		MatchID:        g.matchID,
		Round:          g.round.Number,
		State:          g.State(),
		ScoreLimit:     g.options.ScoreLimit,
		User:           newParticipantState(g.user),
		Dealer:         newParticipantState(g.dealer),
		Outcome:        g.round.Outcome,
		Actions:        g.ValidActions(),
		CardsRemaining: g.round.CardsRemaining(),
	}

	if g.round.IsDone() {
		gs.Message = ResultMessage(g.user.HandState(), g.dealer.HandState())
	}

	if g.winner != nil {
		gs.Winner = g.winner.Name
		gs.Message = MatchResultMessage(g.winner == g.user, g.user, g.dealer)
	}

	return gs
}

func newParticipantState(p *Participant) *ParticipantState {
	hand := p.Hand.Clone()
	ps := &ParticipantState{
		Name:        p.Name,
		Score:       p.Score,
		Hand:        hand,
		Description: hand.Describe(),
	}

	if !hand.HasHiddenCard() {
		hs := Evaluate(hand)
		ps.Total = &hs.Total
		ps.Busted = hs.Busted
		ps.Blackjack = hs.Blackjack
	}

	return ps
}
