package twentyone

import (
	"fmt"

	"twentyone-server/pkg/deck"
	"twentyone-server/pkg/playable"
)

// RoundState is the state of the current round
type RoundState string

// RoundState constants
const (
	// RoundStateDealing is before the opening hands have been dealt
	RoundStateDealing RoundState = "dealing"

	// RoundStateUserTurn means the user is deciding to hit or stay
	RoundStateUserTurn RoundState = "user-turn"

	// RoundStateDealerTurn means the user stayed without busting and the dealer plays out their hand
	RoundStateDealerTurn RoundState = "dealer-turn"

	// RoundStateSettlement means both hands are final and the winner can be decided
	RoundStateSettlement RoundState = "settlement"

	// RoundStateDone means the round has been settled
	RoundStateDone RoundState = "done"
)

// Outcome is the result of a round
type Outcome string

// Outcome constants
const (
	OutcomeNone      Outcome = ""
	OutcomeUserWin   Outcome = "user-win"
	OutcomeDealerWin Outcome = "dealer-win"
	OutcomeTie       Outcome = "tie"
)

// Round is a single hand of Twenty-One
type Round struct {
	Number  int        `json:"number"`
	State   RoundState `json:"state"`
	Outcome Outcome    `json:"outcome"`

	user    *Participant
	dealer  *Participant
	deck    *deck.Deck
	logChan chan<- []*playable.LogMessage
}

// NewRound returns a new round; both hands are cleared
func NewRound(number int, d *deck.Deck, user, dealer *Participant) *Round {
	user.Hand.Clear()
	dealer.Hand.Clear()

	return &Round{
		Number: number,
		State:  RoundStateDealing,
		user:   user,
		dealer: dealer,
		deck:   d,
	}
}

// Deal deals two cards to the user and two to the dealer
// The dealer's second card is dealt face-down.
func (r *Round) Deal() error {
	if r.State != RoundStateDealing {
		return &InvalidActionError{Action: ActionPending, State: string(r.State)}
	}

	if !r.deck.CanDraw(4) {
		return fmt.Errorf("could not deal round %d: %w", r.Number, deck.ErrEmptyDeck)
	}

	for _, p := range []*Participant{r.user, r.user, r.dealer, r.dealer} {
		if _, err := r.drawTo(p); err != nil {
			return err
		}
	}

	r.dealer.Hand.LastCard().Hide()
	r.sendLogMessage(r.user, r.user.Hand, "%s was dealt %s for a total of %d", r.user, r.user.Hand.Describe(), r.user.HandState().Total)
	r.sendLogMessage(r.dealer, r.dealer.Hand, "%s has %s", r.dealer, r.dealer.Hand.Describe())

	r.State = RoundStateUserTurn
	r.checkUserTurn()
	return nil
}

// Hit draws one card for the user
func (r *Round) Hit() error {
	if r.State != RoundStateUserTurn {
		return &InvalidActionError{Action: ActionHit, State: string(r.State)}
	}

	card, err := r.drawTo(r.user)
	if err != nil {
		return err
	}

	r.sendLogMessage(r.user, deck.Hand{card}, "%s hit and drew %s for a total of %d", r.user, card, r.user.HandState().Total)
	r.checkUserTurn()
	return nil
}

// Stay ends the user's turn
func (r *Round) Stay() error {
	if r.State != RoundStateUserTurn {
		return &InvalidActionError{Action: ActionStay, State: string(r.State)}
	}

	r.sendLogMessage(r.user, nil, "%s stayed on %d", r.user, r.user.HandState().Total)
	r.endUserTurn()
	return nil
}

// PlayDealer flips the hole card and draws by the dealer's policy until it stays
func (r *Round) PlayDealer() error {
	if r.State != RoundStateDealerTurn {
		return &InvalidActionError{Action: ActionPending, State: string(r.State)}
	}

	if hole := r.dealer.Hand.LastCard(); hole != nil && hole.Hidden {
		hole.Reveal()
		r.sendLogMessage(r.dealer, deck.Hand{hole}, "%s flipped %s", r.dealer, hole)
	}

	for r.dealer.Decide() == ActionHit {
		card, err := r.drawTo(r.dealer)
		if err != nil {
			return err
		}

		r.sendLogMessage(r.dealer, deck.Hand{card}, "%s drew %s", r.dealer, card)
	}

	r.sendLogMessage(r.dealer, r.dealer.Hand, "%s's total is %d with %s", r.dealer, r.dealer.HandState().Total, r.dealer.Hand.Describe())

	r.State = RoundStateSettlement
	return nil
}

// Settle decides the winner and awards them a point
func (r *Round) Settle() (Outcome, error) {
	if r.State != RoundStateSettlement {
		return OutcomeNone, &InvalidActionError{Action: ActionPending, State: string(r.State)}
	}

	r.Outcome = Settle(r.user.HandState(), r.dealer.HandState())
	switch r.Outcome {
	case OutcomeUserWin:
		r.user.Score++
	case OutcomeDealerWin:
		r.dealer.Score++
	}

	r.sendLogMessage(nil, nil, "%s", ResultMessage(r.user.HandState(), r.dealer.HandState()))
	r.State = RoundStateDone
	return r.Outcome, nil
}

// Settle compares two final hands
// A busted user always loses, even if the dealer also would have busted.
func Settle(user, dealer HandState) Outcome {
	switch {
	case user.Busted:
		return OutcomeDealerWin
	case dealer.Busted:
		return OutcomeUserWin
	case user.Total > dealer.Total:
		return OutcomeUserWin
	case user.Total < dealer.Total:
		return OutcomeDealerWin
	}

	return OutcomeTie
}

// IsDone returns true once the round has been settled
func (r *Round) IsDone() bool {
	return r.State == RoundStateDone
}

// CardsRemaining returns the number of cards left in the round's deck
func (r *Round) CardsRemaining() int {
	return r.deck.CardsLeft()
}

func (r *Round) checkUserTurn() {
	if r.user.Decide() == ActionStay {
		r.endUserTurn()
	}
}

func (r *Round) endUserTurn() {
	if r.user.HandState().Busted {
		// the dealer wins without playing
		r.State = RoundStateSettlement
		return
	}

	r.State = RoundStateDealerTurn
}

func (r *Round) drawTo(p *Participant) (*deck.Card, error) {
	card, err := r.deck.Draw()
	if err != nil {
		return nil, fmt.Errorf("could not deal to %s: %w", p, err)
	}

	p.Hand.AddCard(card)
	return card, nil
}

func (r *Round) sendLogMessage(p *Participant, cards deck.Hand, format string, a ...interface{}) {
	if r.logChan == nil {
		return
	}

	name := ""
	if p != nil {
		name = p.Name
	}

	msg := playable.CardLogMessage(name, cards.Clone(), format, a...)
	select {
	case r.logChan <- []*playable.LogMessage{msg}:
	default:
	}
}
