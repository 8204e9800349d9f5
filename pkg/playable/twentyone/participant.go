package twentyone

import (
	"twentyone-server/pkg/deck"
)

// DealerName is the name of the house
const DealerName = "Dealer"

// Participant is the user or the dealer
type Participant struct {
	Name  string    `json:"name"`
	Hand  deck.Hand `json:"hand"`
	Score int       `json:"score"`

	policy Policy
}

func newParticipant(name string, policy Policy) *Participant {
	return &Participant{
		Name:   name,
		Hand:   make(deck.Hand, 0, 5),
		policy: policy,
	}
}

// HandState evaluates the participant's hand
func (p *Participant) HandState() HandState {
	return Evaluate(p.Hand)
}

// Decide asks the participant's policy for the next action
func (p *Participant) Decide() Action {
	return p.policy.Decide(p.HandState())
}

func (p *Participant) String() string {
	return p.Name
}
