package twentyone

// Policy decides what a participant does next given their hand
type Policy interface {
	Decide(hand HandState) Action
}

// UserPolicy ends the user's turn on a bust or 21
// Otherwise the decision is pending and must come from the caller.
type UserPolicy struct{}

// Decide implements Policy
func (UserPolicy) Decide(hand HandState) Action {
	if hand.Busted || hand.Blackjack {
		return ActionStay
	}

	return ActionPending
}

// DealerPolicy draws until the total reaches StandOn
// A soft total counts, so with StandOn = 17 the dealer stands on a soft 17.
type DealerPolicy struct {
	StandOn int
}

// Decide implements Policy
func (d DealerPolicy) Decide(hand HandState) Action {
	if hand.Busted || hand.Total >= d.StandOn {
		return ActionStay
	}

	return ActionHit
}
