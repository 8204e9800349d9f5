package twentyone

import (
	"errors"
	"fmt"
)

// ErrReservedName is returned when the user tries to take the dealer's name
var ErrReservedName = UserError("sorry, you can't be the dealer")

// ErrMatchOver is the reason an action is rejected after a participant reached the score limit
var ErrMatchOver = errors.New("match is over")

// UserError is an error that is safe to show to the player
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// InvalidActionError is returned when an action is not valid for the current state
// The game state is left unchanged.
type InvalidActionError struct {
	Action Action
	State  string

	reason error
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("you cannot perform the action %s from state: %s", e.Action, e.State)
}

// Unwrap returns the underlying reason, if any
func (e *InvalidActionError) Unwrap() error {
	return e.reason
}
