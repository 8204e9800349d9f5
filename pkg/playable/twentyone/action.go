package twentyone

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Action is a decision supplied by a participant or a policy
type Action int

// Action constants
const (
	// ActionPending means the decision is up to the caller
	ActionPending Action = iota
	ActionHit
	ActionStay
	ActionNextRound
	ActionPlayAgain
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionPending:
		return "Pending"
	case ActionHit:
		return "Hit"
	case ActionStay:
		return "Stay"
	case ActionNextRound:
		return "Next Round"
	case ActionPlayAgain:
		return "Play Again"
	case ActionQuit:
		return "Quit"
	}

	panic(fmt.Sprintf("invalid action: %d", a))
}

// MarshalJSON encodes the JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(a),
		Name: a.String(),
	})
}

// UnmarshalJSON accepts the {id, name} object written by MarshalJSON or a bare name or ID
func (a *Action) UnmarshalJSON(b []byte) error {
	var obj struct {
		ID int `json:"id"`
	}

	if err := json.Unmarshal(b, &obj); err == nil {
		action, err := ActionFromString(strconv.Itoa(obj.ID))
		if err != nil {
			return err
		}

		*a = action
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		var id int
		if err := json.Unmarshal(b, &id); err != nil {
			return fmt.Errorf("invalid action: %s", string(b))
		}

		str = strconv.Itoa(id)
	}

	action, err := ActionFromString(str)
	if err != nil {
		return err
	}

	*a = action
	return nil
}

var actionAliases = map[string]Action{
	"h":          ActionHit,
	"hit":        ActionHit,
	"s":          ActionStay,
	"stay":       ActionStay,
	"stand":      ActionStay,
	"next":       ActionNextRound,
	"next-round": ActionNextRound,
	"y":          ActionPlayAgain,
	"yes":        ActionPlayAgain,
	"play-again": ActionPlayAgain,
	"n":          ActionQuit,
	"no":         ActionQuit,
	"quit":       ActionQuit,
}

// ActionFromString returns an action from a string integer or one of its names (h, hit, s, stay, y, n, ...)
func ActionFromString(action string) (Action, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	if a, ok := actionAliases[action]; ok {
		return a, nil
	}

	actionInt, err := strconv.Atoi(action)
	if err != nil {
		return 0, fmt.Errorf("invalid action: %s", action)
	}

	if actionInt > int(ActionPending) && actionInt <= int(ActionQuit) {
		return Action(actionInt), nil
	}

	return 0, fmt.Errorf("invalid action: %s", action)
}
