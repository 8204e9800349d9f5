package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"twentyone-server/pkg/deck"
)

// Playable is a game that can be played from any front end (HTTP, websocket, Telegram, console)
type Playable interface {
	// Action performs with a message
	// If response is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(message *PayloadIn) (response *Response, updateState bool, err error)

	// GetState returns the current state of the game
	GetState() (*Response, error)

	// GetEndOfGameDetails returns the details after a game is over
	// If the game is still in progress, nil will be returned and the second param will be false
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
// If Participant is empty, assume it's a general statement
type LogMessage struct {
	UUID        string       `json:"uuid"`
	Participant string       `json:"participant,omitempty"`
	Cards       []*deck.Card `json:"cards"`
	Message     string       `json:"message"`
	Time        time.Time    `json:"time"`
}

// Response is a container for a message sent to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse returns a response describing the error
func ErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

// PayloadIn is the format we expect from a client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails provides details on how the game ended
type GameOverDetails struct {
	// ID uniquely identifies the finished game so it is only recorded once
	ID     string
	Winner string
	Scores map[string]int
	Rounds int
	// Outcomes is the result of each round in order
	Outcomes []string
	Log      interface{}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	return int(floatVal), true
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(participant string, format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:        uuid.New().String(),
		Participant: participant,
		Message:     fmt.Sprintf(format, a...),
		Time:        time.Now(),
	}
}

// CardLogMessage returns a new LogMessage that shows the cards involved
func CardLogMessage(participant string, cards []*deck.Card, format string, a ...interface{}) *LogMessage {
	lm := SimpleLogMessage(participant, format, a...)
	lm.Cards = cards
	return lm
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(participant string, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(participant, format, a...)}
}
