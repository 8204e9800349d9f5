package room

import (
	"twentyone-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping only the most recent
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// drainLogMessages collects everything the game has logged so far without blocking
// Note: this must only be called from within the run loop
func (d *Dealer) drainLogMessages() []*playable.LogMessage {
	var messages []*playable.LogMessage
	for {
		select {
		case msgs := <-d.game.LogChan():
			messages = append(messages, msgs...)
		default:
			return messages
		}
	}
}
