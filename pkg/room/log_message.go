package room

import (
	"holdem-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the last logMessageLimit messages
// Returns true if there was anything to add. The caller must hold the lock.
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) bool {
	if len(messages) == 0 {
		return false
	}

	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
	return true
}

func (d *Dealer) logResponse() *playable.Response {
	messages := make([]*playable.LogMessage, len(d.logMessages))
	copy(messages, d.logMessages)

	return &playable.Response{
		Key:  "log",
		Data: messages,
	}
}
