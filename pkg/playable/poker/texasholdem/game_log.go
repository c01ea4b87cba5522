package texasholdem

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
)

// log records a message for the game log
// "{}" in the message is replaced by the client with the name of the seat.
func (g *Game) log(seatID string, cards deck.Hand, format string, a ...interface{}) {
	msg := playable.SimpleLogMessage(seatID, format, a...)
	if len(cards) > 0 {
		msg.Cards = cards
	}

	g.logs = append(g.logs, msg)
}

// TakeLogMessages returns every log message recorded since the last call
func (g *Game) TakeLogMessages() []*playable.LogMessage {
	logs := g.logs
	g.logs = nil
	return logs
}
