package poker

import (
	"holdem-server/pkg/deck"
)

// State provides the current state data for common poker values
type State struct {
	SmallBlind int       `json:"smallBlind"`
	BigBlind   int       `json:"bigBlind"`
	CurrentBet int       `json:"currentBet"`
	Pot        int       `json:"pot"`
	Community  deck.Hand `json:"community"`
}
