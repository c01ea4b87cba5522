package texasholdem

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/handanalyzer"
)

// Participant is a seated player
type Participant struct {
	SeatID string
	Name   string

	stack     int
	cards     deck.Hand
	folded    bool
	streetBet int

	handAnalyzer         *handanalyzer.HandAnalyzer
	handAnalyzerCacheKey string
}

func newParticipant(id, name string, stack int) *Participant {
	return &Participant{
		SeatID: id,
		Name:   name,
		stack:  stack,
		cards:  make(deck.Hand, 0, 2),
	}
}

// Stack returns the chips the participant has behind
func (p *Participant) Stack() int {
	return p.stack
}

// Folded returns true if the participant folded this hand
func (p *Participant) Folded() bool {
	return p.folded
}

// inHand is true if the participant was dealt in and has not folded
func (p *Participant) inHand() bool {
	return !p.folded && len(p.cards) > 0
}

// canAct is true if the participant is in the hand and still has chips to play with
func (p *Participant) canAct() bool {
	return p.inHand() && p.stack > 0
}

// newHand clears everything scoped to a single hand
func (p *Participant) newHand() {
	p.cards = make(deck.Hand, 0, 2)
	p.folded = false
	p.streetBet = 0
	p.handAnalyzer = nil
	p.handAnalyzerCacheKey = ""
}

func (p *Participant) getHandAnalyzer(community deck.Hand) *handanalyzer.HandAnalyzer {
	if len(p.cards) == 0 || len(p.cards)+len(community) < handanalyzer.HandSize {
		return nil
	}

	hand := make(deck.Hand, 0, len(p.cards)+len(community))
	hand = append(hand, p.cards...)
	hand = append(hand, community...)

	key := hand.String()
	if p.handAnalyzerCacheKey != key {
		p.handAnalyzer = handanalyzer.New(hand)
		p.handAnalyzerCacheKey = key
	}

	return p.handAnalyzer
}

// potmanager.Participant interface

// ID returns the seat identity
func (p *Participant) ID() string {
	return p.SeatID
}

// AdjustBalance adds amount to the stack
func (p *Participant) AdjustBalance(amount int) {
	p.stack += amount
}
