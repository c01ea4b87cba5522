package texasholdem

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker"
)

// SeatState is what everybody can see about a seat
type SeatState struct {
	SeatID string `json:"seatId"`
	Name   string `json:"name"`
	Stack  int    `json:"stack"`
	Bet    int    `json:"bet"`
	Folded bool   `json:"folded"`
	InHand bool   `json:"inHand"`
}

// PublicState is the state of the table that is broadcast to every client
type PublicState struct {
	Seats           []*SeatState `json:"seats"`
	Waiting         []string     `json:"waiting"`
	Phase           Phase        `json:"phase"`
	HandNumber      int          `json:"handNumber"`
	CurrentTurn     string       `json:"currentTurn"`
	CurrentTurnName string       `json:"currentTurnName"`
	DealerName      string       `json:"dealerName"`
	LastAction      *LastAction  `json:"lastAction"`
	LastResult      string       `json:"lastResult"`
	PokerState      *poker.State `json:"pokerState"`
}

// PrivateState is only sent to the seat it belongs to
type PrivateState struct {
	SeatID  string         `json:"seatId"`
	Cards   deck.Hand      `json:"cards"`
	Hand    string         `json:"hand,omitempty"`
	Options *ActionOptions `json:"options"`
}

// PublicState returns the state of the table
func (g *Game) PublicState() *PublicState {
	seats := make([]*SeatState, len(g.seatOrder))
	for i, id := range g.seatOrder {
		p := g.participants[id]
		seats[i] = &SeatState{
			SeatID: id,
			Name:   p.Name,
			Stack:  p.stack,
			Bet:    p.streetBet,
			Folded: p.folded,
			InHand: p.inHand(),
		}
	}

	waiting := make([]string, len(g.waiting))
	for i, w := range g.waiting {
		waiting[i] = w.name
	}

	var turnName string
	if p := g.CurrentTurn(); p != nil {
		turnName = p.Name
	}

	return &PublicState{
		Seats:           seats,
		Waiting:         waiting,
		Phase:           g.phase,
		HandNumber:      g.handNumber,
		CurrentTurn:     g.currentTurn,
		CurrentTurnName: turnName,
		DealerName:      g.dealerName(),
		LastAction:      g.lastAction,
		LastResult:      g.lastResult,
		PokerState:      g.getPokerState(),
	}
}

func (g *Game) getPokerState() *poker.State {
	return &poker.State{
		SmallBlind: g.options.SmallBlind,
		BigBlind:   g.options.BigBlind,
		CurrentBet: g.currentBet,
		Pot:        g.pot.Amount(),
		Community:  g.community.Clone(),
	}
}

// PrivateState returns the hole cards and, on their turn, the legal actions of a seat
func (g *Game) PrivateState(id string) (*PrivateState, bool) {
	p, ok := g.participants[id]
	if !ok {
		return nil, false
	}

	var hand string
	if ha := p.getHandAnalyzer(g.community); ha != nil {
		hand = ha.Describe()
	}

	return &PrivateState{
		SeatID:  id,
		Cards:   p.cards.Clone(),
		Hand:    hand,
		Options: g.LegalActions(id),
	}, true
}
