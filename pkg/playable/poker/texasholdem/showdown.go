package texasholdem

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/handanalyzer"
	"holdem-server/pkg/playable/poker/potmanager"
)

// RevealedSeat is a seat's hand as shown after the hand is over
type RevealedSeat struct {
	SeatID   string    `json:"seatId"`
	Name     string    `json:"name"`
	Folded   bool      `json:"folded"`
	Cards    deck.Hand `json:"cards"`
	BestFive deck.Hand `json:"bestFive"`
	Hand     string    `json:"hand,omitempty"`
}

// Showdown is the reveal of a settled hand
type Showdown struct {
	Winners   []string            `json:"winners"`
	Seats     []*RevealedSeat     `json:"seats"`
	Community deck.Hand           `json:"community"`
	Payouts   []potmanager.Payout `json:"payouts"`
	Message   string              `json:"message"`
	WonByFold bool                `json:"wonByFold"`
}

// settleShowdown evaluates every participant still in the hand and pays the best hand
// Tied hands split the pot, with the odd chips going out in seat order.
func (g *Game) settleShowdown() {
	wm := potmanager.NewWinManager()
	analyzers := make(map[string]*handanalyzer.HandAnalyzer)
	for _, id := range g.seatOrder {
		p := g.participants[id]
		if !p.inHand() {
			continue
		}

		ha := p.getHandAnalyzer(g.community)
		analyzers[id] = ha
		wm.AddParticipant(p, ha.GetStrength())
	}

	amount := g.pot.Amount()
	winners := wm.Winners()
	payouts, err := g.pot.Split(winners)

	var message string
	switch {
	case err != nil:
		message = "No active players at showdown"
		g.pot.Forfeit()
	case len(winners) == 1:
		winner := winners[0].(*Participant)
		message = fmt.Sprintf("%s wins %d at showdown with a %s", winner.Name, amount, analyzers[winner.SeatID].Describe())
	default:
		names := make([]string, len(winners))
		for i, w := range winners {
			names[i] = w.(*Participant).Name
		}

		message = fmt.Sprintf("Split pot %d between: %s", amount, strings.Join(names, ", "))
	}

	g.finishHand(winners, payouts, message, false, func(p *Participant) (deck.Hand, string) {
		ha, ok := analyzers[p.SeatID]
		if !ok {
			return deck.Hand{}, ""
		}

		return ha.GetBestFive(), ha.Describe()
	})
}

// awardPotToLastPlayer pays the whole pot to the only participant who did not fold
func (g *Game) awardPotToLastPlayer() {
	var winners []potmanager.Participant
	for _, id := range g.seatOrder {
		if p := g.participants[id]; p.inHand() {
			winners = append(winners, p)
			break
		}
	}

	amount := g.pot.Amount()
	payouts, err := g.pot.Split(winners)

	message := "No active players left"
	if err != nil {
		g.pot.Forfeit()
	} else {
		message = fmt.Sprintf("%s wins %d (everyone else folded)", winners[0].(*Participant).Name, amount)
	}

	g.phase = PhaseShowdown
	g.setTurn(nil)
	g.finishHand(winners, payouts, message, true, func(*Participant) (deck.Hand, string) {
		return deck.Hand{}, ""
	})
}

func (g *Game) finishHand(winners []potmanager.Participant, payouts []potmanager.Payout, message string, wonByFold bool, best func(*Participant) (deck.Hand, string)) {
	winnerIDs := make([]string, len(winners))
	for i, w := range winners {
		winnerIDs[i] = w.ID()
	}

	seats := make([]*RevealedSeat, len(g.seatOrder))
	for i, id := range g.seatOrder {
		p := g.participants[id]
		bestFive, hand := best(p)
		seats[i] = &RevealedSeat{
			SeatID:   id,
			Name:     p.Name,
			Folded:   p.folded,
			Cards:    p.cards.Clone(),
			BestFive: bestFive,
			Hand:     hand,
		}
	}

	g.lastResult = message
	g.showdown = &Showdown{
		Winners:   winnerIDs,
		Seats:     seats,
		Community: g.community.Clone(),
		Payouts:   payouts,
		Message:   message,
		WonByFold: wonByFold,
	}

	g.logger.WithFields(logrus.Fields{
		"hand":      g.handNumber,
		"winners":   winnerIDs,
		"wonByFold": wonByFold,
	}).Info(message)
	g.log("", nil, "%s", message)
}
