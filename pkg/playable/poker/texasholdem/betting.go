package texasholdem

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/playable/poker/action"
)

// ActionOptions are the actions the current turn may take, along with their sizing
type ActionOptions struct {
	Actions   []action.Action `json:"actions"`
	ToCall    int             `json:"toCall"`
	RaiseBy   int             `json:"raiseBy"`
	BetAmount int             `json:"betAmount"`
}

// Can returns true if a is one of the legal actions
func (a *ActionOptions) Can(act action.Action) bool {
	if a == nil {
		return false
	}

	for _, legal := range a.Actions {
		if legal == act {
			return true
		}
	}

	return false
}

func (g *Game) toCall(p *Participant) int {
	if owed := g.currentBet - p.streetBet; owed > 0 {
		return owed
	}

	return 0
}

// LegalActions returns what the participant may do
// Anybody but the current turn gets nil.
func (g *Game) LegalActions(id string) *ActionOptions {
	if !g.phase.IsBettingRound() || id != g.currentTurn {
		return nil
	}

	p := g.participants[id]
	toCall := g.toCall(p)

	actions := []action.Action{action.Fold}
	if toCall == 0 {
		actions = append(actions, action.Check)
	} else {
		actions = append(actions, action.Call)
	}

	if g.currentBet == 0 && p.stack > 0 {
		actions = append(actions, action.Bet)
	}

	if g.currentBet > 0 && p.stack > toCall {
		actions = append(actions, action.Raise)
	}

	return &ActionOptions{
		Actions:   actions,
		ToCall:    toCall,
		RaiseBy:   g.options.BigBlind,
		BetAmount: g.options.BigBlind,
	}
}

// Act applies the action and advances the turn
// This is the only entry point for both player actions and the turn clock.
func (g *Game) Act(id string, kind string, amount int) error {
	if err := g.ProcessAction(id, kind, amount); err != nil {
		return err
	}

	g.AdvanceTurn()
	return nil
}

// ProcessAction validates and applies a single action without moving the turn
// An amount <= 0 uses the big blind as the bet or raise size.
func (g *Game) ProcessAction(id string, kind string, amount int) error {
	if !g.phase.IsBettingRound() || id != g.currentTurn {
		return ErrNotCurrentTurn
	}

	p, ok := g.participants[id]
	if !ok || p.folded {
		return ErrInvalidActor
	}

	act, err := action.FromString(kind)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownAction, kind)
	}

	logAmount := 0
	switch act {
	case action.Fold:
		p.folded = true
	case action.Check:
		if g.toCall(p) != 0 {
			return ErrCannotCheck
		}
	case action.Call:
		paid := g.toCall(p)
		if paid > p.stack {
			paid = p.stack
		}

		g.commit(p, paid)
		logAmount = paid
	case action.Bet:
		if g.currentBet != 0 {
			return ErrCannotBet
		}

		if amount <= 0 {
			amount = g.options.BigBlind
		}

		if amount > p.stack {
			amount = p.stack
		}

		if amount <= 0 {
			return ErrNoChipsToBet
		}

		g.commit(p, amount)
		g.currentBet = p.streetBet
		logAmount = amount
	case action.Raise:
		if g.currentBet == 0 {
			return ErrNothingToRaise
		}

		if p.stack <= g.toCall(p) {
			return ErrNotEnoughToRaise
		}

		raiseBy := amount
		if raiseBy <= 0 {
			raiseBy = g.options.BigBlind
		}

		// anything past the stack is an all-in
		if raiseBy > p.stack {
			raiseBy = p.stack
		}

		need := g.currentBet + raiseBy - p.streetBet
		if need > p.stack {
			need = p.stack
		}

		if need <= 0 {
			return ErrInvalidRaise
		}

		g.commit(p, need)
		if p.streetBet > g.currentBet {
			g.currentBet = p.streetBet
		}

		logAmount = p.streetBet
	}

	// aggression reopens the betting for everybody else
	if act.IsAggressive() {
		g.acted = make(map[string]bool)
	}

	g.acted[id] = true

	g.lastAction = &LastAction{
		Action: act,
		SeatID: id,
		Amount: logAmount,
	}

	g.logger.WithFields(logrus.Fields{
		"seat":   id,
		"action": string(act),
		"amount": logAmount,
		"phase":  g.phase.String(),
	}).Debug("action")
	g.log(id, nil, "{} %s", act.LogMessage(logAmount))

	return nil
}

func (g *Game) commit(p *Participant, amount int) {
	g.pot.Collect(p, amount)
	p.streetBet += amount
}

func (g *Game) inHandCount() int {
	n := 0
	for _, p := range g.participants {
		if p.inHand() {
			n++
		}
	}

	return n
}

// actors are the participants who can still put chips in, in seat order
func (g *Game) actors() []*Participant {
	actors := make([]*Participant, 0, len(g.seatOrder))
	for _, id := range g.seatOrder {
		if p := g.participants[id]; p.canAct() {
			actors = append(actors, p)
		}
	}

	return actors
}

// roundComplete returns true if nobody is owed an action on this street
// Seats that are all-in are not owed anything. With a single seat left to act, it only has to
// have matched the current bet.
func (g *Game) roundComplete() bool {
	actors := g.actors()
	switch len(actors) {
	case 0:
		return true
	case 1:
		return actors[0].streetBet >= g.currentBet
	}

	for _, p := range actors {
		if !g.acted[p.SeatID] || p.streetBet != g.currentBet {
			return false
		}
	}

	return true
}

// nextActorFrom returns the first participant after index that can act, wrapping around
func (g *Game) nextActorFrom(index int) *Participant {
	n := len(g.seatOrder)
	for i := 1; i <= n; i++ {
		j := (index + i) % n
		if j < 0 {
			j += n
		}

		if p := g.participants[g.seatOrder[j]]; p.canAct() {
			return p
		}
	}

	return nil
}

// AdvanceTurn moves the hand along after an action
// The hand is won by fold if a single participant is left, the street ends if the round is
// complete, otherwise the turn passes to the next seat that can act.
func (g *Game) AdvanceTurn() {
	g.advanceTurnFrom(g.seatIndex(g.currentTurn))
}

func (g *Game) advanceTurnFrom(index int) {
	if !g.phase.IsBettingRound() {
		return
	}

	if g.inHandCount() <= 1 {
		g.awardPotToLastPlayer()
		return
	}

	if g.roundComplete() {
		g.advancePhase()
		return
	}

	next := g.nextActorFrom(index)
	if next == nil {
		g.advancePhase()
		return
	}

	g.setTurn(next)
}

// advancePhase deals the next street, or settles the hand after the river
// Streets nobody can bet on are dealt straight away.
func (g *Game) advancePhase() {
	switch g.phase {
	case PhasePreFlop:
		g.dealCommunity(3)
		g.phase = PhaseFlop
	case PhaseFlop:
		g.dealCommunity(1)
		g.phase = PhaseTurn
	case PhaseTurn:
		g.dealCommunity(1)
		g.phase = PhaseRiver
	case PhaseRiver:
		g.phase = PhaseShowdown
		g.setTurn(nil)
		g.settleShowdown()
		return
	default:
		return
	}

	g.resetStreet()
	if g.roundComplete() {
		g.advancePhase()
		return
	}

	g.setTurn(g.nextActorFrom(g.dealerIndex % len(g.seatOrder)))
}

func (g *Game) resetStreet() {
	for _, p := range g.participants {
		p.streetBet = 0
	}

	g.currentBet = 0
	g.acted = make(map[string]bool)
}

func (g *Game) dealCommunity(n int) {
	if !g.deck.CanDraw(n) {
		panic(fmt.Sprintf("cannot deal %d community cards from %d", n, g.deck.CardsLeft()))
	}

	start := len(g.community)
	for i := 0; i < n; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			panic(err)
		}

		g.community.AddCard(card)
	}

	g.log("", g.community[start:].Clone(), "Dealt the %s", nextPhase(g.phase))
}

// nextPhase returns the phase that follows p
func nextPhase(p Phase) Phase {
	switch p {
	case PhaseWaiting:
		return PhasePreFlop
	case PhaseShowdown:
		return PhaseWaiting
	}

	return p + 1
}
