package texasholdem

import (
	"github.com/sirupsen/logrus"
	"holdem-server/internal/rng"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/potmanager"
)

// JoinStatus is the outcome of a successful join
type JoinStatus string

// JoinStatus constants
const (
	JoinSeated JoinStatus = "seated"
	JoinQueued JoinStatus = "queued"
)

// ErrHandInProgress is returned when a hand is started during a betting round
const ErrHandInProgress = ParticipantError("a hand is already in progress")

type waitingPlayer struct {
	id   string
	name string
}

// LastAction is the most recent action taken at the table
type LastAction struct {
	Action action.Action `json:"action"`
	SeatID string        `json:"seatId"`
	Amount int           `json:"amount"`
}

// Game is a table of No-Limit Texas Hold'em played with a single shared pot
// Game is not safe for concurrent use. The room serializes every call.
type Game struct {
	options Options
	logger  logrus.FieldLogger
	gen     rng.Generator

	participants map[string]*Participant
	seatOrder    []string
	waiting      []*waitingPlayer
	dealerIndex  int

	deck        *deck.Deck
	community   deck.Hand
	pot         *potmanager.Pot
	phase       Phase
	currentTurn string
	currentBet  int
	acted       map[string]bool
	lastAction  *LastAction

	handNumber int
	turnSeq    int
	lastResult string
	showdown   *Showdown

	logs []*playable.LogMessage
}

// NewGame returns a new table with no players
func NewGame(logger logrus.FieldLogger, opts Options) (*Game, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		options:      opts,
		logger:       logger,
		gen:          rng.Crypto{},
		participants: make(map[string]*Participant),
		seatOrder:    make([]string, 0, opts.MaxSeats),
		waiting:      make([]*waitingPlayer, 0),
	}

	g.resetHandFields()
	return g, nil
}

// Options returns the options the table was created with
func (g *Game) Options() Options {
	return g.options
}

// AddPlayer seats the player, or queues them if a hand is being played
// Joining again with an identity that is already present is a no-op.
func (g *Game) AddPlayer(id, name string) (JoinStatus, error) {
	if _, ok := g.participants[id]; ok {
		return JoinSeated, nil
	}

	if g.waitingIndex(id) >= 0 {
		return JoinQueued, nil
	}

	if g.nameTaken(name) {
		return "", ErrNameTaken
	}

	if len(g.seatOrder) >= g.options.MaxSeats {
		return "", ErrTableFull
	}

	if g.phase.IsBettingRound() {
		g.waiting = append(g.waiting, &waitingPlayer{id: id, name: name})
		g.log(id, nil, "{} is waiting for the next hand")
		return JoinQueued, nil
	}

	g.seat(id, name)
	return JoinSeated, nil
}

func (g *Game) seat(id, name string) {
	g.participants[id] = newParticipant(id, name, g.options.StartingStack)
	g.seatOrder = append(g.seatOrder, id)
	g.log(id, nil, "{} sat down with %d", g.options.StartingStack)
}

func (g *Game) nameTaken(name string) bool {
	for _, p := range g.participants {
		if p.Name == name {
			return true
		}
	}

	for _, w := range g.waiting {
		if w.name == name {
			return true
		}
	}

	return false
}

func (g *Game) waitingIndex(id string) int {
	for i, w := range g.waiting {
		if w.id == id {
			return i
		}
	}

	return -1
}

func (g *Game) seatIndex(id string) int {
	for i, sid := range g.seatOrder {
		if sid == id {
			return i
		}
	}

	return -1
}

// RemovePlayer removes a seated or waiting player
// Returns false if the identity is unknown.
func (g *Game) RemovePlayer(id string) bool {
	if idx := g.waitingIndex(id); idx >= 0 {
		g.waiting = append(g.waiting[:idx], g.waiting[idx+1:]...)
		return true
	}

	if _, ok := g.participants[id]; !ok {
		return false
	}

	idx := g.seatIndex(id)
	delete(g.participants, id)
	delete(g.acted, id)
	g.seatOrder = append(g.seatOrder[:idx], g.seatOrder[idx+1:]...)

	// keep the button on the same seat
	if idx < g.dealerIndex {
		g.dealerIndex--
	}

	if n := len(g.seatOrder); n > 0 {
		g.dealerIndex %= n
	} else {
		g.dealerIndex = 0
	}

	g.log(id, nil, "{} left the table")

	if !g.phase.IsBettingRound() {
		return true
	}

	if g.currentTurn == id {
		g.currentTurn = ""
		g.advanceTurnFrom(idx - 1)
	}

	// checked even if advancing the turn just settled the hand
	if len(g.ActiveSeats(true)) < 2 {
		g.abortHand()
	}

	return true
}

// abortHand returns the table to waiting
// The pot is not returned to the remaining stacks.
func (g *Game) abortHand() {
	forfeited := g.pot.Forfeit()
	g.logger.WithField("pot", forfeited).Warn("hand aborted without enough players")
	if forfeited > 0 {
		g.log("", nil, "Hand aborted, %d in the pot was forfeited", forfeited)
	} else {
		g.log("", nil, "Hand aborted")
	}

	g.resetHandFields()
	g.seatWaitingPlayers()
}

// seatWaitingPlayers moves queued players into free seats in the order they arrived
func (g *Game) seatWaitingPlayers() {
	for len(g.waiting) > 0 && len(g.seatOrder) < g.options.MaxSeats {
		w := g.waiting[0]
		g.waiting = g.waiting[1:]
		g.seat(w.id, w.name)
	}
}

// ActiveSeats returns the participants with chips in seat order
// Folded participants are only included if includeFolded is true.
func (g *Game) ActiveSeats(includeFolded bool) []*Participant {
	seats := make([]*Participant, 0, len(g.seatOrder))
	for _, id := range g.seatOrder {
		p := g.participants[id]
		if p.stack <= 0 {
			continue
		}

		if !includeFolded && p.folded {
			continue
		}

		seats = append(seats, p)
	}

	return seats
}

// ReadyToStart returns true if a hand could be started right now
// Queued players count if there is a free seat for them.
func (g *Game) ReadyToStart() bool {
	if g.phase != PhaseWaiting {
		return false
	}

	queued := g.options.MaxSeats - len(g.seatOrder)
	if len(g.waiting) < queued {
		queued = len(g.waiting)
	}

	return len(g.ActiveSeats(true))+queued >= 2
}

// resetHandFields clears everything scoped to a single hand
// Seats, stacks and the dealer index are kept.
func (g *Game) resetHandFields() {
	g.deck = deck.New()
	g.community = make(deck.Hand, 0, 5)
	g.pot = potmanager.New()
	g.phase = PhaseWaiting
	g.currentBet = 0
	g.acted = make(map[string]bool)
	g.lastAction = nil
	g.setTurn(nil)

	for _, p := range g.participants {
		p.newHand()
	}
}

// StartHand seats queued players, deals two cards to everybody with chips and posts the blinds
func (g *Game) StartHand() error {
	if g.phase.IsBettingRound() {
		return ErrHandInProgress
	}

	g.seatWaitingPlayers()
	dealt := g.ActiveSeats(true)

	g.resetHandFields()
	if len(dealt) < 2 {
		return ErrNotEnoughPlayers
	}

	g.handNumber++
	g.lastResult = ""
	g.showdown = nil
	g.deck.Shuffle(g.gen)
	deckHash := g.deck.HashCode()

	for i := 0; i < 2; i++ {
		for _, p := range dealt {
			card, err := g.deck.Draw()
			if err != nil {
				// 52 cards always cover four seats and the board
				panic(err)
			}

			p.cards.AddCard(card)
		}
	}

	g.phase = PhasePreFlop
	g.logger.WithFields(logrus.Fields{
		"hand":    g.handNumber,
		"players": len(dealt),
		"dealer":  g.dealerName(),
		"deck":    deckHash,
	}).Info("starting hand")
	g.log("", nil, "Hand #%d started", g.handNumber)

	g.postBlinds(len(dealt))
	return nil
}

func (g *Game) postBlinds(dealt int) {
	dealer := g.dealerIndex % len(g.seatOrder)

	// heads-up, the dealer posts the small blind
	var sb *Participant
	if p := g.participants[g.seatOrder[dealer]]; dealt == 2 && p.canAct() {
		sb = p
	} else {
		sb = g.nextActorFrom(dealer)
	}

	bb := g.nextActorFrom(g.seatIndex(sb.SeatID))

	g.postBlind(sb, g.options.SmallBlind, "small")
	g.postBlind(bb, g.options.BigBlind, "big")
	g.currentBet = g.options.BigBlind

	if g.roundComplete() {
		g.advancePhase()
		return
	}

	g.setTurn(g.nextActorFrom(g.seatIndex(bb.SeatID)))
}

// postBlind posts up to amount, a short stack posts what it has
func (g *Game) postBlind(p *Participant, amount int, which string) {
	if amount > p.stack {
		amount = p.stack
	}

	g.pot.Collect(p, amount)
	p.streetBet += amount
	g.log(p.SeatID, nil, "{} posted the %s blind of %d", which, amount)
}

// RotateDealer moves the button one seat
func (g *Game) RotateDealer() {
	if n := len(g.seatOrder); n > 0 {
		g.dealerIndex = (g.dealerIndex + 1) % n
	}
}

// StartNextHand rotates the dealer and starts a new hand
func (g *Game) StartNextHand() error {
	g.RotateDealer()
	return g.StartHand()
}

func (g *Game) setTurn(p *Participant) {
	g.currentTurn = ""
	if p != nil {
		g.currentTurn = p.SeatID
	}

	g.turnSeq++
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// CurrentTurn returns the participant who must act, or nil
func (g *Game) CurrentTurn() *Participant {
	return g.participants[g.currentTurn]
}

// TurnSeq increases every time the turn is assigned, even to nobody
func (g *Game) TurnSeq() int {
	return g.turnSeq
}

// Showdown returns the reveal of the last settled hand, or nil
func (g *Game) Showdown() *Showdown {
	return g.showdown
}

// SeatCount returns the number of seated players
func (g *Game) SeatCount() int {
	return len(g.seatOrder)
}

// NameOf returns the name of a seated or waiting player
func (g *Game) NameOf(id string) (string, bool) {
	if p, ok := g.participants[id]; ok {
		return p.Name, true
	}

	if idx := g.waitingIndex(id); idx >= 0 {
		return g.waiting[idx].name, true
	}

	return "", false
}

// Participant returns a seated player
func (g *Game) Participant(id string) (*Participant, bool) {
	p, ok := g.participants[id]
	return p, ok
}

func (g *Game) dealerName() string {
	if len(g.seatOrder) == 0 {
		return ""
	}

	return g.participants[g.seatOrder[g.dealerIndex%len(g.seatOrder)]].Name
}

// TotalChips returns every stack plus the pot
func (g *Game) TotalChips() int {
	total := g.pot.Amount()
	for _, p := range g.participants {
		total += p.stack
	}

	return total
}
