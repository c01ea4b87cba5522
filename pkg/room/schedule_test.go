package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"holdem-server/pkg/playable/poker/texasholdem"
)

func TestClock_Validate(t *testing.T) {
	a := assert.New(t)

	a.NoError(DefaultClock().Validate())

	c := DefaultClock()
	c.TurnTimeout = 0
	a.EqualError(c.Validate(), "clock durations must be positive")

	c = DefaultClock()
	c.TickInterval = -time.Second
	a.Error(c.Validate())

	_, err := NewDealer("bad", texasholdem.DefaultOptions(), c)
	a.Error(err)
}

func TestDealer_startIsDebounced(t *testing.T) {
	a := assert.New(t)
	d, clock := newTestDealer(t)
	clients := addClients(t, d, "alice", "bob")

	joinAll(t, d, clients[0])
	a.False(d.sched.startArmed, "one player cannot start a hand")

	joinAll(t, d, clients[1])
	a.True(d.sched.startArmed)
	a.Equal(1, d.sched.startToken)
	a.Equal(clock.now.Add(5*time.Second), d.sched.startAt)

	// not due yet
	clock.advance(4 * time.Second)
	gen := d.tick(d.capture())
	a.Equal(texasholdem.PhaseWaiting, d.game.Phase())

	// a player leaving cancels the pending start
	d.Leave(clients[1])
	a.False(d.sched.startArmed)
	a.Equal(2, d.sched.startToken)

	// and joining again restarts the countdown
	joinAll(t, d, clients[1])
	a.True(d.sched.startArmed)
	a.Equal(3, d.sched.startToken)

	// a tick that captured the old token does nothing even though the time has passed
	clock.advance(5 * time.Second)
	d.tick(gen)
	a.Equal(texasholdem.PhaseWaiting, d.game.Phase())
	a.True(d.sched.startArmed)

	d.tick(d.capture())
	a.Equal(texasholdem.PhasePreFlop, d.game.Phase())
	a.False(d.sched.startArmed)
}

func TestDealer_turnClockFoldsTheActor(t *testing.T) {
	a := assert.New(t)
	d, clock := newTestDealer(t)
	clients := addClients(t, d, "alice", "bob")
	joinAll(t, d, clients...)

	gen := startHand(t, d, clock)
	turn := d.game.CurrentTurn()
	require.NotNil(t, turn)
	a.Equal("alice", turn.SeatID, "heads-up the dealer acts first")
	a.Equal(clock.now.Add(30*time.Second), d.sched.turnDeadline)

	drain(clients[0])
	clock.advance(10 * time.Second)
	gen = d.tick(gen)
	timers := byKey(drain(clients[0]), "timer")
	if a.Len(timers, 1) {
		a.Equal(&timerState{Remaining: 20, CurrentTurnName: "alice"}, timers[0].Data)
	}

	clock.advance(20 * time.Second)
	d.tick(gen)

	p, _ := d.game.Participant("alice")
	a.True(p.Folded())
	a.Equal(texasholdem.PhaseShowdown, d.game.Phase())
	a.True(d.game.Showdown().WonByFold)
	a.Equal([]string{"bob"}, d.game.Showdown().Winners)
	a.True(d.sched.turnDeadline.IsZero())

	var messages []string
	for _, msg := range d.logMessages {
		messages = append(messages, msg.Message)
	}

	a.Contains(messages, "{} ran out of time")
	a.Contains(messages, "{} folded")
}

func TestDealer_staleTurnTickIsDropped(t *testing.T) {
	a := assert.New(t)
	d, clock := newTestDealer(t)
	clients := addClients(t, d, "alice", "bob")
	joinAll(t, d, clients...)

	gen := startHand(t, d, clock)
	a.NoError(d.Act(clients[0], "call", 0))

	turn := d.game.CurrentTurn()
	require.NotNil(t, turn)
	a.Equal("bob", turn.SeatID)

	// the old generation armed alice's clock, so it must not fold bob
	clock.advance(31 * time.Second)
	d.tick(gen)
	p, _ := d.game.Participant("bob")
	a.False(p.Folded())
	a.Equal(texasholdem.PhasePreFlop, d.game.Phase())

	d.tick(d.capture())
	a.True(p.Folded())
	a.Equal(texasholdem.PhaseShowdown, d.game.Phase())
}

func TestDealer_nextHandAfterShowdown(t *testing.T) {
	a := assert.New(t)
	d, clock := newTestDealer(t)
	clients := addClients(t, d, "alice", "bob")
	joinAll(t, d, clients...)

	startHand(t, d, clock)
	drain(clients[1])
	a.NoError(d.Act(clients[0], "fold", 0))
	a.Equal(texasholdem.PhaseShowdown, d.game.Phase())
	a.Equal(clock.now.Add(10*time.Second), d.sched.resumeAt)

	showdowns := byKey(drain(clients[1]), "showdown")
	if a.Len(showdowns, 1) {
		a.Same(d.game.Showdown(), showdowns[0].Data)
	}

	clock.advance(9 * time.Second)
	d.tick(d.capture())
	a.Equal(texasholdem.PhaseShowdown, d.game.Phase())

	clock.advance(time.Second)
	d.tick(d.capture())
	a.Equal(texasholdem.PhasePreFlop, d.game.Phase())
	a.Equal(2, d.game.PublicState().HandNumber)
	a.Equal("bob", d.game.PublicState().DealerName, "the button moves")
	a.True(d.sched.resumeAt.IsZero())
}

func TestDealer_noNextHandWhenAlone(t *testing.T) {
	a := assert.New(t)
	d, clock := newTestDealer(t)
	clients := addClients(t, d, "alice", "bob")
	joinAll(t, d, clients...)

	startHand(t, d, clock)
	a.NoError(d.Act(clients[0], "fold", 0))
	d.Leave(clients[0])

	clock.advance(10 * time.Second)
	d.tick(d.capture())
	a.Equal(texasholdem.PhaseWaiting, d.game.Phase())
	a.False(d.sched.startArmed)
}
