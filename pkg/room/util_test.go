package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/texasholdem"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// newTestDealer returns a dealer whose time only moves when the test says so
// The run loop is not started. Tests call tick() directly.
func newTestDealer(t *testing.T) (*Dealer, *fakeClock) {
	t.Helper()

	d, err := NewDealer("test", texasholdem.DefaultOptions(), DefaultClock())
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)}
	d.now = func() time.Time {
		return clock.now
	}

	return d, clock
}

func addClients(t *testing.T, d *Dealer, ids ...string) []*Client {
	t.Helper()

	clients := make([]*Client, len(ids))
	for i, id := range ids {
		clients[i] = NewClient(id, d.Name())
		d.AddClient(clients[i])
	}

	return clients
}

// joinAll seats every client under its own id
func joinAll(t *testing.T, d *Dealer, clients ...*Client) {
	t.Helper()

	for _, c := range clients {
		status, err := d.Join(c, c.ID)
		require.NoError(t, err)
		require.Equal(t, texasholdem.JoinSeated, status)
	}
}

// drain returns every message waiting for the client
func drain(c *Client) []*playable.Response {
	var out []*playable.Response
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg.(*playable.Response))
		default:
			return out
		}
	}
}

func byKey(responses []*playable.Response, key string) []*playable.Response {
	var out []*playable.Response
	for _, res := range responses {
		if res.Key == key {
			out = append(out, res)
		}
	}

	return out
}

// startHand fires the start timer and returns the generation after it
func startHand(t *testing.T, d *Dealer, clock *fakeClock) generation {
	t.Helper()

	require.True(t, d.sched.startArmed)
	clock.advance(d.clock.StartDelay)
	gen := d.tick(d.capture())
	require.Equal(t, texasholdem.PhasePreFlop, d.game.Phase())

	return gen
}
