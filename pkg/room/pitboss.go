package room

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/playable/poker/texasholdem"
)

// PitBoss is responsible for dispatching players to tables
// A table is opened by its first client and closed when its last client leaves.
type PitBoss struct {
	opts  texasholdem.Options
	clock Clock

	lock    sync.RWMutex
	dealers map[string]*Dealer
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts texasholdem.Options, clock Clock) (*PitBoss, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := clock.Validate(); err != nil {
		return nil, err
	}

	return &PitBoss{
		opts:    opts,
		clock:   clock,
		dealers: make(map[string]*Dealer),
	}, nil
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) error {
	logrus.WithField("player", client.String()).Debug("client connected")

	p.lock.Lock()
	defer p.lock.Unlock()

	dealer, found := p.dealers[client.TableName()]
	if !found {
		var err error
		dealer, err = NewDealer(client.TableName(), p.opts, p.clock)
		if err != nil {
			return err
		}

		dealer.StartShift()
		p.dealers[client.TableName()] = dealer
	}

	dealer.AddClient(client)
	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	logrus.WithField("player", client.String()).Debug("client disconnected")

	p.lock.Lock()
	defer p.lock.Unlock()

	dealer, found := p.dealers[client.TableName()]
	if !found {
		logrus.WithField("table", client.TableName()).WithField("type", "exception").Error("table not found")
		return
	}

	if dealer.RemoveClient(client) {
		dealer.EndShift()
		delete(p.dealers, client.TableName())
	}
}

// Dealer returns the dealer running the named table
func (p *PitBoss) Dealer(name string) (*Dealer, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	d, ok := p.dealers[name]
	return d, ok
}

// Tables summarizes every open table, sorted by name
func (p *PitBoss) Tables() []*TableSummary {
	p.lock.RLock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, d := range p.dealers {
		dealers = append(dealers, d)
	}
	p.lock.RUnlock()

	tables := make([]*TableSummary, len(dealers))
	for i, d := range dealers {
		tables[i] = d.Summary()
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Name < tables[j].Name
	})

	return tables
}
