package room

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"holdem-server/internal/util"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/texasholdem"
)

// guest names are retried a few times in case of a collision
const guestNameAttempts = 5

// Dealer runs a single table
// Every command and every timer takes the same lock before touching the game.
type Dealer struct {
	name   string
	logger logrus.FieldLogger
	clock  Clock
	now    func() time.Time

	lock        sync.Mutex
	game        *texasholdem.Game
	clients     map[*Client]bool
	logMessages []*playable.LogMessage
	sched       schedule

	close     chan bool
	closeOnce sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(name string, opts texasholdem.Options, clock Clock) (*Dealer, error) {
	if err := clock.Validate(); err != nil {
		return nil, err
	}

	logger := logrus.WithField("table", name)
	game, err := texasholdem.NewGame(logger, opts)
	if err != nil {
		return nil, err
	}

	d := &Dealer{
		name:    name,
		logger:  logger,
		clock:   clock,
		now:     time.Now,
		game:    game,
		clients: make(map[*Client]bool),
		close:   make(chan bool),
	}

	d.sched.turnSeq = game.TurnSeq()
	return d, nil
}

// Name returns the name of the table
func (d *Dealer) Name() string {
	return d.name
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// AddClient adds a client and sends it the current state
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	defer d.lock.Unlock()

	client.dealer = d
	d.clients[client] = true

	client.Send(&playable.Response{
		Key:  "state",
		Data: d.game.PublicState(),
	})
	client.Send(d.logResponse())
}

// RemoveClient removes the client and gives up its seat
// Returns true if it was the last client.
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	delete(d.clients, client)
	d.leave(client)

	return len(d.clients) == 0
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "join":
		name, _ := msg.AdditionalData.GetString("name")
		status, err := d.Join(c, name)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		res := playable.OK(msg.Context)
		res.Value = string(status)
		c.Send(res)
	case "leave":
		d.Leave(c)
		c.Send(playable.OK(msg.Context))
	case "action":
		amount, _ := msg.AdditionalData.GetInt("amount")
		if err := d.Act(c, msg.Subject, amount); err != nil {
			d.logger.WithError(err).WithField("client", c.String()).Debug("rejected action")
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(playable.OK(msg.Context))
	case "chat":
		message, _ := msg.AdditionalData.GetString("message")
		d.Chat(c, message)
	default:
		d.logger.WithField("msg", msg).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, errUnknownMessage))
	}
}

// Join seats the client, or queues it until the next hand
// An empty name is replaced with a guest name.
func (d *Dealer) Join(c *Client, name string) (texasholdem.JoinStatus, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	_, present := d.game.NameOf(c.ID)

	name = strings.TrimSpace(name)
	guest := name == ""

	var status texasholdem.JoinStatus
	var err error
	for i := 0; i < guestNameAttempts; i++ {
		if guest {
			name = util.GetRandomName()
		}

		status, err = d.game.AddPlayer(c.ID, name)
		if err != texasholdem.ErrNameTaken || !guest {
			break
		}
	}

	if err != nil {
		return "", err
	}

	if !present {
		name, _ = d.game.NameOf(c.ID)
		if status == texasholdem.JoinQueued {
			d.announce("%s is waiting for the next hand", name)
		} else {
			d.announce("%s has joined the game", name)
		}
	}

	d.afterMutation()
	return status, nil
}

// Leave gives up the client's seat or place in the queue
func (d *Dealer) Leave(c *Client) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.leave(c)
}

// leave requires the lock
func (d *Dealer) leave(c *Client) {
	name, ok := d.game.NameOf(c.ID)
	if !ok || !d.game.RemovePlayer(c.ID) {
		return
	}

	d.announce("%s has left the game", name)
	d.afterMutation()
}

// Act performs a betting action for the client
func (d *Dealer) Act(c *Client, kind string, amount int) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if err := d.game.Act(c.ID, kind, amount); err != nil {
		return err
	}

	d.afterMutation()
	return nil
}

// Chat relays a message to everybody at the table
func (d *Dealer) Chat(c *Client, message string) {
	d.lock.Lock()
	defer d.lock.Unlock()

	user, ok := d.game.NameOf(c.ID)
	if !ok {
		user = "anonymous"
	}

	d.sendAll(&playable.Response{
		Key: "chat",
		Data: &chatMessage{
			User:    user,
			Message: message,
		},
	})
}

// PublicState returns the state of the table
func (d *Dealer) PublicState() *texasholdem.PublicState {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.PublicState()
}

// Summary describes the table
func (d *Dealer) Summary() *TableSummary {
	d.lock.Lock()
	defer d.lock.Unlock()

	return &TableSummary{
		Name:    d.name,
		Phase:   d.game.Phase().String(),
		Seats:   d.game.SeatCount(),
		Clients: len(d.clients),
	}
}

// announce requires the lock
func (d *Dealer) announce(format string, a ...interface{}) {
	d.sendAll(&playable.Response{
		Key: "chat",
		Data: &chatMessage{
			Message:      fmt.Sprintf(format, a...),
			Announcement: true,
		},
	})
}

// afterMutation re-arms the timers and broadcasts the new state. The caller must hold the lock.
func (d *Dealer) afterMutation() {
	d.syncSchedules()

	if d.addLogMessages(d.game.TakeLogMessages()) {
		d.sendAll(d.logResponse())
	}

	public := &playable.Response{
		Key:  "state",
		Data: d.game.PublicState(),
	}

	for client := range d.clients {
		client.Send(public)
		if ps, ok := d.game.PrivateState(client.ID); ok {
			client.Send(&playable.Response{
				Key:  "private",
				Data: ps,
			})
		}
	}
}

// sendAll requires the lock
func (d *Dealer) sendAll(res *playable.Response) {
	for client := range d.clients {
		client.Send(res)
	}
}
