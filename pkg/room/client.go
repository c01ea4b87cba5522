package room

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/playable"
)

// Client is a connection to a table
// The transport owns the connection. It drains SendChan() and delivers inbound messages to
// ReceivedMessage().
type Client struct {
	// ID is the seat identity of the connection
	ID string

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer    *Dealer
	tableName string
}

// NewClient returns a new client object
func NewClient(id, tableName string) *Client {
	return &Client{
		ID:        id,
		send:      make(chan interface{}, 256),
		Close:     make(chan string),
		tableName: tableName,
	}
}

// Send send a message to the web client
// A client that is not keeping up misses the message instead of blocking the table.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("dropped message to slow client")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// TableName returns the name of the table the client connected to
func (c *Client) TableName() string {
	return c.tableName
}

// String returns a traceable identifier for the seat and table
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.ID, c.tableName)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
