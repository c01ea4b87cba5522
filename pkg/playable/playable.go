package playable

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"holdem-server/pkg/deck"
)

// LogMessage is the format a game should send log messages in
// If SeatIDs is empty, assume it's a general statement, otherwise the message will be sent like "{player} did X, Y, Z"
type LogMessage struct {
	UUID    string       `json:"uuid"`
	SeatIDs []string     `json:"seatIds"`
	Cards   []*deck.Card `json:"cards"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

// Response is a single message sent to a client
// Key identifies the kind of message, i.e., "state" or "timer"
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
// A number that does not fit in an int is treated as missing.
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		if math.IsNaN(val) || val >= math.MaxInt || val < math.MinInt {
			return 0, false
		}

		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(seatID string, format string, a ...interface{}) *LogMessage {
	var seatIDs []string
	if seatID != "" {
		seatIDs = []string{seatID}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		SeatIDs: seatIDs,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(seatID string, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(seatID, format, a...)}
}
