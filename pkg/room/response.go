package room

import (
	"errors"

	"holdem-server/pkg/playable"
)

type chatMessage struct {
	User         string `json:"user"`
	Message      string `json:"message"`
	Announcement bool   `json:"announcement"`
}

type timerState struct {
	Remaining       int    `json:"remaining"`
	CurrentTurnName string `json:"currentTurnName"`
}

// TableSummary describes a live table
type TableSummary struct {
	Name    string `json:"name"`
	Phase   string `json:"phase"`
	Seats   int    `json:"seats"`
	Clients int    `json:"clients"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

var errUnknownMessage = errors.New("unknown message")
