package texasholdem

import (
	"errors"
	"fmt"
)

// MaxSeats is the most seats a table can have
const MaxSeats = 4

// Options configures how Texas Hold'em is played
type Options struct {
	StartingStack int `yaml:"startingStack" envconfig:"STARTING_STACK"`
	SmallBlind    int `yaml:"smallBlind" envconfig:"SMALL_BLIND"`
	BigBlind      int `yaml:"bigBlind" envconfig:"BIG_BLIND"`
	MaxSeats      int `yaml:"maxSeats" envconfig:"MAX_SEATS"`
}

// DefaultOptions returns the default options for Texas Hold'em
func DefaultOptions() Options {
	return Options{
		StartingStack: 200,
		SmallBlind:    5,
		BigBlind:      10,
		MaxSeats:      MaxSeats,
	}
}

// Validate returns an error if the options cannot be played with
func (o Options) Validate() error {
	if o.StartingStack <= 0 {
		return errors.New("starting stack must be positive")
	}

	if o.SmallBlind <= 0 || o.BigBlind <= 0 {
		return errors.New("blinds must be positive")
	}

	if o.SmallBlind > o.BigBlind {
		return errors.New("small blind must not exceed the big blind")
	}

	if o.MaxSeats < 2 || o.MaxSeats > MaxSeats {
		return fmt.Errorf("seats must be between 2 and %d", MaxSeats)
	}

	return nil
}
