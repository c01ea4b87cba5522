package room

import (
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
)

// Clock configures the timed parts of a table
type Clock struct {
	// TurnTimeout is how long a player has to act before they are folded
	TurnTimeout time.Duration `yaml:"turnTimeout" envconfig:"TURN_TIMEOUT"`
	// StartDelay is how long a table with enough players waits before dealing
	StartDelay time.Duration `yaml:"startDelay" envconfig:"START_DELAY"`
	// ShowdownDelay is how long the result is shown before the next hand
	ShowdownDelay time.Duration `yaml:"showdownDelay" envconfig:"SHOWDOWN_DELAY"`
	TickInterval  time.Duration `yaml:"tickInterval" envconfig:"TICK_INTERVAL"`
}

// DefaultClock returns the default clock
func DefaultClock() Clock {
	return Clock{
		TurnTimeout:   time.Second * 30,
		StartDelay:    time.Second * 5,
		ShowdownDelay: time.Second * 10,
		TickInterval:  time.Second,
	}
}

// Validate returns an error unless every duration is positive
func (c Clock) Validate() error {
	if c.TurnTimeout <= 0 || c.StartDelay <= 0 || c.ShowdownDelay <= 0 || c.TickInterval <= 0 {
		return errors.New("clock durations must be positive")
	}

	return nil
}

// schedule is the state of the turn clock and the hand scheduler
// Each timer carries a generation token. Re-arming or cancelling bumps the token, and a tick that
// captured an older token does nothing.
type schedule struct {
	turnToken    int
	turnSeq      int
	turnDeadline time.Time

	startToken int
	startArmed bool
	startAt    time.Time

	resumeAt     time.Time
	lastShowdown *texasholdem.Showdown
}

// generation is what a tick captured before it slept
type generation struct {
	turnToken  int
	startToken int
}

// capture returns the live generation. The caller must hold the lock.
func (d *Dealer) capture() generation {
	return generation{
		turnToken:  d.sched.turnToken,
		startToken: d.sched.startToken,
	}
}

func (d *Dealer) runLoop() {
	ticker := time.NewTicker(d.clock.TickInterval)
	defer ticker.Stop()

	d.lock.Lock()
	gen := d.capture()
	d.lock.Unlock()

	for {
		select {
		case <-ticker.C:
			gen = d.tick(gen)
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// tick runs the timers that are due and returns the generation for the next tick
func (d *Dealer) tick(gen generation) generation {
	d.lock.Lock()
	defer d.lock.Unlock()

	now := d.now()
	changed := false

	switch {
	case gen.turnToken != d.sched.turnToken:
		d.logger.WithField("token", gen.turnToken).Debug("dropping stale turn tick")
	case d.sched.turnDeadline.IsZero():
	case !now.Before(d.sched.turnDeadline):
		d.expireTurn()
		changed = true
	default:
		d.sendTimer(now)
	}

	if d.sched.startArmed && gen.startToken == d.sched.startToken && !now.Before(d.sched.startAt) {
		d.sched.startArmed = false
		if d.game.ReadyToStart() {
			if err := d.game.StartHand(); err != nil {
				d.logger.WithError(err).Debug("could not start hand")
			}

			changed = true
		}
	}

	if !d.sched.resumeAt.IsZero() && !now.Before(d.sched.resumeAt) {
		d.sched.resumeAt = time.Time{}
		if d.game.Phase() == texasholdem.PhaseShowdown {
			if err := d.game.StartNextHand(); err != nil {
				d.logger.WithError(err).Debug("could not start next hand")
			}

			changed = true
		}
	}

	if changed {
		d.afterMutation()
	}

	return d.capture()
}

// expireTurn folds the current turn through the same path as a player action
func (d *Dealer) expireTurn() {
	turn := d.game.CurrentTurn()
	if turn == nil {
		return
	}

	d.logger.WithField("seat", turn.SeatID).Info("turn timed out")
	d.addLogMessages(playable.SimpleLogMessageSlice(turn.SeatID, "{} ran out of time"))
	if err := d.game.Act(turn.SeatID, string(action.Fold), 0); err != nil {
		d.logger.WithError(err).WithField("seat", turn.SeatID).Error("could not fold expired turn")
	}
}

// syncSchedules (re)arms or cancels the timers to match the game. The caller must hold the lock.
func (d *Dealer) syncSchedules() {
	now := d.now()
	phase := d.game.Phase()

	if seq := d.game.TurnSeq(); seq != d.sched.turnSeq {
		d.sched.turnSeq = seq
		d.sched.turnToken++
		d.sched.turnDeadline = time.Time{}

		if turn := d.game.CurrentTurn(); turn != nil && phase.IsBettingRound() {
			d.sched.turnDeadline = now.Add(d.clock.TurnTimeout)
			d.logger.WithFields(logrus.Fields{
				"seat":  turn.SeatID,
				"token": d.sched.turnToken,
			}).Debug("armed turn clock")
		}
	}

	if sd := d.game.Showdown(); phase == texasholdem.PhaseShowdown && sd != d.sched.lastShowdown {
		d.sched.lastShowdown = sd
		d.sched.resumeAt = now.Add(d.clock.ShowdownDelay)
		d.sendAll(&playable.Response{
			Key:  "showdown",
			Data: sd,
		})
	}

	if phase == texasholdem.PhaseWaiting && d.game.ReadyToStart() {
		if !d.sched.startArmed {
			d.sched.startToken++
			d.sched.startArmed = true
			d.sched.startAt = now.Add(d.clock.StartDelay)
			d.logger.WithField("token", d.sched.startToken).Debug("armed hand start")
		}
	} else if d.sched.startArmed {
		d.sched.startToken++
		d.sched.startArmed = false
		d.logger.WithField("token", d.sched.startToken).Debug("cancelled hand start")
	}
}

func (d *Dealer) sendTimer(now time.Time) {
	var name string
	if turn := d.game.CurrentTurn(); turn != nil {
		name = turn.Name
	}

	remaining := int(math.Ceil(d.sched.turnDeadline.Sub(now).Seconds()))
	d.sendAll(&playable.Response{
		Key: "timer",
		Data: &timerState{
			Remaining:       remaining,
			CurrentTurnName: name,
		},
	})
}
