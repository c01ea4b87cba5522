package potmanager

import (
	"errors"
	"fmt"
)

// ErrNoWinners is returned when a pot is split between nobody
var ErrNoWinners = errors.New("cannot split the pot without a winner")

// Payout is the amount a participant collected from the pot
type Payout struct {
	ParticipantID string `json:"participantId"`
	Amount        int    `json:"amount"`
}

// Pot is the single shared pot of a hand
// Chips move into the pot from a participant's balance and back out when the pot is split.
type Pot struct {
	amount int
}

// New returns an empty pot
func New() *Pot {
	return &Pot{}
}

// Collect moves amount from the participant's balance into the pot
func (p *Pot) Collect(pt Participant, amount int) {
	if amount <= 0 {
		return
	}

	pt.AdjustBalance(-amount)
	p.amount += amount
}

// Amount returns the number of chips in the pot
func (p *Pot) Amount() int {
	return p.amount
}

// Split divides the pot evenly between the winners
// The remainder is paid one chip at a time in the order the winners are given. The pot is empty afterwards.
func (p *Pot) Split(winners []Participant) ([]Payout, error) {
	if len(winners) == 0 {
		return nil, ErrNoWinners
	}

	share := p.amount / len(winners)
	remainder := p.amount % len(winners)

	payouts := make([]Payout, len(winners))
	for i, winner := range winners {
		amount := share
		if i < remainder {
			amount++
		}

		winner.AdjustBalance(amount)
		payouts[i] = Payout{
			ParticipantID: winner.ID(),
			Amount:        amount,
		}
	}

	p.reset()
	return payouts, nil
}

// Forfeit empties the pot without paying anybody and returns what was discarded
func (p *Pot) Forfeit() int {
	amount := p.amount
	p.reset()
	return amount
}

func (p *Pot) reset() {
	p.amount = 0
}

func (p *Pot) String() string {
	return fmt.Sprintf("pot of %d", p.amount)
}
