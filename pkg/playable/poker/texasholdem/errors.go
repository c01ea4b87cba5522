package texasholdem

// ParticipantError is an error caused by the request of a participant
// The message is safe to show to that participant.
type ParticipantError string

func (p ParticipantError) Error() string {
	return string(p)
}

// validation errors
const (
	ErrNotCurrentTurn   = ParticipantError("not your turn")
	ErrInvalidActor     = ParticipantError("invalid player")
	ErrCannotCheck      = ParticipantError("cannot check (you must call or fold)")
	ErrCannotBet        = ParticipantError("cannot bet (you must call or raise)")
	ErrNothingToRaise   = ParticipantError("nothing to raise")
	ErrNotEnoughToRaise = ParticipantError("not enough chips to raise")
	ErrInvalidRaise     = ParticipantError("invalid raise")
	ErrNoChipsToBet     = ParticipantError("no chips to bet")
	ErrUnknownAction    = ParticipantError("unknown action")
)

// table errors
const (
	ErrNameTaken        = ParticipantError("name is already taken")
	ErrTableFull        = ParticipantError("table is full")
	ErrNotEnoughPlayers = ParticipantError("at least two players with chips are required")
)
