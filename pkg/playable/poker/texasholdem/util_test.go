package texasholdem

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"holdem-server/internal/rng"
	"holdem-server/pkg/playable/poker/action"
)

// newTestGame seats the players in order. Each seat id is the lowercase name.
func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()

	game, err := NewGame(logrus.StandardLogger(), DefaultOptions())
	require.NoError(t, err)
	game.gen = rng.NewSeeded(1)

	for _, name := range names {
		status, err := game.AddPlayer(strings.ToLower(name), name)
		require.NoError(t, err)
		require.Equal(t, JoinSeated, status)
	}

	return game
}

func newStartedGame(t *testing.T, names ...string) *Game {
	t.Helper()

	game := newTestGame(t, names...)
	require.NoError(t, game.StartHand())
	return game
}

func assertAction(t *testing.T, game *Game, id string, act action.Action, msgAndArgs ...interface{}) {
	t.Helper()
	assertActionAndAmount(t, game, id, act, 0, msgAndArgs...)
}

func assertActionAndAmount(t *testing.T, game *Game, id string, act action.Action, amount int, msgAndArgs ...interface{}) {
	t.Helper()
	assert.NoError(t, game.Act(id, string(act), amount), msgAndArgs...)
}

func assertActionFailed(t *testing.T, game *Game, id string, act action.Action, amount int, expectedErr error, msgAndArgs ...interface{}) {
	t.Helper()

	total := game.TotalChips()
	pot := game.pot.Amount()
	turnSeq := game.TurnSeq()

	err := game.Act(id, string(act), amount)
	assert.ErrorIs(t, err, expectedErr, msgAndArgs...)
	assert.Equal(t, total, game.TotalChips(), msgAndArgs...)
	assert.Equal(t, pot, game.pot.Amount(), msgAndArgs...)
	assert.Equal(t, turnSeq, game.TurnSeq(), msgAndArgs...)
}

func assertTurn(t *testing.T, game *Game, id string, msgAndArgs ...interface{}) {
	t.Helper()

	turn := game.CurrentTurn()
	if id == "" {
		assert.Nil(t, turn, msgAndArgs...)
		return
	}

	if assert.NotNil(t, turn, msgAndArgs...) {
		assert.Equal(t, id, turn.SeatID, msgAndArgs...)
	}
}

// stacks returns the stacks in seat order
func stacks(game *Game) []int {
	s := make([]int, len(game.seatOrder))
	for i, id := range game.seatOrder {
		s[i] = game.participants[id].stack
	}

	return s
}
