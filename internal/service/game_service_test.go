package service

import (
	"testing"

	"github.com/benbeisheim/shapechess-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameServiceFlow(t *testing.T) {
	gs := NewGameService(newTestManager(t))

	gameID, err := gs.CreateGame()
	require.NoError(t, err)
	require.NotEmpty(t, gameID)

	color, err := gs.JoinGame(gameID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.White, color)
	color, err = gs.JoinGame(gameID, "bob")
	require.NoError(t, err)
	assert.Equal(t, model.Black, color)

	destinations, err := gs.LegalMoves(gameID, "e2")
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e4"}, destinations)

	require.NoError(t, gs.HandleMove(gameID, "alice", "e2", "e4"))
	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	assert.Equal(t, model.Black, state.ToMove)

	err = gs.HandleMove(gameID, "bob", "e7", "e4")
	assert.ErrorIs(t, err, model.ErrIllegalShape)

	var inputErr *model.InputError
	err = gs.HandleMove(gameID, "bob", "e7", "e9")
	assert.ErrorAs(t, err, &inputErr)
	_, err = gs.LegalMoves(gameID, "zz")
	assert.ErrorAs(t, err, &inputErr)

	attacks, err := gs.Attacks(gameID, model.White)
	require.NoError(t, err)
	assert.Contains(t, attacks, "h5")
	assert.Contains(t, attacks, "a6")
	// pawn diagonals only count when something stands there
	assert.NotContains(t, attacks, "d5")
	_, err = gs.Attacks(gameID, model.Side("purple"))
	assert.ErrorAs(t, err, &inputErr)
}
