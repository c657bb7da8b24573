package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/benbeisheim/shapechess-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *GameManager {
	t.Helper()
	gm := NewGameManager(10 * time.Millisecond)
	t.Cleanup(gm.Close)
	return gm
}

func receiveMatch(t *testing.T, ch chan string) model.MatchFoundEvent {
	t.Helper()
	select {
	case raw, ok := <-ch:
		require.True(t, ok, "channel closed without an event")
		var event model.MatchFoundEvent
		require.NoError(t, json.Unmarshal([]byte(raw), &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no match event")
	}
	return model.MatchFoundEvent{}
}

func TestMatchmakingPairsPlayers(t *testing.T) {
	gm := newTestManager(t)
	aliceCh, bobCh := make(chan string, 1), make(chan string, 1)
	require.NoError(t, gm.RegisterMatchmakingChannel("alice", aliceCh))
	require.NoError(t, gm.RegisterMatchmakingChannel("bob", bobCh))

	require.NoError(t, gm.JoinMatchmaking("alice"))
	assert.Error(t, gm.JoinMatchmaking("alice"))
	require.NoError(t, gm.JoinMatchmaking("bob"))

	aliceEvent := receiveMatch(t, aliceCh)
	bobEvent := receiveMatch(t, bobCh)
	assert.Equal(t, aliceEvent.GameID, bobEvent.GameID)
	assert.Equal(t, model.White, aliceEvent.Color)
	assert.Equal(t, model.Black, bobEvent.Color)

	game, err := gm.GetGame(aliceEvent.GameID)
	require.NoError(t, err)
	assert.True(t, game.IsPlayerInGame("alice"))
	assert.True(t, game.IsPlayerInGame("bob"))
	assert.Equal(t, 0, gm.QueueSize())
}

func TestRegisterMatchmakingChannelReplacesOld(t *testing.T) {
	gm := newTestManager(t)
	old, replacement := make(chan string, 1), make(chan string, 1)
	require.NoError(t, gm.RegisterMatchmakingChannel("alice", old))
	require.NoError(t, gm.RegisterMatchmakingChannel("alice", replacement))

	_, ok := <-old
	assert.False(t, ok)

	// unregistering the stale channel leaves the replacement in place
	gm.UnregisterMatchmakingChannel("alice", old)
	gm.mu.RLock()
	assert.Equal(t, replacement, gm.matchingChannels["alice"])
	gm.mu.RUnlock()
}

func TestLeaveMatchmaking(t *testing.T) {
	gm := newTestManager(t)
	require.NoError(t, gm.JoinMatchmaking("alice"))
	assert.True(t, gm.LeaveMatchmaking("alice"))
	assert.False(t, gm.LeaveMatchmaking("alice"))
}

func TestGameLookup(t *testing.T) {
	gm := newTestManager(t)
	require.NoError(t, gm.CreateGame("g1"))
	assert.ErrorIs(t, gm.CreateGame("g1"), ErrGameExists)

	_, err := gm.GetGame("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = gm.GetGameState("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = gm.AddPlayerToGame("missing", "alice")
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.ErrorIs(t, gm.MakeMove("missing", "alice", model.SimpleMove{}), ErrGameNotFound)
}
