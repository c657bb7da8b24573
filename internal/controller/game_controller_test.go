package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/shapechess-backend/internal/config"
	"github.com/benbeisheim/shapechess-backend/internal/model"
	"github.com/benbeisheim/shapechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gm := service.NewGameManager(time.Hour)
	t.Cleanup(gm.Close)
	cfg := config.Config{Addr: ":0", AllowOrigins: "http://localhost:5173", MatchmakingInterval: time.Hour}
	return NewApp(cfg, service.NewGameService(gm))
}

func do(t *testing.T, app *fiber.App, method, target, player, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func createSeatedGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	require.Equal(t, http.StatusOK, status)
	gameID := body["game_id"].(string)

	status, body = do(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "white", body["color"])
	status, body = do(t, app, http.MethodPost, "/api/game/join/"+gameID, "bob", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "black", body["color"])
	return gameID
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp(t)
	status, body := do(t, app, http.MethodPost, "/api/game/create", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body["error"], "Player ID is required")

	status, _ = do(t, app, http.MethodPost, "/api/game/create?playerId=alice", "", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestMoveOverREST(t *testing.T) {
	app := newTestApp(t)
	gameID := createSeatedGame(t, app)

	status, body := do(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", `{"from":"e2","to":"e4"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "black", body["toMove"])
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1", body["fen"])

	status, body = do(t, app, http.MethodGet, "/api/game/"+gameID, "carol", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["isCheck"])
}

func TestMoveErrors(t *testing.T) {
	app := newTestApp(t)
	gameID := createSeatedGame(t, app)

	tests := []struct {
		name   string
		target string
		player string
		body   string
		want   int
	}{
		{"unknown game", "/api/game/nope/move", "alice", `{"from":"e2","to":"e4"}`, http.StatusNotFound},
		{"bad square", "/api/game/" + gameID + "/move", "alice", `{"from":"e2","to":"e9"}`, http.StatusBadRequest},
		{"bad body", "/api/game/" + gameID + "/move", "alice", `{"from":`, http.StatusBadRequest},
		{"illegal shape", "/api/game/" + gameID + "/move", "alice", `{"from":"e2","to":"e5"}`, http.StatusUnprocessableEntity},
		{"empty origin", "/api/game/" + gameID + "/move", "alice", `{"from":"e4","to":"e5"}`, http.StatusUnprocessableEntity},
		{"wrong side", "/api/game/" + gameID + "/move", "bob", `{"from":"e7","to":"e5"}`, http.StatusUnprocessableEntity},
		{"spectator", "/api/game/" + gameID + "/move", "carol", `{"from":"e2","to":"e4"}`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, tt.target, tt.player, tt.body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSeatsSurviveOtherRequests(t *testing.T) {
	app := newTestApp(t)
	gameID := createSeatedGame(t, app)

	status, body := do(t, app, http.MethodGet, "/api/game/"+gameID, "zzzzz", "")
	require.Equal(t, http.StatusOK, status)
	players := body["players"].(map[string]interface{})
	assert.Equal(t, "alice", players["white"].(map[string]interface{})["name"])
	assert.Equal(t, "bob", players["black"].(map[string]interface{})["name"])

	status, _ = do(t, app, http.MethodPost, "/api/game/join/"+gameID, "zzzzz", "")
	assert.Equal(t, http.StatusConflict, status)

	status, body = do(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", `{"from":"e2","to":"e4"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "black", body["toMove"])
}

func TestWildcardOriginDisablesCredentials(t *testing.T) {
	gm := service.NewGameManager(time.Hour)
	t.Cleanup(gm.Close)
	cfg := config.Config{Addr: ":0", AllowOrigins: "*", MatchmakingInterval: time.Hour}
	assert.NotPanics(t, func() { NewApp(cfg, service.NewGameService(gm)) })
}

func TestJoinFullGame(t *testing.T) {
	app := newTestApp(t)
	gameID := createSeatedGame(t, app)

	status, _ := do(t, app, http.MethodPost, "/api/game/join/"+gameID, "carol", "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, app, http.MethodPost, "/api/game/join/nope", "carol", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLegalMovesEndpoint(t *testing.T) {
	app := newTestApp(t)
	gameID := createSeatedGame(t, app)

	status, body := do(t, app, http.MethodGet, "/api/game/"+gameID+"/moves?from=b1", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "b1", body["from"])
	assert.Equal(t, []interface{}{"a3", "c3"}, body["destinations"])

	status, body = do(t, app, http.MethodGet, "/api/game/"+gameID+"/moves?from=e4", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["destinations"])

	status, _ = do(t, app, http.MethodGet, "/api/game/"+gameID+"/moves", "alice", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAttacksEndpoint(t *testing.T) {
	app := newTestApp(t)
	gameID := createSeatedGame(t, app)

	status, body := do(t, app, http.MethodGet, "/api/game/"+gameID+"/attacks?side=black", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "black", body["side"])
	assert.Len(t, body["squares"], 16)

	status, _ = do(t, app, http.MethodGet, "/api/game/"+gameID+"/attacks?side=red", "alice", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJoinMatchmakingEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "queued", body["status"])

	status, _ = do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "")
	assert.Equal(t, http.StatusConflict, status)
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/ws/game/abc", nil)
	req.Header.Set("X-Player-ID", "alice")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(model.ErrGameOver))
	assert.Equal(t, http.StatusForbidden, statusFor(model.ErrNotPlayer))
	assert.Equal(t, http.StatusInternalServerError, statusFor(model.ErrKingNotFound))
}
