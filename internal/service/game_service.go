package service

import (
	"fmt"

	"github.com/benbeisheim/shapechess-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Side, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove decodes coordinate notation and plays the move.
func (gs *GameService) HandleMove(gameID string, playerID string, from, to string) error {
	origin, err := model.ParsePosition(from)
	if err != nil {
		return err
	}
	destination, err := model.ParsePosition(to)
	if err != nil {
		return err
	}
	return gs.gameManager.MakeMove(gameID, playerID, model.SimpleMove{From: origin, To: destination})
}

// LegalMoves lists the destinations of the piece on the square named by from.
func (gs *GameService) LegalMoves(gameID string, from string) ([]string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	origin, err := model.ParsePosition(from)
	if err != nil {
		return nil, err
	}
	moves, err := game.LegalMoves(origin)
	if err != nil {
		return nil, err
	}
	return notations(moves), nil
}

// Attacks lists the squares side attacks in the given game.
func (gs *GameService) Attacks(gameID string, side model.Side) ([]string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !side.Valid() {
		return nil, &model.InputError{Input: string(side), Reason: "side must be white or black"}
	}
	return notations(game.Attacks(side)), nil
}

func notations(positions []model.Position) []string {
	squares := make([]string, len(positions))
	for i, pos := range positions {
		squares[i] = pos.String()
	}
	return squares
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Subscriber) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Subscriber) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
