package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/shapechess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// ResolveKingCaptured is the game result once a king has been taken.
const ResolveKingCaptured = "king captured"

// Subscriber receives game state pushes. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
	Close() error
}

// lockedSubscriber gives a connection a single writer at a time.
type lockedSubscriber struct {
	mu   sync.Mutex
	conn Subscriber
}

// Synchronized guards conn with a write lock. Every write to the same
// connection must go through the returned value. Guarding twice returns the
// existing guard.
func Synchronized(conn Subscriber) Subscriber {
	if l, ok := conn.(*lockedSubscriber); ok {
		return l
	}
	return &lockedSubscriber{conn: conn}
}

func (l *lockedSubscriber) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

func (l *lockedSubscriber) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.Close()
}

func unwrap(conn Subscriber) Subscriber {
	if l, ok := conn.(*lockedSubscriber); ok {
		return l.conn
	}
	return conn
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Subscriber // playerID -> connection
	mu          sync.RWMutex
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	board       Board
	state       GameState
	connections *GameConnections // Connections just for this game
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          [][]*Occupant  `json:"board"`
	FEN            string         `json:"fen"`
	ToMove         Side           `json:"toMove"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Resolve        *string        `json:"resolve"`
	Winner         *Side          `json:"winner"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *Ply `json:"lastMove"`
}

// CapturedPieces lists pieces taken by each side.
type CapturedPieces struct {
	White []Occupant `json:"white"`
	Black []Occupant `json:"black"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		board:       StartingBoard(),
		state:       newGameState(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(),
		blackClock:  NewClock(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Subscriber),
	}
}

func newGameState() GameState {
	state := GameState{
		ToMove: White,
		CapturedPieces: CapturedPieces{
			White: make([]Occupant, 0),
			Black: make([]Occupant, 0),
		},
	}
	state.Players.White.Color = White
	state.Players.Black.Color = Black
	return state
}

// AddPlayer seats playerID, white first. A player already seated gets their
// existing colour back.
func (g *Game) AddPlayer(playerID string) (Side, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if side, ok := g.seatOf(playerID); ok {
		return side, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White.ID = playerID
		log.Infof("game %s: %s joined as white", g.ID, playerID)
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black.ID = playerID
		log.Infof("game %s: %s joined as black", g.ID, playerID)
		g.whiteClock.Start()
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (Side, bool) {
	if playerID == "" {
		return "", false
	}
	switch playerID {
	case g.state.Players.White.ID:
		return White, true
	case g.state.Players.Black.ID:
		return Black, true
	}
	return "", false
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// snapshot copies the state for publishing. Callers hold g.mu.
func (g *Game) snapshot() GameState {
	s := g.state
	s.Board = g.board.Rows()
	s.FEN = g.board.FEN(g.state.ToMove)
	s.CapturedPieces.White = append([]Occupant(nil), g.state.CapturedPieces.White...)
	s.CapturedPieces.Black = append([]Occupant(nil), g.state.CapturedPieces.Black...)
	s.Players.White.TimeUsed = g.whiteClock.tenths()
	s.Players.Black.TimeUsed = g.blackClock.tenths()
	return s
}

// MakeMove applies move for playerID and pushes the new state to every
// subscriber. The board is untouched when an error is returned.
func (g *Game) MakeMove(playerID string, move SimpleMove) error {
	state, err := g.makeMove(playerID, move)
	if err != nil {
		return err
	}
	g.broadcastState(state)
	return nil
}

func (g *Game) makeMove(playerID string, move SimpleMove) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("game %s: %s plays %s-%s", g.ID, playerID, move.From, move.To)

	if g.state.Resolve != nil {
		return GameState{}, ErrGameOver
	}
	side, ok := g.seatOf(playerID)
	if !ok {
		return GameState{}, ErrNotPlayer
	}
	if side != g.state.ToMove {
		return GameState{}, &IllegalMoveError{From: move.From, To: move.To, Reason: ErrWrongSideToMove}
	}

	next, err := AttemptMove(g.board, g.state.ToMove, move.From, move.To)
	if err != nil {
		log.Debugf("game %s: rejected %s-%s: %v", g.ID, move.From, move.To, err)
		return GameState{}, err
	}
	if err := g.executeMove(next, move); err != nil {
		return GameState{}, err
	}
	return g.snapshot(), nil
}

// executeMove records an accepted move. Callers hold g.mu. Nothing is
// committed when an error is returned.
func (g *Game) executeMove(next Board, move SimpleMove) error {
	ply := makePly(g.board, move)
	mover := g.state.ToMove
	kingCaptured := ply.CapturedPiece != nil && ply.CapturedPiece.Type == King

	check := false
	if !kingCaptured {
		var err error
		check, err = IsInCheck(next, mover.Reverse())
		if err != nil {
			log.Errorf("game %s: corrupted board: %v", g.ID, err)
			return fmt.Errorf("check detection: %w", err)
		}
	}

	g.board = next
	g.state.LastMove = &ply

	g.state.Sound = "move"
	if ply.CapturedPiece != nil {
		g.state.Sound = "capture"
		switch mover {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *ply.CapturedPiece)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *ply.CapturedPiece)
		}
	}

	// Stop current player's clock, start the opponent's
	g.clockFor(mover).Stop()
	g.switchTurn()

	if kingCaptured {
		result := ResolveKingCaptured
		g.state.Resolve = &result
		g.state.Winner = &mover
		g.state.IsCheck = false
		log.Infof("game %s: %s captured the king", g.ID, mover)
		return nil
	}
	g.clockFor(g.state.ToMove).Start()

	g.state.IsCheck = check
	if check {
		g.state.Sound = "check"
	}
	return nil
}

func (g *Game) clockFor(side Side) *Clock {
	if side == White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Reverse()
}

// LegalMoves returns the destinations for the piece standing on from,
// ordered row-major. An empty square has none.
func (g *Game) LegalMoves(from Position) ([]Position, error) {
	if !from.Valid() {
		return nil, &InputError{Input: from.String(), Reason: "off the board"}
	}
	b := g.Board()
	moves := Generate(b, b.At(from))
	if moves == nil {
		moves = []Position{}
	}
	sortPositions(moves)
	return moves, nil
}

// Attacks returns every square side currently attacks, ordered row-major.
func (g *Game) Attacks(side Side) []Position {
	return AttackedSquares(g.Board(), side)
}

// RegisterConnection subscribes conn to state pushes. The stored
// subscriber is Synchronized(conn); callers writing to the same connection
// elsewhere should pass an already synchronized value.
func (g *Game) RegisterConnection(playerID string, conn Subscriber) error {
	conn = Synchronized(conn)

	g.mu.Lock()
	_, seated := g.seatOf(playerID)
	isAuthorized := seated || g.canSpectate()
	state := g.snapshot()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the new one
		g.connections.mu.Unlock()
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for %s", g.ID, playerID)

	if err := writeState(conn, state); err != nil {
		log.Warnf("game %s: initial state to %s: %v", g.ID, playerID, err)
	}
	return nil
}

// UnregisterConnection forgets conn if it is still the one registered for playerID.
func (g *Game) UnregisterConnection(playerID string, conn Subscriber) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && unwrap(current) == unwrap(conn) {
		log.Infof("game %s: unregistering connection for %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) broadcastState(state GameState) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for playerID, conn := range g.connections.connections {
		if err := writeState(conn, state); err != nil {
			log.Warnf("game %s: dropping %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}

func writeState(conn Subscriber, state GameState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	})
}
