package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/shapechess-backend/internal/model"
	"github.com/benbeisheim/shapechess-backend/internal/service"
	"github.com/benbeisheim/shapechess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	// broadcasts from other players' moves write to this conn too
	conn := model.Synchronized(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("register connection for %s in %s: %v", playerID, gameID, err)
		wsc.sendError(conn, err.Error())
		conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error from %s: %v", playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error from %s: %v", playerID, err)
			wsc.sendError(conn, "malformed message")
			continue
		}
		if err := wsc.handleMessage(conn, gameID, playerID, msg); err != nil {
			wsc.sendError(conn, err.Error())
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(conn model.Subscriber, gameID, playerID string, msg ws.Message) error {
	var payload ws.MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("bad %s payload: %w", msg.Type, err)
	}

	switch msg.Type {
	case ws.MessageTypeMove:
		// the new state reaches this connection through the game broadcast
		return wsc.gameService.HandleMove(gameID, playerID, payload.From, payload.To)

	case ws.MessageTypeLegalMoves:
		destinations, err := wsc.gameService.LegalMoves(gameID, payload.From)
		if err != nil {
			return err
		}
		body, err := json.Marshal(map[string]interface{}{
			"from":         payload.From,
			"destinations": destinations,
		})
		if err != nil {
			return err
		}
		return conn.WriteJSON(ws.Message{Type: ws.MessageTypeLegalMoves, Payload: body})

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and sends a single matchFound message
// once they are paired. Closing the socket first leaves the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)
	defer c.Close()

	events := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, events); err != nil {
		wsc.sendError(c, err.Error())
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, events)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		log.Debugf("matchmaking join for %s: %v", playerID, err)
	}

	// a read error means the client went away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-events:
		if !ok {
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}); err != nil {
			log.Warnf("match event to %s: %v", playerID, err)
		}
	case <-gone:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c model.Subscriber, errorMsg string) {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}); err != nil {
		log.Debugf("send error: %v", err)
	}
}
