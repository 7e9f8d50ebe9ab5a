package server

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/editor"
	"github.com/gravitas-games/hexgrid/internal/network"
	"github.com/gravitas-games/hexgrid/internal/unit"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Outbound messages buffered per client. Must hold a full grid download.
	sendBufferSize = config.MaxChunks + 64
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Player information (set after authentication)
	player *models.Player

	// Buffered channel for outbound messages
	send chan []byte

	// Is connection authenticated
	authenticated bool

	// Has the player joined the session
	joined bool

	closeOnce sync.Once
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:            ws,
		server:        server,
		send:          make(chan []byte, sendBufferSize),
		authenticated: false,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	// Set up connection parameters
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Start read and write pumps
	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		// Read message
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		// Parse message
		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		// Handle message based on type
		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Write message
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			// Send ping
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeJoin:
		c.handleJoin()
		return
	case network.MsgTypePing:
		c.handlePing()
		return
	}

	if !c.joined {
		c.SendError("not_joined", "Join the session first")
		return
	}

	var err error
	switch msg.Type {
	case network.MsgTypeLeave:
		c.handleLeave()

	case network.MsgTypeEditorSettings:
		var p network.EditorSettingsPayload
		if err = decodePayload(msg.Payload, &p); err == nil {
			err = c.server.session.UpdateEditorSettings(c.player, p)
		}

	case network.MsgTypePointer:
		var p network.PointerPayload
		if err = decodePayload(msg.Payload, &p); err == nil {
			err = c.server.session.HandlePointer(c.player, p)
		}

	case network.MsgTypeFindPath:
		var p network.FindPathPayload
		if err = decodePayload(msg.Payload, &p); err == nil {
			_, err = c.server.session.FindPath(p)
		}

	case network.MsgTypeClearPath:
		err = c.server.session.ClearPath()

	case network.MsgTypeSpawnUnit:
		var p network.SpawnUnitPayload
		if err = decodePayload(msg.Payload, &p); err == nil {
			_, err = c.server.session.SpawnUnit(c.player, p)
		}

	case network.MsgTypeMoveUnit:
		var p network.MoveUnitPayload
		if err = decodePayload(msg.Payload, &p); err == nil {
			err = c.server.session.MoveUnit(c.player, p)
		}

	case network.MsgTypeRemoveUnit:
		var p network.RemoveUnitPayload
		if err = decodePayload(msg.Payload, &p); err == nil {
			err = c.server.session.RemoveUnit(c.player, p)
		}

	case network.MsgTypeFillDistances:
		var p network.FillDistancesPayload
		if err = decodePayload(msg.Payload, &p); err == nil {
			err = c.server.session.FillDistances(p)
		}

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
		return
	}

	if err != nil {
		log.Printf("Message %s from %s failed: %v", msg.Type, c.player.Username, err)
		c.SendError(errorCode(err), err.Error())
	}
}

// handleJoin handles player join requests
func (c *Connection) handleJoin() {
	// Verify player is authenticated (should always be true now)
	if !c.authenticated || c.player == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return
	}
	if c.joined {
		c.SendError("already_joined", "Already joined")
		return
	}

	// Update player connection state
	c.player.Connected = true
	c.player.ConnectedAt = time.Now()
	c.player.SessionID = c.server.session.ID

	// Add player to session
	if err := c.server.session.AddPlayer(c.player, c); err != nil {
		log.Printf("Failed to add player to session: %v", err)
		c.SendError(errorCode(err), "Failed to join session")
		return
	}
	c.joined = true

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID:      c.player.ID,
			Username:      c.player.Username,
			SessionID:     c.server.session.ID,
			Grid:          c.server.session.GridInfo(),
			SessionStatus: c.server.session.GetStatus(),
		},
	})

	if err := c.server.session.SendGrid(c); err != nil {
		log.Printf("Failed to send grid to %s: %v", c.player.Username, err)
	}

	// Broadcast player joined to all other players
	c.server.session.BroadcastExcept(c, &network.ServerMessage{
		Type: network.MsgTypePlayerJoined,
		Payload: network.PlayerJoinedPayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
		},
	})
}

// handleLeave handles player leave requests
func (c *Connection) handleLeave() {
	if c.player == nil || !c.joined {
		return
	}
	c.joined = false
	c.server.session.RemovePlayer(c.player.ID)

	// Broadcast player left
	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypePlayerLeft,
		Payload: network.PlayerLeftPayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
		},
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		// Remove player from session if authenticated
		if c.authenticated && c.player != nil {
			c.handleLeave()
		}

		// Close send channel
		close(c.send)

		// Close WebSocket connection
		c.ws.Close()
	})
}

func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	return json.Unmarshal(raw, v)
}

// errorCode maps session errors to the codes sent to clients
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnknownCell):
		return "unknown_cell"
	case errors.Is(err, ErrUnknownUnit):
		return "unknown_unit"
	case errors.Is(err, ErrOccupied):
		return "occupied"
	case errors.Is(err, ErrNoRoute):
		return "no_route"
	case errors.Is(err, ErrSessionFull):
		return "session_full"
	case errors.Is(err, ErrSessionClosed):
		return "session_closed"
	case errors.Is(err, unit.ErrInvalidSize):
		return "invalid_size"
	case errors.Is(err, editor.ErrInvalidSettings):
		return "invalid_settings"
	}
	return "invalid_request"
}
