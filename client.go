package main

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
	maxNameLen        = 16
)

// Client represents a WebSocket connection. Its id doubles as the
// player ID inside whichever room it joins.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	id         string
	roomCode   string // "" until a join succeeds
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		id:         uuid.NewString(),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
// Prefixes with 0xFF marker byte so WritePump can distinguish from text
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF // binary marker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope).
// Unknown event types are dropped. A panicking handler is logged and
// contained, like a panicking room tick.
func (c *Client) handleMessage(raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("client %s: message panic: %v", c.id, rec)
		}
	}()

	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case EvtJoinRoom:
		c.handleJoinRoom(env.D)
	case EvtInput:
		c.handleInput(env.D)
	case EvtStartGame:
		c.handleStartGame()
	}
}

// handleJoinRoom creates a room (empty code) or joins an existing one.
// A client already seated in a room cannot join another.
func (c *Client) handleJoinRoom(data json.RawMessage) {
	if c.roomCode != "" {
		return
	}
	var msg JoinRoomMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	name := strings.TrimSpace(msg.Nickname)
	if name == "" {
		c.SendJSON(Envelope{T: EvtError, Data: ErrorMsg{Msg: "empty nickname"}})
		return
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}

	var room *Room
	if code := strings.ToUpper(strings.TrimSpace(msg.Code)); code == "" {
		room = c.hub.registry.Create()
		if room == nil {
			c.SendJSON(Envelope{T: EvtError, Data: ErrorMsg{Msg: "too many rooms"}})
			return
		}
	} else {
		var err error
		room, err = c.hub.registry.Join(code)
		if err != nil {
			c.SendJSON(Envelope{T: EvtError, Data: ErrorMsg{Msg: err.Error()}})
			return
		}
	}

	if _, err := room.AddPlayer(c.id, name, c); err != nil {
		c.SendJSON(Envelope{T: EvtError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.roomCode = room.Code()
	c.hub.tel.Track(EvtPlayerJoin, room.Code(), c.id, "")

	c.SendJSON(Envelope{T: EvtJoined, Data: JoinedMsg{
		You:   c.id,
		Code:  room.Code(),
		Host:  room.HostID() == c.id,
		State: room.Snapshot(),
	}})
}

func (c *Client) handleInput(data json.RawMessage) {
	if c.roomCode == "" {
		return
	}
	var msg InputMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room := c.hub.registry.Get(c.roomCode)
	if room == nil {
		return
	}
	room.ApplyInput(c.id, msg.State())
}

func (c *Client) handleStartGame() {
	if c.roomCode == "" {
		return
	}
	room := c.hub.registry.Get(c.roomCode)
	if room == nil {
		return
	}
	if room.StartGame(c.id) {
		c.hub.tel.Track(EvtGameStart, c.roomCode, c.id, "")
	}
}
