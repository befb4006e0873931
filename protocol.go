package main

import (
	"encoding/json"
	"math"
)

// Client -> Server message types
const (
	EvtJoinRoom  = "join-room"
	EvtInput     = "input"
	EvtStartGame = "start-game"
)

// Server -> Client message types
const (
	EvtJoined      = "joined"
	EvtPeerJoined  = "peer-joined"
	EvtPeerLeft    = "peer-left"
	EvtHostChanged = "host-changed"
	EvtGameStarted = "game-started"
	EvtCollected   = "powerup-collected"
	EvtError       = "error"
	// EvtGameUpdate never rides a JSON envelope: per-tick snapshots go
	// out as binary frames holding a bare msgpack GameState.
	EvtGameUpdate = "game-update"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// JoinRoomMsg asks to create (empty code) or join a room
type JoinRoomMsg struct {
	Code     string `json:"roomCode,omitempty"`
	Nickname string `json:"nickname"`
}

// InputMsg is the raw per-client intent, sent every input frame.
// Angle is a pointer so "no aim this frame" is distinguishable from
// aiming at angle zero.
type InputMsg struct {
	Up       bool     `json:"up"`
	Down     bool     `json:"down"`
	Left     bool     `json:"left"`
	Right    bool     `json:"right"`
	MoveX    float64  `json:"moveX"`
	MoveY    float64  `json:"moveY"`
	Angle    *float64 `json:"angle"`
	Shooting bool     `json:"shooting"`
}

// clampAxis squashes hostile analog values into [-1, 1].
func clampAxis(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Clamp(v, -1, 1)
}

// State sanitizes the raw message into simulation input.
func (m *InputMsg) State() InputState {
	s := InputState{
		Up:       m.Up,
		Down:     m.Down,
		Left:     m.Left,
		Right:    m.Right,
		MoveX:    clampAxis(m.MoveX),
		MoveY:    clampAxis(m.MoveY),
		Shooting: m.Shooting,
	}
	if m.Angle != nil && !math.IsNaN(*m.Angle) && !math.IsInf(*m.Angle, 0) {
		s.Angle = *m.Angle
		s.HasAngle = true
	}
	return s
}

// PlayerState is broadcast per player each tick
type PlayerState struct {
	ID     string           `json:"id" msgpack:"id"`
	Name   string           `json:"n" msgpack:"n"`
	X      float64          `json:"x" msgpack:"x"`
	Y      float64          `json:"y" msgpack:"y"`
	Angle  float64          `json:"r" msgpack:"r"` // facing radians
	Color  string           `json:"c" msgpack:"c"`
	Health float64          `json:"hp" msgpack:"hp"`
	Score  int              `json:"sc" msgpack:"sc"`
	Alive  bool             `json:"a" msgpack:"a"`
	Buffs  map[string]int64 `json:"bf,omitempty" msgpack:"bf,omitempty"` // kind -> expiry ms
}

// BulletState is broadcast per bullet
type BulletState struct {
	ID      string  `json:"id" msgpack:"id"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	VX      float64 `json:"vx" msgpack:"vx"`
	VY      float64 `json:"vy" msgpack:"vy"`
	OwnerID string  `json:"o" msgpack:"o"`
}

// EnemyState is broadcast per enemy
type EnemyState struct {
	ID        string  `json:"id" msgpack:"id"`
	Kind      string  `json:"k" msgpack:"k"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	Angle     float64 `json:"r" msgpack:"r"`
	Radius    float64 `json:"rad" msgpack:"rad"`
	Health    float64 `json:"hp" msgpack:"hp"`
	MaxHealth float64 `json:"mhp" msgpack:"mhp"`
	Color     string  `json:"c" msgpack:"c"`
}

// PowerupState is broadcast per powerup
type PowerupState struct {
	ID    string  `json:"id" msgpack:"id"`
	Kind  string  `json:"k" msgpack:"k"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Label string  `json:"l" msgpack:"l"`
	Color string  `json:"c" msgpack:"c"`
	Phase float64 `json:"ph" msgpack:"ph"`
}

// GameState is the full room snapshot broadcast every tick
type GameState struct {
	Code     string         `json:"code" msgpack:"code"`
	Phase    string         `json:"phase" msgpack:"phase"`
	HostID   string         `json:"host" msgpack:"host"`
	Tick     uint64         `json:"tick" msgpack:"tick"`
	Count    int            `json:"count" msgpack:"count"`
	Players  []PlayerState  `json:"p" msgpack:"p"`
	Bullets  []BulletState  `json:"b" msgpack:"b"`
	Enemies  []EnemyState   `json:"e" msgpack:"e"`
	Powerups []PowerupState `json:"pu" msgpack:"pu"`
}

// JoinedMsg is sent to a player when they enter a room
type JoinedMsg struct {
	You   string    `json:"you"`
	Code  string    `json:"roomCode"`
	Host  bool      `json:"host"`
	State GameState `json:"state"`
}

// PeerJoinedMsg tells a room someone arrived
type PeerJoinedMsg struct {
	Player PlayerState `json:"player"`
}

// PeerLeftMsg tells a room someone left
type PeerLeftMsg struct {
	ID string `json:"id"`
}

// HostChangedMsg announces the promoted host
type HostChangedMsg struct {
	ID string `json:"id"`
}

// GameStartedMsg carries the reset state at match start
type GameStartedMsg struct {
	State GameState `json:"state"`
}

// CollectedMsg goes only to the collecting player
type CollectedMsg struct {
	Kind  string `json:"kind"`
	Until int64  `json:"until"` // buff expiry ms timestamp
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
