package main

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
)

const (
	maxRooms    = 100
	roomCodeLen = 5
)

// codeChars drops 0/O/1/I so codes survive being read aloud.
const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var errRoomNotFound = errors.New("room not found")

// Registry owns every live room and hands out join codes.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	cfg   RoomConfig
	tel   *Telemetry
}

func NewRegistry(cfg RoomConfig, tel *Telemetry) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		cfg:   cfg,
		tel:   tel,
	}
}

// generateRoomCode returns a random 5-char code over codeChars.
func generateRoomCode() string {
	b := make([]byte, roomCodeLen)
	for i := range b {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		b[i] = codeChars[n.Int64()]
	}
	return string(b)
}

// Create makes a new empty room under a fresh code, or returns nil
// when the server is at capacity.
func (rg *Registry) Create() *Room {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	if len(rg.rooms) >= maxRooms {
		return nil
	}
	code := generateRoomCode()
	for rg.rooms[code] != nil {
		code = generateRoomCode()
	}
	room := NewRoom(code, rg.cfg, rg.tel)
	rg.rooms[code] = room
	rg.tel.Track(EvtRoomCreated, code, "", "")
	return room
}

// Join looks up the room for code.
func (rg *Registry) Join(code string) (*Room, error) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	room, ok := rg.rooms[code]
	if !ok {
		return nil, errRoomNotFound
	}
	return room, nil
}

// Get returns the room for code, nil if it does not exist.
func (rg *Registry) Get(code string) *Room {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.rooms[code]
}

// RemovePlayer takes a player out of their room and deletes the room
// once it stands empty.
func (rg *Registry) RemovePlayer(code, playerID string) {
	rg.mu.RLock()
	room := rg.rooms[code]
	rg.mu.RUnlock()
	if room == nil {
		return
	}

	room.RemovePlayer(playerID)
	if room.PlayerCount() > 0 {
		return
	}

	rg.mu.Lock()
	// Re-check under the write lock: someone may have joined since.
	if r, ok := rg.rooms[code]; ok && r.PlayerCount() == 0 {
		delete(rg.rooms, code)
	}
	rg.mu.Unlock()
}

// Rooms returns a snapshot slice of every live room.
func (rg *Registry) Rooms() []*Room {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	out := make([]*Room, 0, len(rg.rooms))
	for _, room := range rg.rooms {
		out = append(out, room)
	}
	return out
}

// Count returns the number of live rooms.
func (rg *Registry) Count() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return len(rg.rooms)
}
