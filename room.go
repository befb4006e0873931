package main

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Room phases
const (
	PhaseWaiting = "waiting"
	PhasePlaying = "playing"
)

// maxBulletsPerRoom caps live bullets so a held trigger with rapid
// fire cannot grow the slice without bound.
const maxBulletsPerRoom = 200

var errRoomFull = errors.New("room full")

// Broadcaster delivers messages to one connected client.
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Room is one isolated arena: its players, its simulation, its
// broadcast set. Everything below is guarded by mu.
type Room struct {
	mu   sync.Mutex
	code string
	cfg  RoomConfig
	tel  *Telemetry

	phase    string
	hostID   string
	players  map[string]*Player
	clients  map[string]Broadcaster
	bullets  []*Bullet
	enemies  []*Enemy
	powerups []*Powerup

	tick             uint64
	lastEnemySpawn   int64
	lastPowerupSpawn int64
}

// NewRoom creates an empty room in the waiting phase
func NewRoom(code string, cfg RoomConfig, tel *Telemetry) *Room {
	return &Room{
		code:    code,
		cfg:     cfg,
		tel:     tel,
		phase:   PhaseWaiting,
		players: make(map[string]*Player),
		clients: make(map[string]Broadcaster),
	}
}

// Code returns the room's join code.
func (r *Room) Code() string {
	return r.code
}

// Phase returns the current room phase.
func (r *Room) Phase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// HostID returns the current host's player ID.
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// PlayerCount returns the number of players in the room.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// AddPlayer places a new player in the room and announces it to the
// others. The first player in becomes host.
func (r *Room) AddPlayer(id, name string, b Broadcaster) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= r.cfg.MaxPlayers {
		return nil, errRoomFull
	}

	color := playerPalette[len(r.players)%len(playerPalette)]
	x, y := safeSpawn(r.cfg, r.enemies)
	p := NewPlayer(id, name, x, y, color)
	r.players[id] = p
	r.clients[id] = b

	if r.hostID == "" {
		r.hostID = id
	}

	r.broadcastEvent(Envelope{T: EvtPeerJoined, Data: PeerJoinedMsg{Player: p.ToState()}}, id)
	return p, nil
}

// RemovePlayer drops a player and, if they were host, promotes
// another one.
func (r *Room) RemovePlayer(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	delete(r.clients, id)

	r.broadcastEvent(Envelope{T: EvtPeerLeft, Data: PeerLeftMsg{ID: id}}, "")

	if r.hostID != id {
		return
	}
	r.hostID = ""
	for pid := range r.players {
		r.hostID = pid
		break
	}
	if r.hostID != "" {
		r.broadcastEvent(Envelope{T: EvtHostChanged, Data: HostChangedMsg{ID: r.hostID}}, "")
	}
}

// ApplyInput stores a player's latest intent for the next tick.
// Input for unknown players is dropped.
func (r *Room) ApplyInput(id string, in InputState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[id]; ok {
		p.Input = in
	}
}

// StartGame flips the room into the playing phase with a clean field.
// Only the host may start; anyone else is ignored. Players are reset
// before the opening enemies spawn, so every start position is clear.
func (r *Room) StartGame(byID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byID != r.hostID {
		return false
	}

	r.phase = PhasePlaying
	r.bullets = nil
	r.enemies = nil
	r.powerups = nil
	r.tick = 0

	now := time.Now().UnixMilli()
	r.lastEnemySpawn = now
	r.lastPowerupSpawn = now

	for _, p := range r.players {
		x, y := safeSpawn(r.cfg, r.enemies)
		p.Reset(x, y)
	}
	scale := r.enemyScale()
	for i := 0; i < r.cfg.InitialEnemies; i++ {
		x, y := randomSpawn(r.cfg)
		r.enemies = append(r.enemies, NewEnemy(x, y, scale))
	}

	r.broadcastEvent(Envelope{T: EvtGameStarted, Data: GameStartedMsg{State: r.stateLocked()}}, "")
	return true
}

// Tick advances the simulation one step and pushes the snapshot to
// every client. Waiting rooms skip the sim but still broadcast, which
// keeps lobby screens live.
func (r *Room) Tick(now int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.update(now)
	r.broadcastState()
}

func (r *Room) update(now int64) {
	if r.phase != PhasePlaying {
		return
	}
	r.tick++
	dt := 1.0 / float64(TickRate)

	r.updatePlayers(now, dt)
	r.updateBullets(now, dt)
	r.updateEnemies(now, dt)
	r.updatePowerups(now, dt)
	r.spawnTimers(now)
}

func (r *Room) updatePlayers(now int64, dt float64) {
	for _, p := range r.players {
		p.PrevX = p.X
		p.PrevY = p.Y
	}
	for _, p := range r.players {
		if !p.Alive {
			if now >= p.RespawnAt {
				x, y := safeSpawn(r.cfg, r.enemies)
				p.Respawn(x, y)
			}
			// Respawned players sit this tick out.
			continue
		}
		p.Step(dt, now, r.cfg)
		if p.Input.Shooting && p.FireReady(now) && len(r.bullets) < maxBulletsPerRoom {
			r.bullets = append(r.bullets, NewBullet(p))
			p.LastShot = now
		}
	}
}

func (r *Room) updateBullets(now int64, dt float64) {
	alive := r.bullets[:0]
	for _, b := range r.bullets {
		b.Step(dt)
		if b.OutOfBounds(r.cfg) {
			continue
		}
		hit := false
		for i, e := range r.enemies {
			if !CheckCollision(b.X, b.Y, b.Radius, e.X, e.Y, e.Radius) {
				continue
			}
			hit = true
			dmg := BulletDamage
			owner := r.players[b.OwnerID]
			if owner != nil && owner.HasBuff(BuffPower, now) {
				dmg *= 2
			}
			if e.TakeDamage(dmg) {
				// Kills credit the shooter only if they are
				// still in the room.
				if owner != nil {
					owner.Score += e.Score
				}
				r.enemies = append(r.enemies[:i], r.enemies[i+1:]...)
				r.tel.Track(EvtEnemyKill, r.code, b.OwnerID, e.Kind)
			}
			break
		}
		if !hit {
			alive = append(alive, b)
		}
	}
	r.bullets = alive
}

func (r *Room) updateEnemies(now int64, dt float64) {
	for _, e := range r.enemies {
		if t := r.nearestAlivePlayer(e.X, e.Y); t != nil {
			e.Step(dt, t.X, t.Y)
		}
		reach := e.Radius + EnemyContactMargin
		for _, p := range r.players {
			if !p.Alive {
				continue
			}
			if Distance(e.X, e.Y, p.X, p.Y) >= reach {
				continue
			}
			if p.HasBuff(BuffShield, now) {
				continue
			}
			p.TakeDamage(e.Touch*dt, now)
		}
	}
}

func (r *Room) updatePowerups(now int64, dt float64) {
	kept := r.powerups[:0]
	for _, pu := range r.powerups {
		pu.Step(dt)
		collected := false
		for _, p := range r.players {
			if !p.Alive {
				continue
			}
			if Distance(pu.X, pu.Y, p.X, p.Y) >= PickupRange {
				continue
			}
			p.GrantBuff(pu.Kind, now, pu.Duration)
			r.sendTo(p.ID, Envelope{T: EvtCollected, Data: CollectedMsg{Kind: pu.Kind, Until: p.Buffs[pu.Kind]}})
			r.tel.Track(EvtPowerupTaken, r.code, p.ID, pu.Kind)
			collected = true
			break
		}
		if !collected {
			kept = append(kept, pu)
		}
	}
	r.powerups = kept
}

func (r *Room) spawnTimers(now int64) {
	if len(r.enemies) < r.cfg.MaxEnemies && now-r.lastEnemySpawn >= r.cfg.EnemySpawnMs {
		x, y := randomSpawn(r.cfg)
		r.enemies = append(r.enemies, NewEnemy(x, y, r.enemyScale()))
		r.lastEnemySpawn = now
	}
	if len(r.powerups) < r.cfg.MaxPowerups && now-r.lastPowerupSpawn >= r.cfg.PowerupSpawnMs {
		x, y := randomSpawn(r.cfg)
		r.powerups = append(r.powerups, NewPowerup(x, y))
		r.lastPowerupSpawn = now
	}
}

func (r *Room) nearestAlivePlayer(x, y float64) *Player {
	var best *Player
	bestD := math.MaxFloat64
	for _, p := range r.players {
		if !p.Alive {
			continue
		}
		if d := DistanceSq(x, y, p.X, p.Y); d < bestD {
			bestD = d
			best = p
		}
	}
	return best
}

func (r *Room) enemyScale() float64 {
	if !r.cfg.EnemyScaling || len(r.players) <= 1 {
		return 1
	}
	return 1 + 0.15*float64(len(r.players)-1)
}

// Snapshot returns the current wire state of the room.
func (r *Room) Snapshot() GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Room) stateLocked() GameState {
	s := GameState{
		Code:     r.code,
		Phase:    r.phase,
		HostID:   r.hostID,
		Tick:     r.tick,
		Count:    len(r.players),
		Players:  make([]PlayerState, 0, len(r.players)),
		Bullets:  make([]BulletState, 0, len(r.bullets)),
		Enemies:  make([]EnemyState, 0, len(r.enemies)),
		Powerups: make([]PowerupState, 0, len(r.powerups)),
	}
	for _, p := range r.players {
		s.Players = append(s.Players, p.ToState())
	}
	for _, b := range r.bullets {
		s.Bullets = append(s.Bullets, b.ToState())
	}
	for _, e := range r.enemies {
		s.Enemies = append(s.Enemies, e.ToState())
	}
	for _, pu := range r.powerups {
		s.Powerups = append(s.Powerups, pu.ToState())
	}
	return s
}

// broadcastState marshals the snapshot once and fans the same bytes
// out to every client.
func (r *Room) broadcastState() {
	if len(r.clients) == 0 {
		return
	}
	data, err := msgpack.Marshal(r.stateLocked())
	if err != nil {
		log.Printf("room %s: marshal state: %v", r.code, err)
		return
	}
	for _, c := range r.clients {
		c.SendBinary(data)
	}
}

// broadcastEvent sends env to every client except the named one.
// Sends never block: slow clients drop messages instead.
func (r *Room) broadcastEvent(env Envelope, except string) {
	for id, c := range r.clients {
		if id == except {
			continue
		}
		c.SendJSON(env)
	}
}

func (r *Room) sendTo(id string, env Envelope) {
	if c, ok := r.clients[id]; ok {
		c.SendJSON(env)
	}
}
