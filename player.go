package main

import "math"

const (
	PlayerRadius    = 20.0
	PlayerMaxHealth = 100.0
	PlayerSpeed     = 220.0 // pixels/s
	SpeedBuffMul    = 1.5

	FireCooldownMs  = int64(250)
	RapidCooldownMs = int64(100)

	RespawnDelayMs = int64(3000)
	RespawnPenalty = 50

	// EdgeInset keeps ship centers off the arena walls.
	EdgeInset = 24.0
)

// playerPalette is cycled by join order so peers stay tellable apart.
var playerPalette = []string{"#00e5ff", "#ff4081", "#76ff03", "#ffd740"}

// InputState is the sanitized per-tick intent of one player.
type InputState struct {
	Up       bool
	Down     bool
	Left     bool
	Right    bool
	MoveX    float64
	MoveY    float64
	Angle    float64
	HasAngle bool
	Shooting bool
}

// Player represents one ship inside a room. All mutation happens under
// the owning room's lock.
type Player struct {
	ID     string
	Name   string
	X, Y   float64
	PrevX  float64
	PrevY  float64
	Angle  float64
	Color  string
	Health float64
	Score  int
	Alive  bool

	RespawnAt int64 // ms timestamp, set while dead
	LastShot  int64 // ms timestamp of the last fired bullet

	Input InputState
	Buffs map[string]int64 // buff kind -> expiry ms timestamp
}

// NewPlayer creates a player at (x, y) with full health
func NewPlayer(id, name string, x, y float64, color string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		X:      x,
		Y:      y,
		PrevX:  x,
		PrevY:  y,
		Color:  color,
		Health: PlayerMaxHealth,
		Alive:  true,
		Buffs:  make(map[string]int64),
	}
}

// HasBuff reports whether kind is active. A buff expiring exactly now
// no longer counts.
func (p *Player) HasBuff(kind string, now int64) bool {
	return p.Buffs[kind] > now
}

// GrantBuff arms or refreshes kind until now+duration.
func (p *Player) GrantBuff(kind string, now, duration int64) {
	p.Buffs[kind] = now + duration
}

// FireReady reports whether the fire cooldown has elapsed.
func (p *Player) FireReady(now int64) bool {
	cd := FireCooldownMs
	if p.HasBuff(BuffRapid, now) {
		cd = RapidCooldownMs
	}
	return now-p.LastShot >= cd
}

// Step moves the player one tick (dt in seconds). Expired buffs are
// pruned first so every read later in the tick sees only live ones.
func (p *Player) Step(dt float64, now int64, cfg RoomConfig) {
	for kind, until := range p.Buffs {
		if until <= now {
			delete(p.Buffs, kind)
		}
	}

	dx := p.Input.MoveX
	dy := p.Input.MoveY
	if p.Input.Up {
		dy--
	}
	if p.Input.Down {
		dy++
	}
	if p.Input.Left {
		dx--
	}
	if p.Input.Right {
		dx++
	}

	// Normalize only above unit length: analog sticks keep their
	// gradation, stick+keys together cannot exceed full speed.
	mag := math.Hypot(dx, dy)
	if mag > 1 {
		dx /= mag
		dy /= mag
	}

	speed := PlayerSpeed
	if p.HasBuff(BuffSpeed, now) {
		speed *= SpeedBuffMul
	}

	p.X = Clamp(p.X+dx*speed*dt, EdgeInset, cfg.WorldWidth-EdgeInset)
	p.Y = Clamp(p.Y+dy*speed*dt, EdgeInset, cfg.WorldHeight-EdgeInset)

	if p.Input.HasAngle {
		p.Angle = p.Input.Angle
	} else if mag > 0 {
		p.Angle = math.Atan2(dy, dx)
	}
}

// TakeDamage applies dmg and returns true if it was lethal.
// A lethal hit schedules the respawn.
func (p *Player) TakeDamage(dmg float64, now int64) bool {
	p.Health -= dmg
	if p.Health > 0 {
		return false
	}
	p.Health = 0
	p.Alive = false
	p.RespawnAt = now + RespawnDelayMs
	return true
}

// Respawn brings a dead player back at (x, y) with full health, no
// buffs, and the death penalty taken off the score.
func (p *Player) Respawn(x, y float64) {
	p.X = x
	p.Y = y
	p.PrevX = x
	p.PrevY = y
	p.Health = PlayerMaxHealth
	p.Alive = true
	p.RespawnAt = 0
	p.Buffs = make(map[string]int64)
	p.Score -= RespawnPenalty
	if p.Score < 0 {
		p.Score = 0
	}
}

// Reset returns the player to a fresh match state at (x, y).
func (p *Player) Reset(x, y float64) {
	p.X = x
	p.Y = y
	p.PrevX = x
	p.PrevY = y
	p.Health = PlayerMaxHealth
	p.Score = 0
	p.Alive = true
	p.RespawnAt = 0
	p.LastShot = 0
	p.Buffs = make(map[string]int64)
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	s := PlayerState{
		ID:     p.ID,
		Name:   p.Name,
		X:      round1(p.X),
		Y:      round1(p.Y),
		Angle:  round1(p.Angle),
		Color:  p.Color,
		Health: round1(p.Health),
		Score:  p.Score,
		Alive:  p.Alive,
	}
	if len(p.Buffs) > 0 {
		s.Buffs = make(map[string]int64, len(p.Buffs))
		for kind, until := range p.Buffs {
			s.Buffs[kind] = until
		}
	}
	return s
}
