package main

import "math"

// Buff kinds. The same strings key Player.Buffs and travel on the wire.
const (
	BuffRapid  = "rapid"
	BuffPower  = "power"
	BuffSpeed  = "speed"
	BuffShield = "shield"
)

const (
	PowerupRadius = 14.0
	PickupRange   = 34.0 // center distance at which a ship collects

	powerupPulseRate = 2.0 // radians/s, drives the client glow cycle
)

// PowerupClass defines one collectible kind.
type PowerupClass struct {
	Kind     string
	Label    string
	Color    string
	Duration int64 // buff lifetime in ms
}

var PowerupClasses = []PowerupClass{
	{Kind: BuffRapid, Label: "Rapid Fire", Color: "#ffeb3b", Duration: 8000},
	{Kind: BuffPower, Label: "Double Damage", Color: "#ff1744", Duration: 8000},
	{Kind: BuffSpeed, Label: "Speed Boost", Color: "#00e676", Duration: 6000},
	{Kind: BuffShield, Label: "Shield", Color: "#40c4ff", Duration: 5000},
}

var powerupClassByKind = make(map[string]PowerupClass)

func init() {
	for _, c := range PowerupClasses {
		powerupClassByKind[c.Kind] = c
	}
}

// pickPowerupClass draws a kind uniformly.
func pickPowerupClass() PowerupClass {
	return PowerupClasses[int(randFloat()*float64(len(PowerupClasses)))%len(PowerupClasses)]
}

// Powerup is one collectible floating in the arena.
type Powerup struct {
	ID       string
	X, Y     float64
	Kind     string
	Label    string
	Color    string
	Radius   float64
	Duration int64
	Phase    float64
}

// NewPowerup spawns a random-kind powerup at (x, y).
func NewPowerup(x, y float64) *Powerup {
	c := pickPowerupClass()
	return &Powerup{
		ID:       GenerateID(8),
		X:        x,
		Y:        y,
		Kind:     c.Kind,
		Label:    c.Label,
		Color:    c.Color,
		Radius:   PowerupRadius,
		Duration: c.Duration,
	}
}

// Step advances the glow phase one tick.
func (pu *Powerup) Step(dt float64) {
	pu.Phase += powerupPulseRate * dt
	if pu.Phase >= 2*math.Pi {
		pu.Phase -= 2 * math.Pi
	}
}

// ToState converts to protocol state
func (pu *Powerup) ToState() PowerupState {
	return PowerupState{
		ID:    pu.ID,
		Kind:  pu.Kind,
		X:     round1(pu.X),
		Y:     round1(pu.Y),
		Label: pu.Label,
		Color: pu.Color,
		Phase: round1(pu.Phase),
	}
}
