package main

import "math"

// EnemyContactMargin widens the touch-damage ring beyond the enemy's
// body so grazing contact still hurts.
const EnemyContactMargin = 18.0

// EnemyClass defines the stats of one enemy kind.
type EnemyClass struct {
	Kind   string
	Radius float64
	Speed  float64 // pixels/s
	Health float64
	Touch  float64 // contact damage per second
	Score  int     // awarded to the killer
	Weight int     // spawn weight
	Color  string
}

// EnemyClasses is the spawnable bestiary. Weights are relative; they
// do not need to sum to anything in particular.
var EnemyClasses = []EnemyClass{
	{Kind: "normal", Radius: 20, Speed: 80, Health: 40, Touch: 25, Score: 10, Weight: 60, Color: "#ff5252"},
	{Kind: "fast", Radius: 14, Speed: 150, Health: 20, Touch: 15, Score: 15, Weight: 25, Color: "#ffb142"},
	{Kind: "tank", Radius: 30, Speed: 50, Health: 120, Touch: 40, Score: 30, Weight: 15, Color: "#e040fb"},
}

var enemyClassByKind = make(map[string]EnemyClass)

func init() {
	for _, c := range EnemyClasses {
		enemyClassByKind[c.Kind] = c
	}
}

// pickEnemyClass draws a class by spawn weight.
func pickEnemyClass() EnemyClass {
	total := 0
	for _, c := range EnemyClasses {
		total += c.Weight
	}
	roll := randFloat() * float64(total)
	for _, c := range EnemyClasses {
		roll -= float64(c.Weight)
		if roll < 0 {
			return c
		}
	}
	return EnemyClasses[0]
}

// Enemy is one AI drone chasing the nearest living player.
type Enemy struct {
	ID        string
	X, Y      float64
	Kind      string
	Radius    float64
	Speed     float64
	Health    float64
	MaxHealth float64
	Touch     float64
	Score     int
	Color     string
	Angle     float64
}

// NewEnemy spawns a weighted-random enemy at (x, y). scale multiplies
// health and speed, 1.0 leaves the class stats untouched.
func NewEnemy(x, y, scale float64) *Enemy {
	c := pickEnemyClass()
	return &Enemy{
		ID:        GenerateID(8),
		X:         x,
		Y:         y,
		Kind:      c.Kind,
		Radius:    c.Radius,
		Speed:     c.Speed * scale,
		Health:    c.Health * scale,
		MaxHealth: c.Health * scale,
		Touch:     c.Touch,
		Score:     c.Score,
		Color:     c.Color,
	}
}

// Step moves the enemy one tick straight at (tx, ty).
func (e *Enemy) Step(dt, tx, ty float64) {
	e.Angle = math.Atan2(ty-e.Y, tx-e.X)
	e.X += math.Cos(e.Angle) * e.Speed * dt
	e.Y += math.Sin(e.Angle) * e.Speed * dt
}

// TakeDamage applies dmg and returns true if the enemy died.
func (e *Enemy) TakeDamage(dmg float64) bool {
	e.Health -= dmg
	if e.Health > 0 {
		return false
	}
	e.Health = 0
	return true
}

// ToState converts to protocol state
func (e *Enemy) ToState() EnemyState {
	return EnemyState{
		ID:        e.ID,
		Kind:      e.Kind,
		X:         round1(e.X),
		Y:         round1(e.Y),
		Angle:     round1(e.Angle),
		Radius:    e.Radius,
		Health:    round1(e.Health),
		MaxHealth: e.MaxHealth,
		Color:     e.Color,
	}
}
