package main

import "math"

const (
	BulletSpeed  = 500.0 // pixels/s
	BulletRadius = 5.0
	BulletDamage = 20.0
	BulletOffset = 26.0 // muzzle distance from ship center
)

// Bullet is a single shot traveling in a straight line.
type Bullet struct {
	ID      string
	X, Y    float64
	VX, VY  float64
	Radius  float64
	OwnerID string
}

// NewBullet spawns a bullet at the owner's muzzle, headed where the
// owner is facing.
func NewBullet(owner *Player) *Bullet {
	cos := math.Cos(owner.Angle)
	sin := math.Sin(owner.Angle)
	return &Bullet{
		ID:      GenerateID(8),
		X:       owner.X + cos*BulletOffset,
		Y:       owner.Y + sin*BulletOffset,
		VX:      cos * BulletSpeed,
		VY:      sin * BulletSpeed,
		Radius:  BulletRadius,
		OwnerID: owner.ID,
	}
}

// Step moves the bullet one tick (dt in seconds)
func (b *Bullet) Step(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// OutOfBounds reports whether the bullet has fully left the arena.
func (b *Bullet) OutOfBounds(cfg RoomConfig) bool {
	return b.X < -b.Radius || b.X > cfg.WorldWidth+b.Radius ||
		b.Y < -b.Radius || b.Y > cfg.WorldHeight+b.Radius
}

// ToState converts to protocol state
func (b *Bullet) ToState() BulletState {
	return BulletState{
		ID:      b.ID,
		X:       round1(b.X),
		Y:       round1(b.Y),
		VX:      round1(b.VX),
		VY:      round1(b.VY),
		OwnerID: b.OwnerID,
	}
}
