package main

import (
	"math"
	"testing"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("p1", "TestPilot", 500, 600, "#00e5ff")
	if p.ID != "p1" {
		t.Errorf("expected ID p1, got %s", p.ID)
	}
	if p.Name != "TestPilot" {
		t.Errorf("expected name TestPilot, got %s", p.Name)
	}
	if p.X != 500 || p.Y != 600 {
		t.Errorf("expected position (500, 600), got (%f, %f)", p.X, p.Y)
	}
	if p.Color != "#00e5ff" {
		t.Errorf("expected color #00e5ff, got %s", p.Color)
	}
	if p.Health != PlayerMaxHealth {
		t.Errorf("expected health %f, got %f", PlayerMaxHealth, p.Health)
	}
	if !p.Alive {
		t.Error("expected player to be alive")
	}
	if p.Buffs == nil {
		t.Error("expected buffs map to be initialized")
	}
}

func TestPlayerStepFlagMovement(t *testing.T) {
	cfg := DefaultRoomConfig()
	dt := 1.0 / 60.0
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Input.Right = true

	p.Step(dt, 1000, cfg)

	want := 500 + PlayerSpeed*dt
	if math.Abs(p.X-want) > 0.001 {
		t.Errorf("expected X %f, got %f", want, p.X)
	}
	if p.Y != 500 {
		t.Errorf("expected Y unchanged, got %f", p.Y)
	}
	if p.Angle != 0 {
		t.Errorf("expected facing 0 (right), got %f", p.Angle)
	}
}

func TestPlayerStepDiagonalNormalized(t *testing.T) {
	cfg := DefaultRoomConfig()
	dt := 1.0 / 60.0
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Input.Up = true
	p.Input.Right = true

	p.Step(dt, 1000, cfg)

	moved := Distance(500, 500, p.X, p.Y)
	if math.Abs(moved-PlayerSpeed*dt) > 0.001 {
		t.Errorf("diagonal movement should be normalized: moved %f, want %f", moved, PlayerSpeed*dt)
	}
}

func TestPlayerStepAnalogGradation(t *testing.T) {
	cfg := DefaultRoomConfig()
	dt := 1.0 / 60.0
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Input.MoveX = 0.5

	p.Step(dt, 1000, cfg)

	want := 500 + 0.5*PlayerSpeed*dt
	if math.Abs(p.X-want) > 0.001 {
		t.Errorf("half stick should move at half speed: X=%f, want %f", p.X, want)
	}
}

func TestPlayerStepStickPlusKeysCapped(t *testing.T) {
	cfg := DefaultRoomConfig()
	dt := 1.0 / 60.0
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Input.MoveX = 1
	p.Input.Right = true

	p.Step(dt, 1000, cfg)

	want := 500 + PlayerSpeed*dt
	if math.Abs(p.X-want) > 0.001 {
		t.Errorf("stick+key should cap at full speed: X=%f, want %f", p.X, want)
	}
}

func TestPlayerSpeedBuff(t *testing.T) {
	cfg := DefaultRoomConfig()
	dt := 1.0 / 60.0
	now := int64(1000)
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.GrantBuff(BuffSpeed, now, 6000)
	p.Input.Right = true

	p.Step(dt, now, cfg)

	want := 500 + PlayerSpeed*SpeedBuffMul*dt
	if math.Abs(p.X-want) > 0.001 {
		t.Errorf("speed buff should multiply speed: X=%f, want %f", p.X, want)
	}
}

func TestPlayerStepClampsToArena(t *testing.T) {
	cfg := DefaultRoomConfig()
	dt := 1.0 / 60.0

	p := NewPlayer("p1", "A", EdgeInset, 500, "#fff")
	p.Input.Left = true
	p.Step(dt, 1000, cfg)
	if p.X != EdgeInset {
		t.Errorf("expected X clamped at %f, got %f", EdgeInset, p.X)
	}

	p.Input = InputState{Right: true}
	p.X = cfg.WorldWidth - EdgeInset
	p.Step(dt, 1000, cfg)
	if p.X != cfg.WorldWidth-EdgeInset {
		t.Errorf("expected X clamped at %f, got %f", cfg.WorldWidth-EdgeInset, p.X)
	}
}

func TestPlayerFacingFromAngle(t *testing.T) {
	cfg := DefaultRoomConfig()
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Input.Right = true
	p.Input.Angle = 1.5
	p.Input.HasAngle = true

	p.Step(1.0/60.0, 1000, cfg)

	if p.Angle != 1.5 {
		t.Errorf("aim angle should win over movement: got %f", p.Angle)
	}
}

func TestPlayerFacingFromMovement(t *testing.T) {
	cfg := DefaultRoomConfig()
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Input.Up = true

	p.Step(1.0/60.0, 1000, cfg)

	if math.Abs(p.Angle-(-math.Pi/2)) > 0.001 {
		t.Errorf("moving up should face -pi/2, got %f", p.Angle)
	}
}

func TestPlayerBuffExpiryBoundary(t *testing.T) {
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Buffs[BuffShield] = 1000

	if p.HasBuff(BuffShield, 1000) {
		t.Error("buff expiring exactly now should not count")
	}
	if !p.HasBuff(BuffShield, 999) {
		t.Error("buff should be active just before expiry")
	}
}

func TestPlayerStepPrunesExpiredBuffs(t *testing.T) {
	cfg := DefaultRoomConfig()
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Buffs[BuffRapid] = 999
	p.Buffs[BuffShield] = 5000

	p.Step(1.0/60.0, 1000, cfg)

	if _, ok := p.Buffs[BuffRapid]; ok {
		t.Error("expired buff should be pruned")
	}
	if _, ok := p.Buffs[BuffShield]; !ok {
		t.Error("live buff should survive pruning")
	}
}

func TestPlayerFireReady(t *testing.T) {
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.LastShot = 0

	if !p.FireReady(FireCooldownMs) {
		t.Error("should be ready exactly at cooldown")
	}
	if p.FireReady(FireCooldownMs - 1) {
		t.Error("should not be ready before cooldown")
	}

	now := int64(10000)
	p.GrantBuff(BuffRapid, now, 8000)
	p.LastShot = now - RapidCooldownMs
	if !p.FireReady(now) {
		t.Error("rapid buff should shorten cooldown")
	}
	p.LastShot = now - RapidCooldownMs + 1
	if p.FireReady(now) {
		t.Error("rapid cooldown not yet elapsed")
	}
}

func TestPlayerTakeDamage(t *testing.T) {
	now := int64(5000)
	p := NewPlayer("p1", "A", 500, 500, "#fff")

	died := p.TakeDamage(30, now)
	if died {
		t.Error("should not have died from 30 damage")
	}
	if p.Health != 70 {
		t.Errorf("expected health 70, got %f", p.Health)
	}

	died = p.TakeDamage(80, now)
	if !died {
		t.Error("should have died from 80 more damage")
	}
	if p.Alive {
		t.Error("expected player to be dead")
	}
	if p.Health != 0 {
		t.Errorf("expected health 0, got %f", p.Health)
	}
	if p.RespawnAt != now+RespawnDelayMs {
		t.Errorf("expected respawn at %d, got %d", now+RespawnDelayMs, p.RespawnAt)
	}
}

func TestPlayerRespawn(t *testing.T) {
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Alive = false
	p.Health = 0
	p.Score = 80
	p.Buffs[BuffPower] = 99999

	p.Respawn(300, 400)

	if !p.Alive {
		t.Error("expected player alive after respawn")
	}
	if p.Health != PlayerMaxHealth {
		t.Errorf("expected full health, got %f", p.Health)
	}
	if p.X != 300 || p.Y != 400 {
		t.Errorf("expected position (300, 400), got (%f, %f)", p.X, p.Y)
	}
	if p.Score != 80-RespawnPenalty {
		t.Errorf("expected score %d, got %d", 80-RespawnPenalty, p.Score)
	}
	if len(p.Buffs) != 0 {
		t.Error("expected buffs cleared on respawn")
	}
}

func TestPlayerRespawnScoreFloor(t *testing.T) {
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Score = 30

	p.Respawn(300, 400)

	if p.Score != 0 {
		t.Errorf("score should floor at 0, got %d", p.Score)
	}
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer("p1", "A", 500, 500, "#fff")
	p.Score = 120
	p.Health = 15
	p.Alive = false
	p.LastShot = 777
	p.Buffs[BuffShield] = 99999

	p.Reset(200, 250)

	if p.Score != 0 || p.Health != PlayerMaxHealth || !p.Alive {
		t.Error("reset should restore a fresh match state")
	}
	if p.X != 200 || p.Y != 250 {
		t.Errorf("expected position (200, 250), got (%f, %f)", p.X, p.Y)
	}
	if p.LastShot != 0 || len(p.Buffs) != 0 {
		t.Error("reset should clear shot timer and buffs")
	}
}

func TestPlayerToState(t *testing.T) {
	p := NewPlayer("p1", "Pilot", 100.456, 200.04, "#fff")
	p.Angle = math.Pi / 4
	p.Score = 5
	p.Buffs[BuffRapid] = 9000

	s := p.ToState()
	if s.ID != "p1" || s.Name != "Pilot" {
		t.Error("state identity mismatch")
	}
	if s.X != 100.5 || s.Y != 200.0 {
		t.Errorf("state coords should round to one decimal, got (%f, %f)", s.X, s.Y)
	}
	if s.Score != 5 || !s.Alive {
		t.Error("state field mismatch")
	}
	if s.Buffs[BuffRapid] != 9000 {
		t.Error("state should carry buff expiries")
	}

	// The snapshot map must be a copy
	s.Buffs[BuffRapid] = 1
	if p.Buffs[BuffRapid] != 9000 {
		t.Error("mutating state buffs must not touch the player")
	}
}

func TestPlayerToStateOmitsEmptyBuffs(t *testing.T) {
	p := NewPlayer("p1", "Pilot", 100, 200, "#fff")
	s := p.ToState()
	if s.Buffs != nil {
		t.Error("empty buffs should be omitted from state")
	}
}
