package main

import (
	"math"
	"testing"
)

func TestEnemyClassesComplete(t *testing.T) {
	if len(EnemyClasses) != 3 {
		t.Fatalf("expected 3 enemy classes, got %d", len(EnemyClasses))
	}
	for _, c := range EnemyClasses {
		if c.Kind == "" || c.Color == "" {
			t.Errorf("class %q missing identity fields", c.Kind)
		}
		if c.Radius <= 0 || c.Speed <= 0 || c.Health <= 0 || c.Touch <= 0 {
			t.Errorf("class %q has non-positive stats", c.Kind)
		}
		if c.Score <= 0 || c.Weight <= 0 {
			t.Errorf("class %q has non-positive score or weight", c.Kind)
		}
		if _, ok := enemyClassByKind[c.Kind]; !ok {
			t.Errorf("class %q missing from lookup map", c.Kind)
		}
	}
}

func TestPickEnemyClassValid(t *testing.T) {
	for i := 0; i < 200; i++ {
		c := pickEnemyClass()
		if _, ok := enemyClassByKind[c.Kind]; !ok {
			t.Fatalf("picked unknown class %q", c.Kind)
		}
	}
}

func TestNewEnemyMatchesClass(t *testing.T) {
	e := NewEnemy(300, 400, 1)
	c, ok := enemyClassByKind[e.Kind]
	if !ok {
		t.Fatalf("enemy has unknown kind %q", e.Kind)
	}
	if e.X != 300 || e.Y != 400 {
		t.Errorf("expected position (300, 400), got (%f, %f)", e.X, e.Y)
	}
	if e.Radius != c.Radius || e.Speed != c.Speed || e.Touch != c.Touch {
		t.Error("enemy stats should match its class")
	}
	if e.Health != c.Health || e.MaxHealth != c.Health {
		t.Error("enemy health should match its class")
	}
	if e.Score != c.Score || e.Color != c.Color {
		t.Error("enemy score/color should match its class")
	}
}

func TestNewEnemyScaling(t *testing.T) {
	e := NewEnemy(0, 0, 1.3)
	c := enemyClassByKind[e.Kind]
	if math.Abs(e.Health-c.Health*1.3) > 0.001 {
		t.Errorf("expected scaled health %f, got %f", c.Health*1.3, e.Health)
	}
	if math.Abs(e.Speed-c.Speed*1.3) > 0.001 {
		t.Errorf("expected scaled speed %f, got %f", c.Speed*1.3, e.Speed)
	}
	if e.Touch != c.Touch || e.Score != c.Score {
		t.Error("touch damage and score should not scale")
	}
}

func TestEnemySeeksTarget(t *testing.T) {
	e := &Enemy{X: 100, Y: 100, Speed: 80}
	dt := 1.0 / 60.0

	e.Step(dt, 200, 100)

	if e.X <= 100 {
		t.Errorf("enemy should have moved toward target, X=%f", e.X)
	}
	if math.Abs(e.Y-100) > 0.001 {
		t.Errorf("enemy should hold course on Y, got %f", e.Y)
	}
	if math.Abs(e.Angle) > 0.001 {
		t.Errorf("enemy should face its target, angle=%f", e.Angle)
	}
}

func TestEnemyTakeDamage(t *testing.T) {
	e := &Enemy{Health: 40, MaxHealth: 40}

	died := e.TakeDamage(20)
	if died {
		t.Error("enemy should survive 20 damage")
	}
	if e.Health != 20 {
		t.Errorf("expected health 20, got %f", e.Health)
	}

	died = e.TakeDamage(40)
	if !died {
		t.Error("enemy should die from 40 more damage")
	}
	if e.Health != 0 {
		t.Errorf("health should clamp at 0, got %f", e.Health)
	}
}
