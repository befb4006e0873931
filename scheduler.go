package main

import (
	"log"
	"sync"
	"time"
)

const (
	TickRate     = 60 // simulation ticks per second
	TickDuration = time.Second / TickRate
)

// Scheduler drives every live room at the fixed tick rate. A single
// goroutine walks the rooms; each room serializes on its own lock.
type Scheduler struct {
	registry *Registry
	mu       sync.Mutex
	running  bool
	stop     chan struct{}
}

func NewScheduler(registry *Registry) *Scheduler {
	return &Scheduler{
		registry: registry,
		stop:     make(chan struct{}),
	}
}

// Run ticks until Stop is called. Run it in its own goroutine.
func (s *Scheduler) Run() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now().UnixMilli()
			for _, room := range s.registry.Rooms() {
				s.tickRoom(room, now)
			}
		}
	}
}

// tickRoom fences per-room faults: a panicking room is logged and
// skipped while every other room keeps ticking.
func (s *Scheduler) tickRoom(room *Room, now int64) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("room %s: tick panic: %v", room.Code(), rec)
		}
	}()
	room.Tick(now)
}

// Stop halts the tick loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
}
