package main

import (
	"database/sql"
	"log"
	"sync"
	"time"
)

// Event types for telemetry tracking
const (
	EvtRoomCreated  = "room_created"
	EvtPlayerJoin   = "player_join"
	EvtPlayerLeave  = "player_leave"
	EvtGameStart    = "game_start"
	EvtEnemyKill    = "enemy_kill"
	EvtPowerupTaken = "powerup_taken"
)

// TelemetryEvent represents a single trackable event
type TelemetryEvent struct {
	Type      string
	RoomCode  string
	PlayerID  string
	Data      string // free-form detail (enemy kind, powerup kind)
	Timestamp time.Time
}

// Telemetry handles event tracking with batched background writes.
// A nil *Telemetry is valid and drops everything, so the server runs
// fine without a database.
type Telemetry struct {
	db     *DB
	events chan TelemetryEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewTelemetry creates and starts the telemetry background writer.
// Returns nil when there is no database to write to.
func NewTelemetry(db *DB) *Telemetry {
	if db == nil {
		return nil
	}
	t := &Telemetry{
		db:     db,
		events: make(chan TelemetryEvent, 1024),
		stop:   make(chan struct{}),
	}
	t.wg.Add(1)
	go t.writer()
	return t
}

// Track enqueues an event for async persistence (non-blocking)
func (t *Telemetry) Track(evtType, roomCode, playerID, data string) {
	if t == nil {
		return
	}
	select {
	case t.events <- TelemetryEvent{
		Type:      evtType,
		RoomCode:  roomCode,
		PlayerID:  playerID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full — drop event rather than blocking game loop
	}
}

// Stop gracefully shuts down the telemetry writer
func (t *Telemetry) Stop() {
	if t == nil {
		return
	}
	close(t.stop)
	t.wg.Wait()
}

// writer is the background goroutine that batches and writes events to DB
func (t *Telemetry) writer() {
	defer t.wg.Done()

	batch := make([]TelemetryEvent, 0, 64)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt := <-t.events:
			batch = append(batch, evt)
			// Flush immediately if batch is large
			if len(batch) >= 50 {
				t.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = batch[:0]
			}
		case <-t.stop:
			// Drain remaining events
			close(t.events)
			for evt := range t.events {
				batch = append(batch, evt)
			}
			if len(batch) > 0 {
				t.flush(batch)
			}
			return
		}
	}
}

// flush writes a batch of events to the database
func (t *Telemetry) flush(events []TelemetryEvent) {
	if len(events) == 0 {
		return
	}
	tx, err := t.db.conn.Begin()
	if err != nil {
		log.Printf("telemetry: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO telemetry_events (event_type, room_code, player_id, data, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("telemetry: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		room := sql.NullString{String: evt.RoomCode, Valid: evt.RoomCode != ""}
		pid := sql.NullString{String: evt.PlayerID, Valid: evt.PlayerID != ""}
		data := sql.NullString{String: evt.Data, Valid: evt.Data != ""}
		_, err := stmt.Exec(evt.Type, room, pid, data, evt.Timestamp.Format(time.RFC3339))
		if err != nil {
			log.Printf("telemetry: insert error: %v", err)
		}
	}
	tx.Commit()
}

// EventCounts returns counts of each event type for the last N days
func (t *Telemetry) EventCounts(days int) (map[string]int, error) {
	result := make(map[string]int)
	if t == nil {
		return result, nil
	}
	rows, err := t.db.conn.Query(`
		SELECT event_type, COUNT(*) FROM telemetry_events
		WHERE created_at >= date('now', '-' || ? || ' days')
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			continue
		}
		result[evtType] = count
	}
	return result, rows.Err()
}
