package main

// RoomConfig holds per-room simulation tuning
type RoomConfig struct {
	WorldWidth  float64
	WorldHeight float64
	MaxPlayers  int

	InitialEnemies int   // enemies placed on game start
	MaxEnemies     int   // timed-spawn population cap
	MaxPowerups    int   // timed-spawn population cap
	EnemySpawnMs   int64 // ms between enemy spawns
	PowerupSpawnMs int64 // ms between power-up spawns

	// EnemyScaling toughens spawned enemies as more players join:
	// health and speed scale by 1 + 0.15*(players-1).
	EnemyScaling bool
}

// DefaultRoomConfig returns the standard arena configuration
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		WorldWidth:     1600,
		WorldHeight:    1200,
		MaxPlayers:     4,
		InitialEnemies: 4,
		MaxEnemies:     8,
		MaxPowerups:    3,
		EnemySpawnMs:   3000,
		PowerupSpawnMs: 10000,
		EnemyScaling:   false,
	}
}
