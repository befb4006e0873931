package main

const (
	SpawnMargin       = 60.0  // distance from walls for fresh spawns
	SafeSpawnRadius   = 200.0 // min distance from every enemy
	SafeSpawnAttempts = 25
)

// randomSpawn picks a uniform point inside the arena, margin inset.
func randomSpawn(cfg RoomConfig) (float64, float64) {
	x := SpawnMargin + randFloat()*(cfg.WorldWidth-2*SpawnMargin)
	y := SpawnMargin + randFloat()*(cfg.WorldHeight-2*SpawnMargin)
	return x, y
}

// safeSpawn picks a point clear of every enemy. After the attempt
// budget runs out it gives up and returns an unconstrained point, so
// a crowded arena can never livelock a respawn.
func safeSpawn(cfg RoomConfig, enemies []*Enemy) (float64, float64) {
	const r2 = SafeSpawnRadius * SafeSpawnRadius
	for i := 0; i < SafeSpawnAttempts; i++ {
		x, y := randomSpawn(cfg)
		clear := true
		for _, e := range enemies {
			if DistanceSq(x, y, e.X, e.Y) < r2 {
				clear = false
				break
			}
		}
		if clear {
			return x, y
		}
	}
	return randomSpawn(cfg)
}
