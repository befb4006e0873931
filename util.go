package main

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"sync/atomic"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// round1 rounds to one decimal place to keep wire payloads compact
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// randFloat returns a random float64 in [0, 1) using a crypto-seeded xorshift.
// Gameplay randomness does not need crypto quality, only an unpredictable
// seed. Rooms tick under their own locks, so the state is atomic.
var randSrc atomic.Uint64

func randFloat() float64 {
	x := randSrc.Load()
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	if x == 0 {
		x = 1
	}
	randSrc.Store(x)
	return float64(x%10000) / 10000.0
}

func init() {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	var seed uint64
	for i, v := range b {
		seed |= uint64(v) << (uint(i) * 8)
	}
	if seed == 0 {
		seed = 1
	}
	randSrc.Store(seed)
}
