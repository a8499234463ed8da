package rng

import (
	"context"
	"math/rand"
)

// SeededAdapter implements the RNG port with deterministic seeded streams
type SeededAdapter struct{}

// NewSeededAdapter creates a deterministic RNG adapter
func NewSeededAdapter() *SeededAdapter {
	return &SeededAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *SeededAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed)), nil
}

// Stream creates a deterministic RNG stream for a specific run/stage/worker.
// The seed is derived by hashing runID + stageName + streamKey onto the base
// seed, so identical runs reproduce identical streams while distinct workers
// get independent ones.
func (r *SeededAdapter) Stream(ctx context.Context, runID, stageName, streamKey string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if runID != "" {
		seed += int64(hashString(runID))
	}
	if stageName != "" {
		seed += int64(hashString(stageName))
	}
	if streamKey != "" {
		seed += int64(hashString(streamKey))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
