// Package random provides seed helpers for the puzzle's pseudo-random source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns configured when it is non-zero, otherwise a fresh
// crypto seed. The boolean reports whether the seed was generated.
func ResolveSeed(configured int64) (int64, bool, error) {
	if configured != 0 {
		return configured, false, nil
	}
	seed, err := NewSeed()
	if err != nil {
		return 0, false, err
	}
	return seed, true, nil
}
