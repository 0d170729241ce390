// Package random provides seed generation for the session's random source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
)

var seedSource io.Reader = crand.Reader

// NewSeed generates a non-zero random seed using crypto/rand. Zero is
// reserved for "draw a seed", so it is never handed out.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := io.ReadFull(seedSource, b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// NewRand returns a generator for seed, drawing a fresh seed when seed is 0.
// The seed actually used is returned so a run can be replayed.
func NewRand(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
