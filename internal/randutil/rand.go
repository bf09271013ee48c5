// Package randutil centralises how deterministic random sources are built.
package randutil

import (
	"encoding/binary"
	"io"
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand backed by ChaCha8 and keyed from a single 64-bit
// seed. The same seed always yields the same stream, which is what makes
// shoes reproducible in tests and simulations.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewChaCha8(Key(seed)))
}

// NewReader returns a deterministic byte stream keyed the same way as New.
func NewReader(seed uint64) io.Reader {
	return rand.NewChaCha8(Key(seed))
}

// Key expands a 64-bit seed into the 32-byte key ChaCha8 expects by running
// four rounds of splitmix64 over it.
func Key(seed uint64) [32]byte {
	var key [32]byte
	state := seed
	for i := 0; i < 4; i++ {
		state += goldenRatio64
		binary.LittleEndian.PutUint64(key[i*8:], mix(state))
	}
	return key
}

// NewSeed returns a time-derived seed for callers that do not care about
// reproducibility.
func NewSeed() uint64 {
	return mix(uint64(time.Now().UnixNano()))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
