// Package rng owns the process-wide random source used when a caller does
// not supply one. The default is constructed lazily on first use and is
// seeded once from the standard library's auto-seeded generator; Seed
// replaces it with a deterministic PCG stream so tests can pin results.
package rng

import (
	"math/rand/v2"
	"sync"
)

// lockedSource serializes draws so the shared default is safe for
// concurrent samplers. Callers needing uncontended throughput should pass
// their own per-goroutine sources instead.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	v := s.src.Uint64()
	s.mu.Unlock()
	return v
}

var (
	defaultMu  sync.Mutex
	defaultSrc *lockedSource
)

// Default returns the process-wide source, constructing it on first call.
func Default() rand.Source {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSrc == nil {
		defaultSrc = &lockedSource{src: rand.NewPCG(rand.Uint64(), rand.Uint64())}
	}
	return defaultSrc
}

// Seed replaces the process-wide source with a deterministic stream.
// Subsequent Default calls observe the new stream.
func Seed(seed uint64) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSrc = &lockedSource{src: rand.NewPCG(seed, seed)}
}

// New returns an independent deterministic source for the given seed,
// suitable for reproducible per-caller sampling.
func New(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}
