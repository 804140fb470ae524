// Package testkit provides deterministic sources and construction helpers
// shared by the package tests.
package testkit

import (
	"hash/fnv"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"gozinf/domain/dist"
	"gozinf/domain/link"
	"gozinf/internal/rng"
)

// Source returns an independent deterministic source keyed by a name and
// seed, so tests drawing from several distributions do not share streams.
func Source(name string, seed uint64) rand.Source {
	h := fnv.New64a()
	h.Write([]byte(name))
	return rng.New(h.Sum64() ^ seed)
}

// MustLink builds a link or fails the test.
func MustLink(tb testing.TB, t link.Type) link.Link {
	tb.Helper()
	l, err := link.New(t)
	if err != nil {
		tb.Fatalf("link.New(%v): %v", t, err)
	}
	return l
}

// MustNew composes a zero-inflated distribution or fails the test.
func MustNew(tb testing.TB, enc distuv.Bernoulli, pos dist.PositiveContinuous) dist.ZeroInflated {
	tb.Helper()
	z, err := dist.New(enc, pos)
	if err != nil {
		tb.Fatalf("dist.New(p=%v): %v", enc.P, err)
	}
	return z
}

// MustDerive derives a zero-inflated distribution or fails the test.
func MustDerive(tb testing.TB, lnk link.Link, fam dist.Family, p1, p2, dispersion float64, src rand.Source) dist.ZeroInflated {
	tb.Helper()
	z, err := dist.Derive(lnk, fam, p1, p2, dispersion, src)
	if err != nil {
		tb.Fatalf("dist.Derive(%v, %v): %v", lnk.Type(), fam, err)
	}
	return z
}
