// Package deck provides the deterministic randomness behind a deal.
//
// Every random draw is read from an extendable-output function keyed by the
// game seed, so the same seed always yields the same permutation on every
// platform.
package deck

import (
	"encoding/binary"
	"fmt"
	"io"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// Source is a deterministic stream of uniform values derived from a seed.
// It satisfies math/rand/v2.Source, so callers may wrap it with rand.New.
type Source struct {
	xof kyber.XOF
	buf [8]byte
}

// NewSource creates a Source keyed by seed.
func NewSource(seed int64) *Source {
	return &Source{xof: suite.XOF(seedKey(seed))}
}

// Uint64 returns the next 64 bits of the stream.
func (s *Source) Uint64() uint64 {
	if _, err := io.ReadFull(s.xof, s.buf[:]); err != nil {
		// the XOF output is unbounded for any realistic game
		panic(fmt.Errorf("deck: reading xof stream: %w", err))
	}
	return binary.BigEndian.Uint64(s.buf[:])
}

// Intn returns a uniform value in [0, n). It panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("deck: invalid argument to Intn")
	}
	bound := uint64(n)
	threshold := -bound % bound
	for {
		v := s.Uint64()
		if v >= threshold {
			return int(v % bound)
		}
	}
}

func seedKey(seed int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(seed))
	return key
}
