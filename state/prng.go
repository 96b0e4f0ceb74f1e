package state

import (
	"encoding/binary"

	"github.com/mkobetic/okapi"
)

// PRNG is a value-typed, deterministically-seedable random source: per
// spec.md section 9's "PRNG as a value" design note, advancing it
// produces a new PRNG rather than mutating hidden state, which keeps the
// core reproducible under test. Bytes are derived from (seed, counter)
// via SHA-256, the same hash primitive the rest of the module already
// depends on.
type PRNG struct {
	seed    int64
	counter uint64
}

// NewPRNG creates a PRNG seeded deterministically; the same seed always
// produces the same sequence of Generate outputs.
func NewPRNG(seed int64) PRNG {
	return PRNG{seed: seed}
}

// Generate derives n bytes from the PRNG and returns them together with
// the next PRNG value, advanced past the blocks consumed.
func (p PRNG) Generate(n int) ([]byte, PRNG) {
	out := make([]byte, 0, n+32)
	counter := p.counter
	for len(out) < n {
		var block [16]byte
		binary.BigEndian.PutUint64(block[:8], uint64(p.seed))
		binary.BigEndian.PutUint64(block[8:], counter)
		hash := okapi.SHA256.New()
		hash.Write(block[:])
		out = append(out, hash.Digest()...)
		hash.Close()
		counter++
	}
	return out[:n], PRNG{seed: p.seed, counter: counter}
}

// WithPRNG is the exclusive path for sampling randomness off a
// ConnectionState: it reads the current PRNG, invokes f, installs the
// new PRNG f returns, and returns the sampled value. No other operation
// reads or writes the PRNG field.
func WithPRNG(cs *ConnectionState, f func(PRNG) ([]byte, PRNG)) []byte {
	value, next := f(cs.prng)
	cs.prng = next
	return value
}
