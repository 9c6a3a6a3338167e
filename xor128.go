// Package xor128 implements a deterministic xorshift128 pseudo-random number
// generator with ranged sampling, random strings, picking and shuffling.
//
// Two generators built from the same seed produce identical output for the
// same sequence of calls, on any platform. The generator is not suitable for
// cryptographic use.
//
// Basic usage:
//
//	g, err := xor128.New(42)
//	if err != nil {
//		return err
//	}
//	f := g.Float64()
//	deck := xor128.Shuffle(g, cards)
//
// A Generator is not safe for concurrent use. Give each goroutine its own
// Generator, or guard a shared one with a mutex.
package xor128

import (
	crand "crypto/rand"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	zl "github.com/rs/zerolog/log"

	"github.com/nozzle/xor128/internal/rand"
)

// Config configures Generator construction.
type Config struct {
	// Seeds are the seed values, at most four. Missing trailing words are
	// filled with the previous word plus one.
	// Empty means seed from Entropy.
	Seeds []int64

	// Entropy supplies seed words when Seeds is empty.
	// Default: crypto/rand.Reader
	Entropy io.Reader

	// Logger receives seeding diagnostics.
	// Default: the global zerolog logger
	Logger *zerolog.Logger
}

// DefaultConfig returns a configuration that seeds from the platform's
// secure random source.
func DefaultConfig() Config {
	return Config{
		Entropy: crand.Reader,
		Logger:  &zl.Logger,
	}
}

// Generator is an xorshift128 pseudo-random number generator.
type Generator struct {
	state   rand.State
	entropy io.Reader
	log     zerolog.Logger
}

// New creates a Generator from zero to four seeds.
//
// With no seeds the state is drawn from crypto/rand. A single seed x expands
// to (x, x+1, x+2, x+3); two or three seeds are filled the same way. Every
// resolved word must be at least 1, except for an explicit (0, 0, 0, 0), which
// is accepted with a warning and yields a degenerate generator.
func New(seeds ...int64) (*Generator, error) {
	cfg := DefaultConfig()
	cfg.Seeds = seeds
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Generator from cfg.
func NewWithConfig(cfg Config) (*Generator, error) {
	g := &Generator{entropy: cfg.Entropy, log: zl.Logger}
	if cfg.Logger != nil {
		g.log = *cfg.Logger
	}
	if g.entropy == nil {
		g.entropy = crand.Reader
	}

	var (
		state rand.State
		err   error
	)
	if len(cfg.Seeds) == 0 {
		state, err = entropyState(g.entropy)
		if err == nil {
			g.log.Debug().Msg("xor128: seeded from entropy source")
		}
	} else {
		state, err = seedState(cfg.Seeds)
	}
	if err != nil {
		return nil, err
	}

	g.setState(state)
	return g, nil
}

// NewFromSeed64 creates a Generator whose four words are derived from seed
// with SplitMix64, so nearby seeds give unrelated states.
func NewFromSeed64(seed uint64) *Generator {
	g := &Generator{entropy: crand.Reader, log: zl.Logger}
	g.setState(rand.Expand(seed))
	return g
}

// NewFromString creates a Generator from a textual seed, such as a world
// name or test case identifier.
func NewFromString(seed string) *Generator {
	return NewFromSeed64(xxhash.Sum64String(seed))
}

// Reseed resets the generator using the same rules as New, drawing from the
// configured entropy source when no seeds are given. On error the current
// state is kept.
func (g *Generator) Reseed(seeds ...int64) error {
	var (
		state rand.State
		err   error
	)
	if len(seeds) == 0 {
		state, err = entropyState(g.entropy)
	} else {
		state, err = seedState(seeds)
	}
	if err != nil {
		return err
	}

	g.setState(state)
	return nil
}

// State returns a copy of the four state words.
func (g *Generator) State() [4]uint32 {
	return g.state
}

// Degenerate reports whether the state is all zero. A degenerate generator
// returns zero words forever.
func (g *Generator) Degenerate() bool {
	return g.state.IsAllZero()
}

func (g *Generator) setState(s rand.State) {
	g.state = s
	if s.IsAllZero() {
		g.log.Warn().Msg("xor128: all-zero seed, generator will only produce zeros")
	}
}

// next draws one raw word.
func (g *Generator) next() uint32 {
	return g.state.Next()
}
