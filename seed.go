package xor128

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/nozzle/xor128/internal/rand"
)

const maxSeeds = 4

// seedState resolves up to four seeds into state words. Missing trailing
// words are the previous word plus one. Values are checked before being
// reduced modulo 2^32.
func seedState(seeds []int64) (rand.State, error) {
	if len(seeds) > maxSeeds {
		return rand.State{}, errors.Wrapf(ErrInvalidSeed, "too many seeds (%d, max %d)", len(seeds), maxSeeds)
	}

	var words [maxSeeds]int64
	copy(words[:], seeds)
	for i := len(seeds); i < maxSeeds; i++ {
		words[i] = words[i-1] + 1
	}

	// An explicit all-zero seed is let through and flagged as degenerate.
	if len(seeds) == maxSeeds && words == [maxSeeds]int64{} {
		return rand.State{}, nil
	}

	for i, v := range words {
		if v < 1 {
			return rand.State{}, errors.Wrapf(ErrInvalidSeed, "word %d is %d, must be greater than 0", i, v)
		}
	}

	return rand.NewState(uint32(words[0]), uint32(words[1]), uint32(words[2]), uint32(words[3])), nil
}

// entropyState reads four independent words in [1, 2^32) from r.
func entropyState(r io.Reader) (rand.State, error) {
	var (
		s   rand.State
		buf [4]byte
	)
	for i := range s {
		for s[i] == 0 {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return rand.State{}, errors.Wrap(err, "xor128: reading entropy")
			}
			s[i] = binary.LittleEndian.Uint32(buf[:])
		}
	}
	return s, nil
}
