// Package rand provides the xorshift128 pseudo-random transition used by
// the xor128 generator, plus SplitMix64 seed expansion.
//
// Output is bit-exact with Marsaglia's xorshift128 (shifts 11, 19, 8), so a
// given 4-word seed yields the same word stream on every platform.
package rand

// State holds the internal state of the xorshift128 PRNG: the four words
// x, y, z and w, in that order.
type State [4]uint32

// NewState creates a state from four seed words.
func NewState(x, y, z, w uint32) State {
	return State{x, y, z, w}
}

// IsAllZero reports whether every word is zero. The all-zero state is a
// fixed point of Next and never leaves it.
func (s *State) IsAllZero() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

// Rotate replaces (x, y, z, w) with (y, z, w, x).
func (s *State) Rotate() {
	s[0], s[1], s[2], s[3] = s[1], s[2], s[3], s[0]
}

// SetFirstWord overwrites x.
func (s *State) SetFirstWord(v uint32) {
	s[0] = v
}

// Next advances the state by one xorshift128 step and returns the new w.
func (s *State) Next() uint32 {
	t := s[0] ^ (s[0] << 11)
	w := s[3]
	s.Rotate()
	s[3] = w ^ (w >> 19) ^ t ^ (t >> 8)
	return s[3]
}

// Float64 returns the next word scaled into [0, 1) with 32 bits of precision.
func (s *State) Float64() float64 {
	return float64(s.Next()) / (1 << 32)
}
