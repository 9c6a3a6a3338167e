package rand

const (
	splitMixGamma = 0x9e3779b97f4a7c15
	splitMixMul1  = 0xbf58476d1ce4e5b9
	splitMixMul2  = 0x94d049bb133111eb
)

// SplitMix64 is the 64-bit SplitMix generator. It is only used to spread a
// single seed value over the four xorshift128 words.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 creates a SplitMix64 stream starting at seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Uint64 returns the next 64-bit output.
func (sm *SplitMix64) Uint64() uint64 {
	sm.state += splitMixGamma
	z := sm.state
	z = (z ^ (z >> 30)) * splitMixMul1
	z = (z ^ (z >> 27)) * splitMixMul2
	return z ^ (z >> 31)
}

// Mix returns the next output split into its high and low 32-bit halves.
func (sm *SplitMix64) Mix() (hi, lo uint32) {
	v := sm.Uint64()
	return uint32(v >> 32), uint32(v)
}

// Expand derives a full xorshift128 state from one 64-bit seed using two
// SplitMix64 outputs.
func Expand(seed uint64) State {
	sm := NewSplitMix64(seed)
	x, y := sm.Mix()
	z, w := sm.Mix()
	return NewState(x, y, z, w)
}
