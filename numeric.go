package xor128

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultAlphabet is the character set used by RandomString.
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the conventional random string length.
	DefaultLength = 10

	// maxExactInt is the widest integer range a float64 draw covers exactly.
	maxExactInt = 1 << 53
)

// Float64 returns a random number in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.next()) / (1 << 32)
}

// Random returns a random number in [a, b).
//
// With no arguments the range is [0, 1); with one argument a it is [0, a).
// Bounds must be finite and a must not exceed b.
func (g *Generator) Random(bounds ...float64) (float64, error) {
	a, b, err := floatBounds(bounds, 1)
	if err != nil {
		return 0, err
	}
	f := g.Float64()*(b-a) + a
	// Rounding can land on b when a is large relative to b-a.
	if f >= b && a < b {
		f = math.Nextafter(b, a)
	}
	return f, nil
}

// RandomInt returns a random integer in [a, b).
//
// With no arguments the range is [0, 2), so the result is 0 or 1; with one
// argument a it is [0, a). The range may be at most 2^53 wide. An empty
// range [a, a) returns a, still consuming one draw like Random(a, a).
func (g *Generator) RandomInt(bounds ...int) (int, error) {
	var a, b int
	switch len(bounds) {
	case 0:
		a, b = 0, 2
	case 1:
		b = bounds[0]
	case 2:
		a, b = bounds[0], bounds[1]
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "at most 2 bounds, got %d", len(bounds))
	}

	if a > b {
		return 0, errors.Wrapf(ErrInvalidArgument, "lower bound %d greater than upper bound %d", a, b)
	}
	// b-a wraps negative when the range does not fit in an int.
	n := b - a
	if n < 0 || uint64(n) > maxExactInt {
		return 0, errors.Wrapf(ErrInvalidArgument, "range [%d, %d) wider than 2^53", a, b)
	}
	if n == 0 {
		g.next()
		return a, nil
	}
	return a + g.intn(n), nil
}

// intn returns an integer in [0, n) for n > 0, consuming exactly one word.
func (g *Generator) intn(n int) int {
	return int(math.Floor(g.Float64() * float64(n)))
}

// RandomInterval returns a random number in
// [center-halfWidth, center+halfWidth). Both parameters default to 0.5,
// giving [0, 1).
func (g *Generator) RandomInterval(params ...float64) (float64, error) {
	center, halfWidth := 0.5, 0.5
	switch len(params) {
	case 0:
	case 1:
		center = params[0]
	case 2:
		center, halfWidth = params[0], params[1]
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "at most 2 parameters, got %d", len(params))
	}
	return g.Random(center-halfWidth, center+halfWidth)
}

// RandomBool returns true or false with equal probability.
func (g *Generator) RandomBool() bool {
	return g.intn(2) == 1
}

// RandomString returns a string of length characters drawn uniformly from
// DefaultAlphabet.
//
// Unlike RandomStringFrom, which returns ErrInvalidArgument, a negative
// length is not an error here: any length <= 0 yields "" and draws nothing.
func (g *Generator) RandomString(length int) string {
	if length <= 0 {
		return ""
	}
	s, _ := g.RandomStringFrom(length, DefaultAlphabet)
	return s
}

// RandomStringFrom returns a string of length characters, each drawn
// uniformly from the runes of alphabet.
func (g *Generator) RandomStringFrom(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errors.Wrapf(ErrInvalidArgument, "negative string length %d", length)
	}
	chars := []rune(alphabet)
	if len(chars) == 0 && length > 0 {
		return "", errors.Wrap(ErrInvalidArgument, "empty alphabet")
	}

	var sb strings.Builder
	sb.Grow(length)
	for range length {
		sb.WriteRune(chars[g.intn(len(chars))])
	}
	return sb.String(), nil
}

// floatBounds resolves optional range arguments to [a, b). def is the upper
// bound when none is given.
func floatBounds(bounds []float64, def float64) (a, b float64, err error) {
	switch len(bounds) {
	case 0:
		a, b = 0, def
	case 1:
		b = bounds[0]
	case 2:
		a, b = bounds[0], bounds[1]
	default:
		return 0, 0, errors.Wrapf(ErrInvalidArgument, "at most 2 bounds, got %d", len(bounds))
	}

	if !isFinite(a) || !isFinite(b) {
		return 0, 0, errors.Wrapf(ErrInvalidArgument, "bounds must be finite numbers, got [%v, %v)", a, b)
	}
	if a > b {
		return 0, 0, errors.Wrapf(ErrInvalidArgument, "lower bound %v greater than upper bound %v", a, b)
	}
	if math.IsInf(b-a, 0) {
		return 0, 0, errors.Wrapf(ErrInvalidArgument, "range [%v, %v) too wide for float64", a, b)
	}
	return a, b, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
