package xor128

import (
	"cmp"
	"reflect"
	"slices"

	"github.com/pkg/errors"
)

// Pick returns a uniformly chosen element of seq. It returns false, and
// consumes no randomness, when seq is empty. seq is not modified.
func Pick[T any](g *Generator, seq []T) (T, bool) {
	if len(seq) == 0 {
		var zero T
		return zero, false
	}
	return seq[g.intn(len(seq))], true
}

// PickString returns one uniformly chosen character of s. It returns false
// when s is empty.
func (g *Generator) PickString(s string) (string, bool) {
	r, ok := Pick(g, []rune(s))
	if !ok {
		return "", false
	}
	return string(r), true
}

// Shuffle returns a new slice holding the elements of seq in random order.
// seq is not modified. Empty input returns nil.
func Shuffle[T any](g *Generator, seq []T) []T {
	if len(seq) == 0 {
		return nil
	}
	out := make([]T, len(seq))
	for i, j := range g.permutation(len(seq)) {
		out[i] = seq[j]
	}
	return out
}

// ShuffleString returns the characters of s in random order.
func (g *Generator) ShuffleString(s string) string {
	return string(Shuffle(g, []rune(s)))
}

// PickAny is Pick for values whose type is only known at run time. x must
// be a string, slice or array; any other type returns ErrInvalidArgument
// without touching the generator. Empty input returns nil.
//
// For strings the result is a one-character string.
func (g *Generator) PickAny(x any) (any, error) {
	v, err := collectionValue(x)
	if err != nil {
		return nil, err
	}

	if v.Kind() == reflect.String {
		s, ok := g.PickString(v.String())
		if !ok {
			return nil, nil
		}
		return s, nil
	}
	if v.Len() == 0 {
		return nil, nil
	}
	return v.Index(g.intn(v.Len())).Interface(), nil
}

// ShuffleAny is Shuffle for values whose type is only known at run time.
// x must be a string, slice or array; the result has the same type as x.
// Any other type returns ErrInvalidArgument without touching the generator.
// An empty slice or array returns nil and an empty string returns "".
func (g *Generator) ShuffleAny(x any) (any, error) {
	v, err := collectionValue(x)
	if err != nil {
		return nil, err
	}

	if v.Kind() == reflect.String {
		return g.ShuffleString(v.String()), nil
	}
	n := v.Len()
	if n == 0 {
		return nil, nil
	}

	var out reflect.Value
	if v.Kind() == reflect.Array {
		out = reflect.New(v.Type()).Elem()
	} else {
		out = reflect.MakeSlice(v.Type(), n, n)
	}
	for i, j := range g.permutation(n) {
		out.Index(i).Set(v.Index(j))
	}
	return out.Interface(), nil
}

// permutation draws one sort key per position, in order, and returns the
// positions stably sorted by key.
func (g *Generator) permutation(n int) []int {
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = g.Float64()
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(keys[a], keys[b])
	})
	return order
}

func collectionValue(x any) (reflect.Value, error) {
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		return v, nil
	case reflect.Invalid:
		return v, errors.Wrap(ErrInvalidArgument, "expected a string, slice or array, got nil")
	default:
		return v, errors.Wrapf(ErrInvalidArgument, "expected a string, slice or array, got %T", x)
	}
}
