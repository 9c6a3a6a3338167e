package xor128_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nozzle/xor128"
)

func TestPick(t *testing.T) {
	arr := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	orig := slices.Clone(arr)

	for _, seed := range seeds {
		g := newGenerator(t, seed)
		counts := make(map[int]int)
		for range draws {
			v, ok := xor128.Pick(g, arr)
			require.True(t, ok)
			require.Contains(t, arr, v)
			counts[v]++
		}
		require.Equal(t, orig, arr)
		require.Len(t, counts, len(arr))
	}
}

func TestPickStructs(t *testing.T) {
	type item struct{ id, value int }
	items := make([]item, 10)
	for i := range items {
		items[i] = item{i, i ^ 0xc0ffee}
	}

	g := newGenerator(t, seeds[1])
	seen := make(map[item]bool)
	for range draws {
		v, ok := xor128.Pick(g, items)
		require.True(t, ok)
		seen[v] = true
	}
	require.Len(t, seen, len(items))
}

func TestPickString(t *testing.T) {
	const str = "1234567890"
	for _, seed := range seeds {
		g := newGenerator(t, seed)
		seen := make(map[string]bool)
		for range draws {
			c, ok := g.PickString(str)
			require.True(t, ok)
			require.Len(t, c, 1)
			require.Contains(t, str, c)
			seen[c] = true
		}
		require.Len(t, seen, len(str))
	}

	g := newGenerator(t, 3)
	c, ok := g.PickString("ü")
	require.True(t, ok)
	require.Equal(t, "ü", c)
}

func TestPickEmpty(t *testing.T) {
	g := newGenerator(t, 1, 2, 3, 4)
	before := g.State()

	v, ok := xor128.Pick(g, []string{})
	require.False(t, ok)
	require.Empty(t, v)

	c, ok := g.PickString("")
	require.False(t, ok)
	require.Empty(t, c)

	require.Equal(t, before, g.State())
}

func TestShuffle(t *testing.T) {
	arr := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	orig := slices.Clone(arr)

	for _, seed := range seeds {
		g := newGenerator(t, seed)
		for range draws {
			shuffled := xor128.Shuffle(g, arr)
			require.NotEqual(t, arr, shuffled)
			require.ElementsMatch(t, arr, shuffled)
			require.Equal(t, orig, arr)
		}
	}
}

func TestShuffleConsumesOneDrawPerElement(t *testing.T) {
	a := newGenerator(t, 9)
	b := newGenerator(t, 9)

	xor128.Shuffle(a, make([]int, 7))
	for range 7 {
		b.Float64()
	}
	require.Equal(t, b.State(), a.State())
}

func TestShuffleReference(t *testing.T) {
	arr := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	a := newGenerator(t, 1, 2, 3, 4)
	b := newGenerator(t, 1, 2, 3, 4)

	sa := xor128.Shuffle(a, arr)
	sb := xor128.Shuffle(b, arr)
	require.Equal(t, sa, sb)
	require.Equal(t, []int{3, 1, 2, 4, 5, 10, 7, 6, 8, 9}, sa)
}

func TestShuffleString(t *testing.T) {
	const str = "1234567890"
	for _, seed := range seeds {
		g := newGenerator(t, seed)
		for range draws {
			shuffled := g.ShuffleString(str)
			require.Len(t, shuffled, len(str))
			for _, c := range str {
				require.Equal(t, 1, strings.Count(shuffled, string(c)))
			}
		}
	}

	g := newGenerator(t, 2)
	require.ElementsMatch(t, []rune("héllo"), []rune(g.ShuffleString("héllo")))
}

func TestShuffleEmpty(t *testing.T) {
	g := newGenerator(t, 1, 2, 3, 4)
	before := g.State()

	require.Nil(t, xor128.Shuffle(g, []int{}))
	require.Nil(t, xor128.Shuffle[int](g, nil))
	require.Equal(t, "", g.ShuffleString(""))
	require.Equal(t, before, g.State())
}

func TestShuffleSingle(t *testing.T) {
	g := newGenerator(t, 1)
	require.Equal(t, []string{"only"}, xor128.Shuffle(g, []string{"only"}))
	require.Equal(t, "x", g.ShuffleString("x"))
}

func TestPickAny(t *testing.T) {
	g := newGenerator(t, seeds[2])

	v, err := g.PickAny([]int{1, 2, 3})
	require.NoError(t, err)
	require.Contains(t, []int{1, 2, 3}, v)

	v, err = g.PickAny([3]string{"a", "b", "c"})
	require.NoError(t, err)
	require.Contains(t, []string{"a", "b", "c"}, v)

	v, err = g.PickAny("xyz")
	require.NoError(t, err)
	require.Contains(t, []string{"x", "y", "z"}, v)

	for _, empty := range []any{[]int{}, "", [0]int{}} {
		v, err = g.PickAny(empty)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestShuffleAny(t *testing.T) {
	g := newGenerator(t, seeds[3])

	v, err := g.ShuffleAny([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.IsType(t, []int{}, v)
	require.ElementsMatch(t, []int{1, 2, 3, 4, 5}, v)

	arr := [4]string{"a", "b", "c", "d"}
	v, err = g.ShuffleAny(arr)
	require.NoError(t, err)
	shuffled, ok := v.([4]string)
	require.True(t, ok)
	require.ElementsMatch(t, arr[:], shuffled[:])
	require.Equal(t, [4]string{"a", "b", "c", "d"}, arr)

	v, err = g.ShuffleAny("abcdef")
	require.NoError(t, err)
	require.ElementsMatch(t, []rune("abcdef"), []rune(v.(string)))

	v, err = g.ShuffleAny([]int{})
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = g.ShuffleAny("")
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestShuffleAnyMatchesShuffle(t *testing.T) {
	a := newGenerator(t, 11)
	b := newGenerator(t, 11)

	v, err := a.ShuffleAny([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, xor128.Shuffle(b, []int{1, 2, 3, 4, 5, 6}), v)
}

func TestCollectionRejectsInvalidTypes(t *testing.T) {
	invalid := []any{42, 3.5, true, map[string]int{"a": 1}, struct{}{}, nil}

	for _, x := range invalid {
		g := newGenerator(t, 1, 2, 3, 4)
		before := g.State()

		_, err := g.PickAny(x)
		require.ErrorIs(t, err, xor128.ErrInvalidArgument, "PickAny(%#v)", x)
		_, err = g.ShuffleAny(x)
		require.ErrorIs(t, err, xor128.ErrInvalidArgument, "ShuffleAny(%#v)", x)

		require.Equal(t, before, g.State())
	}
}
