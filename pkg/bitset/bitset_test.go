package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/pkg/bitset"
)

func TestZeroSize(t *testing.T) {
	b := bitset.New(0)
	assert.Equal(t, 0, b.Count())
	assert.True(t, b.None())
	assert.True(t, b.All())
	assert.False(t, b.Any())
}

func TestClearAfterSet(t *testing.T) {
	b := bitset.New(128)
	b.Set(3)
	b.Set(64)
	b.Clear()
	assert.Equal(t, 0, b.Count())
	assert.True(t, b.None())
	assert.False(t, b.All())
}

func TestSubsetSemantics(t *testing.T) {
	const n = 200
	subset := []int{0, 1, 63, 64, 65, 127, 128, 199}
	b := bitset.New(n)
	for _, i := range subset {
		b.Set(i)
	}
	require.Equal(t, len(subset), b.Count())
	assert.True(t, b.Any())
	assert.False(t, b.None())

	in := make(map[int]bool, len(subset))
	for _, i := range subset {
		in[i] = true
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, in[i], b.Test(i), "index %d", i)
	}
}

func TestAllTrueOnlyWhenFull(t *testing.T) {
	b := bitset.New(10)
	for i := 0; i < 10; i++ {
		b.Set(i)
	}
	assert.True(t, b.All())
	b.Unset(5)
	assert.False(t, b.All())
}

func TestCloneIsIndependent(t *testing.T) {
	b := bitset.New(64)
	b.Set(1)
	c := b.Clone()
	c.Set(2)
	assert.False(t, b.Test(2))
	assert.True(t, c.Test(1))
}

func TestOutOfRangePanics(t *testing.T) {
	b := bitset.New(8)
	assert.Panics(t, func() { b.Set(8) })
	assert.Panics(t, func() { b.Test(-1) })
}
