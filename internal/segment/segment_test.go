package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ervinbosenbacher/ironsearch/internal/segment"
)

type fakeCodec struct{ name string }

func (f fakeCodec) Name() string { return f.name }

func TestNextGenerationMonotonic(t *testing.T) {
	m := segment.NewIndexMeta()
	for k := 1; k <= 5; k++ {
		next := m.NextGeneration()
		assert.EqualValues(t, k, next)
		m.Commit(nil)
	}
	gen, ok := m.Gen()
	assert.True(t, ok)
	assert.EqualValues(t, 5, gen)
}

func TestCloneIsIndependent(t *testing.T) {
	m := segment.NewIndexMeta()
	m.Commit([]segment.Entry{{Meta: segment.NewMeta("s1", fakeCodec{"plain"})}})
	m.NextSegmentName()

	clone := m.Clone()
	clone.NextSegmentName()
	clone.NextSegmentName()

	assert.NotEqual(t, m.SegCounter(), clone.SegCounter())
	gen, _ := clone.Gen()
	origGen, _ := m.Gen()
	assert.Equal(t, origGen, gen)
}

func TestTakeResetsSource(t *testing.T) {
	m := segment.NewMetaFull("s1", fakeCodec{"plain"}, 10, []string{"a", "b"})
	moved := m.Take()

	assert.Equal(t, 10, moved.DocsCount)
	assert.Equal(t, 0, m.DocsCount)
	assert.Nil(t, m.Codec)
	assert.Equal(t, "s1", m.Name) // name is preserved on the moved-from value
}
