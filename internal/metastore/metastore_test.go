package metastore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ervinbosenbacher/ironsearch/internal/codec/plainfmt"
	"github.com/ervinbosenbacher/ironsearch/internal/metastore"
	"github.com/ervinbosenbacher/ironsearch/internal/segment"
	"github.com/ervinbosenbacher/ironsearch/pkg/codec"
)

func TestLoadLatestOnEmptyStore(t *testing.T) {
	store, err := metastore.Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	defer store.Close()

	_, _, _, ok, err := store.LoadLatest()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := metastore.Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	defer store.Close()

	c, ok := codec.Lookup("plain10")
	require.True(t, ok)

	m := segment.NewMetaFull("seg_1", codecIdentity{c}, 3, []string{"seg_1.data"})
	entries := []segment.Entry{{Meta: m, Filename: "seg_1.data"}}

	require.NoError(t, store.SaveGeneration(1, 1, entries))

	gen, segCounter, got, ok, err := store.LoadLatest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), gen)
	assert.Equal(t, uint64(1), segCounter)
	require.Len(t, got, 1)
	assert.Equal(t, "seg_1", got[0].Meta.Name)
	assert.Equal(t, 3, got[0].Meta.DocsCount)
	assert.Equal(t, "plain10", got[0].Meta.Codec.Name())
}

func TestLoadLatestReturnsMostRecentGeneration(t *testing.T) {
	store, err := metastore.Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	defer store.Close()

	c, _ := codec.Lookup("plain10")
	m1 := segment.NewMetaFull("seg_1", codecIdentity{c}, 1, nil)
	require.NoError(t, store.SaveGeneration(1, 1, []segment.Entry{{Meta: m1}}))

	m2 := segment.NewMetaFull("seg_2", codecIdentity{c}, 2, nil)
	require.NoError(t, store.SaveGeneration(2, 2, []segment.Entry{{Meta: m1}, {Meta: m2}}))

	gen, _, got, ok, err := store.LoadLatest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), gen)
	assert.Len(t, got, 2)
}

type codecIdentity struct{ codec.Codec }
