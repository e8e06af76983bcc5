package writer_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ervinbosenbacher/ironsearch/internal/codec/plainfmt"
	"github.com/ervinbosenbacher/ironsearch/internal/dirs/memdir"
	"github.com/ervinbosenbacher/ironsearch/internal/metastore"
	"github.com/ervinbosenbacher/ironsearch/internal/reader"
	"github.com/ervinbosenbacher/ironsearch/internal/writer"
	"github.com/ervinbosenbacher/ironsearch/pkg/codec"
	"github.com/ervinbosenbacher/ironsearch/pkg/options"
)

func openStore(t *testing.T) *metastore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.db")
	store, err := metastore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func docOf(name string, seq int) writer.Document {
	return writer.Document{
		{Name: "name", Value: name, Options: codec.FieldOptions{Tokenized: true, Stored: true}},
		{Name: "same", Value: "xyz", Options: codec.FieldOptions{Tokenized: true}},
		{Name: "seq", Value: int64(seq), Options: codec.FieldOptions{Tokenized: true, Stored: true}},
	}
}

func TestInsertAndCommitBuildsSegment(t *testing.T) {
	dir := memdir.New()
	store := openStore(t)
	opts := options.Apply(options.WithMaxDocsPerSegment(64))

	w, err := writer.Open(dir, store, opts, nil, nil)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 32; i++ {
		letter := string(rune('A' + i%26))
		require.NoError(t, w.Insert(docOf(letter, i)))
	}
	assert.Equal(t, 32, w.PendingCount())

	gen, err := w.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	assert.Equal(t, 0, w.PendingCount())
	assert.Equal(t, 1, w.NumSegments())

	r, err := reader.Open(dir, store, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.NumSegments())
	assert.Equal(t, 32, r.Segment(0).NumDocs())

	fr, ok := r.Segment(0).Field("name")
	require.True(t, ok)
	docs, ok := fr.Postings([]byte("A"))
	require.True(t, ok)
	assert.Contains(t, docs, uint32(0))
}

func TestCommitSplitsAcrossSegmentsPastMaxDocs(t *testing.T) {
	dir := memdir.New()
	store := openStore(t)
	opts := options.Apply(options.WithMaxDocsPerSegment(10))

	w, err := writer.Open(dir, store, opts, nil, nil)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 25; i++ {
		require.NoError(t, w.Insert(docOf("x", i)))
	}
	gen, err := w.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	assert.Equal(t, 3, w.NumSegments())
}

func TestCommitWithNoPendingDocsIsNoop(t *testing.T) {
	dir := memdir.New()
	store := openStore(t)
	opts := options.Apply()

	w, err := writer.Open(dir, store, opts, nil, nil)
	require.NoError(t, err)
	defer w.Close()

	gen, err := w.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)
}

func TestWriterResumesFromDurableGeneration(t *testing.T) {
	dir := memdir.New()
	store := openStore(t)
	opts := options.Apply()

	w1, err := writer.Open(dir, store, opts, nil, nil)
	require.NoError(t, err)
	require.NoError(t, w1.Insert(docOf("A", 0)))
	gen1, err := w1.Commit()
	require.NoError(t, err)
	w1.Close()

	w2, err := writer.Open(dir, store, opts, nil, nil)
	require.NoError(t, err)
	defer w2.Close()

	resumedGen, ok := w2.Generation()
	require.True(t, ok)
	assert.Equal(t, gen1, resumedGen)

	require.NoError(t, w2.Insert(docOf("B", 1)))
	gen2, err := w2.Commit()
	require.NoError(t, err)
	assert.Equal(t, gen1+1, gen2)
	assert.Equal(t, 2, w2.NumSegments())
}
