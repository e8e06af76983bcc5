package reader_test

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

func buildIndex(t *testing.T) (*memdir.Directory, *metastore.Store) {
	t.Helper()
	dir := memdir.New()
	store, err := metastore.Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	w, err := writer.Open(dir, store, options.Apply(), nil, nil)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, w.Insert(writer.Document{
			{Name: "name", Value: string(rune('A' + i)), Options: codec.FieldOptions{Tokenized: true, Stored: true}},
			{Name: "same", Value: "xyz", Options: codec.FieldOptions{Tokenized: true}},
		}))
	}
	_, err = w.Commit()
	require.NoError(t, err)
	return dir, store
}

func TestOpenEmptyIndex(t *testing.T) {
	dir := memdir.New()
	store, err := metastore.Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	defer store.Close()

	r, err := reader.Open(dir, store, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.NumSegments())
	assert.Equal(t, int64(0), r.Generation())
}

func TestOpenReadsCommittedSegment(t *testing.T) {
	dir, store := buildIndex(t)

	r, err := reader.Open(dir, store, nil)
	require.NoError(t, err)
	require.Equal(t, 1, r.NumSegments())

	seg := r.Segment(0)
	assert.Equal(t, 5, seg.NumDocs())

	fr, ok := seg.Field("same")
	require.True(t, ok)
	docs, ok := fr.Postings([]byte("xyz"))
	require.True(t, ok)
	assert.Len(t, docs, 5)
}

func TestVisitDocumentDeliversStoredFields(t *testing.T) {
	dir, store := buildIndex(t)

	r, err := reader.Open(dir, store, nil)
	require.NoError(t, err)
	seg := r.Segment(0)

	var got string
	ok := seg.VisitDocument(0, func(field reader.FieldMeta, data []byte) bool {
		if field.Name == "name" {
			got = string(data)
		}
		return true
	})
	assert.True(t, ok)
	assert.Equal(t, "A", got)
}

func TestVisitDocumentAbsentDocIsFalse(t *testing.T) {
	dir, store := buildIndex(t)

	r, err := reader.Open(dir, store, nil)
	require.NoError(t, err)
	seg := r.Segment(0)

	ok := seg.VisitDocument(999, func(reader.FieldMeta, []byte) bool { return true })
	assert.False(t, ok)
}
