package plainfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/internal/codec/plainfmt"
	"github.com/ervinbosenbacher/ironsearch/internal/dirs/memdir"
	"github.com/ervinbosenbacher/ironsearch/pkg/codec"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := memdir.New()
	var c plainfmt.Codec

	data := &codec.SegmentData{
		Fields: []codec.FieldData{
			{Name: "name", Terms: map[string][]uint32{"A": {1}, "xyz": {1, 2, 3}}},
		},
		Stored: []codec.StoredDoc{
			{DocID: 1, Fields: map[string][]byte{"name": []byte("A")}},
		},
	}

	files, err := c.WriteSegment(dir, "seg_1", data)
	require.NoError(t, err)
	require.Len(t, files, 1)

	got, err := c.ReadSegment(dir, "seg_1", files)
	require.NoError(t, err)
	assert.Equal(t, data.Fields[0].Name, got.Fields[0].Name)
	assert.Equal(t, data.Fields[0].Terms["xyz"], got.Fields[0].Terms["xyz"])
	assert.Equal(t, data.Stored[0].Fields["name"], got.Stored[0].Fields["name"])
}

func TestReadDetectsCorruption(t *testing.T) {
	dir := memdir.New()
	var c plainfmt.Codec

	data := &codec.SegmentData{Fields: []codec.FieldData{{Name: "f", Terms: map[string][]uint32{"a": {1}}}}}
	files, err := c.WriteSegment(dir, "seg_2", data)
	require.NoError(t, err)

	out, err := dir.CreateOutput(files[0])
	require.NoError(t, err)
	_, err = out.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0, 'x'})
	require.NoError(t, err)
	require.NoError(t, out.Close())

	_, err = c.ReadSegment(dir, "seg_2", files)
	assert.Error(t, err)
}

func TestRegistryLookup(t *testing.T) {
	c, ok := codec.Lookup("plain10")
	require.True(t, ok)
	assert.Equal(t, "plain10", c.Name())
}
