package options_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/pkg/options"
)

func TestNewDefaultOptions(t *testing.T) {
	o := options.NewDefaultOptions()
	assert.Equal(t, options.DefaultDataDir, o.DataDir)
	assert.Equal(t, options.DefaultCodecName, o.CodecName)
	assert.Equal(t, options.DefaultMaxDocsPerSegment, o.SegmentOptions.MaxDocs)
}

func TestNewDefaultOptionsAreIndependent(t *testing.T) {
	a := options.NewDefaultOptions()
	b := options.NewDefaultOptions()
	a.SegmentOptions.MaxDocs = 1
	assert.NotEqual(t, a.SegmentOptions.MaxDocs, b.SegmentOptions.MaxDocs)
}

func TestWithMaxDocsPerSegmentClamps(t *testing.T) {
	o := options.Apply(options.WithMaxDocsPerSegment(0))
	assert.Equal(t, options.MinMaxDocsPerSegment, o.SegmentOptions.MaxDocs)

	o = options.Apply(options.WithMaxDocsPerSegment(options.MaxMaxDocsPerSegment * 2))
	assert.Equal(t, options.MaxMaxDocsPerSegment, o.SegmentOptions.MaxDocs)
}

func TestWithDataDirIgnoresBlank(t *testing.T) {
	o := options.Apply(options.WithDataDir("  "))
	assert.Equal(t, options.DefaultDataDir, o.DataDir)
}

func TestWithThreadPool(t *testing.T) {
	o := options.Apply(options.WithThreadPool(16, 2))
	assert.Equal(t, 16, o.PoolOptions.MaxThreads)
	assert.Equal(t, 2, o.PoolOptions.MaxIdle)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "dataDir: /data/idx\ncompactInterval: 30m\nsegment:\n  maxDocsPerSegment: 100\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	o, err := options.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/idx", o.DataDir)
	assert.Equal(t, 30*time.Minute, o.CompactInterval)
	assert.Equal(t, uint64(100), o.SegmentOptions.MaxDocs)
	assert.Equal(t, options.DefaultCodecName, o.CodecName)
	require.NotNil(t, o.PoolOptions)
	assert.Equal(t, options.DefaultMaxThreads, o.PoolOptions.MaxThreads)
}

func TestLoadFileMissingReturnsError(t *testing.T) {
	_, err := options.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
