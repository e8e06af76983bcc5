package options

import "time"

const (
	// DefaultDataDir is the base directory under which an index's
	// segment files and generation manifest are stored when no
	// directory is given explicitly.
	DefaultDataDir = "/var/lib/ironsearch"

	// DefaultCodecName is the segment format a writer opens with when
	// none is given explicitly.
	DefaultCodecName = "plain10"

	// DefaultMaxDocsPerSegment bounds how many documents Commit puts
	// into one segment; a larger pending buffer is split across several
	// segments.
	DefaultMaxDocsPerSegment uint64 = 64 * 1024

	// MinMaxDocsPerSegment and MaxMaxDocsPerSegment bound the
	// configurable range accepted by WithMaxDocsPerSegment.
	MinMaxDocsPerSegment uint64 = 1
	MaxMaxDocsPerSegment uint64 = 8 * 1024 * 1024

	// DefaultMaxThreads and DefaultMaxIdle size the thread pool shared
	// by segment construction and query fan-out.
	DefaultMaxThreads = 8
	DefaultMaxIdle    = 4

	// DefaultCompactInterval is the default CompactInterval. The writer
	// in this module runs no background compaction and does not read
	// it.
	DefaultCompactInterval = 5 * time.Hour

	// DefaultManifestFile is the bbolt database file name, relative to
	// DataDir, that durably records the committed generation pointer
	// and segment manifest.
	DefaultManifestFile = "manifest.db"
)

// defaultOptions holds the baseline configuration returned by
// NewDefaultOptions.
var defaultOptions = Options{
	DataDir:         DefaultDataDir,
	CodecName:       DefaultCodecName,
	ManifestFile:    DefaultManifestFile,
	CompactInterval: DefaultCompactInterval,
	SegmentOptions:  &segmentOptions{MaxDocs: DefaultMaxDocsPerSegment},
	PoolOptions:     &poolOptions{MaxThreads: DefaultMaxThreads, MaxIdle: DefaultMaxIdle},
}

// NewDefaultOptions returns a copy of the baseline configuration; the
// nested option structs are cloned so callers never share storage with
// the package-level default.
func NewDefaultOptions() Options {
	out := defaultOptions
	seg := *defaultOptions.SegmentOptions
	pool := *defaultOptions.PoolOptions
	out.SegmentOptions = &seg
	out.PoolOptions = &pool
	return out
}
