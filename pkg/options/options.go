// Package options provides data structures and functions for configuring
// an ironsearch index: where its segment files and generation manifest
// live, how big a segment may grow before a writer rotates to a new
// one, and how the thread pool backing segment construction and query
// fan-out is sized.
package options

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// segmentOptions configures segment rotation behavior for a writer.
type segmentOptions struct {
	// MaxDocs is the maximum number of documents Commit puts into one
	// segment; a larger pending buffer is split across several segments.
	//
	//  - Default: 65536
	//  - Minimum: 1
	//  - Maximum: 8388608
	MaxDocs uint64 `yaml:"maxDocsPerSegment" json:"maxDocsPerSegment"`
}

// poolOptions configures the thread pool shared by segment construction
// and query fan-out.
type poolOptions struct {
	// MaxThreads bounds how many worker goroutines the pool may spawn.
	MaxThreads int `yaml:"maxThreads" json:"maxThreads"`

	// MaxIdle bounds how many workers may sit idle before the pool
	// shrinks.
	MaxIdle int `yaml:"maxIdle" json:"maxIdle"`
}

// Options configures an index's on-disk layout, segment rotation, and
// concurrency bounds.
type Options struct {
	// DataDir is the base path under which segment files and the
	// generation manifest are stored.
	//
	// Default: "/var/lib/ironsearch"
	DataDir string `yaml:"dataDir" json:"dataDir"`

	// CodecName selects the registered segment format a writer
	// serializes new segments with, and a reader expects to find them
	// in.
	//
	// Default: "plain10"
	CodecName string `yaml:"codec" json:"codec"`

	// ManifestFile is the bbolt database file name, relative to
	// DataDir, recording the durable generation pointer.
	//
	// Default: "manifest.db"
	ManifestFile string `yaml:"manifestFile" json:"manifestFile"`

	// CompactInterval is an interval for merging small segments, with
	// zero meaning no compaction. The writer in this module runs no
	// background compaction and does not read this value.
	//
	// Default: 5h
	CompactInterval time.Duration `yaml:"compactInterval" json:"compactInterval"`

	// SegmentOptions configures segment rotation.
	SegmentOptions *segmentOptions `yaml:"segment" json:"segment"`

	// PoolOptions configures the shared thread pool.
	PoolOptions *poolOptions `yaml:"pool" json:"pool"`
}

// OptionFunc modifies an Options value under construction.
type OptionFunc func(*Options)

// WithDefaultOptions resets o to the package baseline.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the base path for segment files and the manifest.
// A blank (after trimming) directory is ignored.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCodecName selects the segment format by its registered name.
func WithCodecName(name string) OptionFunc {
	return func(o *Options) {
		name = strings.TrimSpace(name)
		if name != "" {
			o.CodecName = name
		}
	}
}

// WithCompactInterval sets CompactInterval. Negative intervals are
// ignored.
func WithCompactInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval >= 0 {
			o.CompactInterval = interval
		}
	}
}

// WithMaxDocsPerSegment sets the document count at which a writer
// rotates to a new segment, clamped to [MinMaxDocsPerSegment,
// MaxMaxDocsPerSegment].
func WithMaxDocsPerSegment(n uint64) OptionFunc {
	return func(o *Options) {
		if n < MinMaxDocsPerSegment {
			n = MinMaxDocsPerSegment
		}
		if n > MaxMaxDocsPerSegment {
			n = MaxMaxDocsPerSegment
		}
		o.SegmentOptions.MaxDocs = n
	}
}

// WithThreadPool sets the shared thread pool's bounds.
func WithThreadPool(maxThreads, maxIdle int) OptionFunc {
	return func(o *Options) {
		if maxThreads > 0 {
			o.PoolOptions.MaxThreads = maxThreads
		}
		if maxIdle >= 0 {
			o.PoolOptions.MaxIdle = maxIdle
		}
	}
}

// Apply builds an Options value from NewDefaultOptions, overridden by
// fns in order.
func Apply(fns ...OptionFunc) Options {
	o := NewDefaultOptions()
	for _, fn := range fns {
		fn(&o)
	}
	return o
}

// LoadFile reads a YAML configuration file at path, overlaying it onto
// the package defaults: fields absent from the file keep their default
// value.
func LoadFile(path string) (Options, error) {
	o := NewDefaultOptions()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return Options{}, err
	}
	if o.SegmentOptions == nil {
		o.SegmentOptions = &segmentOptions{MaxDocs: DefaultMaxDocsPerSegment}
	}
	if o.PoolOptions == nil {
		o.PoolOptions = &poolOptions{MaxThreads: DefaultMaxThreads, MaxIdle: DefaultMaxIdle}
	}
	return o, nil
}
