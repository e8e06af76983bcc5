// Package codec defines the pluggable format contract that serializes
// and deserializes segment artefacts: field data, postings, term
// dictionaries, and stored fields. The core references a codec only by
// handle and version tag; concrete formats are registered singletons
// (see Register/Lookup) rather than parameters threaded everywhere.
package codec

import (
	"fmt"
	"sync"

	"github.com/ervinbosenbacher/ironsearch/pkg/directory"
)

// FieldOptions records a field's per-segment indexing options: whether
// it was tokenized into postings and whether its raw value was kept in
// the stored-field table.
type FieldOptions struct {
	Tokenized bool
	Stored    bool
}

// FieldData is a single field's inverted index for one segment: a term
// dictionary mapping term bytes to a sorted list of document ids.
type FieldData struct {
	Name    string
	Options FieldOptions
	Terms   map[string][]uint32
}

// StoredDoc holds the stored (not just indexed) field values for one
// document, keyed by field name.
type StoredDoc struct {
	DocID  uint32
	Fields map[string][]byte
}

// SegmentData is the complete decoded contents of one segment: its
// per-field inverted indices and its stored-field table.
type SegmentData struct {
	Fields []FieldData
	Stored []StoredDoc
}

// Codec serializes and deserializes segment artefacts under a given
// segment name into a Directory, and reports the artefact filenames it
// produced so they can be recorded on the segment descriptor.
type Codec interface {
	// Name identifies the format, used as its version tag.
	Name() string

	// WriteSegment serializes data under name into dir, returning the
	// artefact filenames written.
	WriteSegment(dir directory.Directory, name string, data *SegmentData) ([]string, error)

	// ReadSegment deserializes the artefacts listed in files (as
	// produced by WriteSegment) for segment name from dir.
	ReadSegment(dir directory.Directory, name string, files []string) (*SegmentData, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Codec{}
)

// Register installs c as the process-wide singleton for its Name(),
// matching the "codec handles are often long-lived singletons acquired
// through a registry" guidance for ownership of format implementations.
func Register(c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.Name()] = c
}

// Lookup returns the registered codec for name, if any.
func Lookup(name string) (Codec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// MustLookup is Lookup but panics if name isn't registered; intended
// for call sites where the codec name comes from a segment descriptor
// written by this same process family and is expected to always exist.
func MustLookup(name string) Codec {
	c, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("codec: %q is not registered", name))
	}
	return c
}
