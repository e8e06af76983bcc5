// Package segment implements the segment and index-meta data model: the
// per-segment descriptor, the index-segment entry pair, and the
// index-wide generation-tracking metadata.
package segment

import "sync/atomic"

// Codec is the minimal handle the segment/index-meta layer needs: a
// stable, comparable identity for the format that serialized a segment.
// The concrete serialization contract lives in the codec package; this
// package only ever stores and compares handles.
type Codec interface {
	Name() string
}

// Meta is an immutable-after-commit segment descriptor: name, document
// count, artefact file set, codec handle, and monotonic version.
type Meta struct {
	Name      string
	Codec     Codec
	DocsCount int
	Files     map[string]struct{}
	Version   int64
}

// NewMeta constructs an empty segment descriptor for name under codec.
func NewMeta(name string, codec Codec) *Meta {
	return &Meta{Name: name, Codec: codec, Files: make(map[string]struct{})}
}

// NewMetaFull constructs a fully populated segment descriptor.
func NewMetaFull(name string, codec Codec, docsCount int, files []string) *Meta {
	m := &Meta{Name: name, Codec: codec, DocsCount: docsCount, Files: make(map[string]struct{}, len(files))}
	for _, f := range files {
		m.Files[f] = struct{}{}
	}
	return m
}

// Clone returns an independent copy of m, suitable for the enclosing
// index-meta snapshot semantics where segment descriptors are
// read-shared by value.
func (m *Meta) Clone() *Meta {
	out := &Meta{Name: m.Name, Codec: m.Codec, DocsCount: m.DocsCount, Version: m.Version}
	out.Files = make(map[string]struct{}, len(m.Files))
	for f := range m.Files {
		out.Files[f] = struct{}{}
	}
	return out
}

// Take transfers m's contents into the returned Meta and resets m to a
// valid, empty descriptor (docs_count zeroed, codec cleared), mirroring
// the original's move-assignment semantics.
func (m *Meta) Take() *Meta {
	out := &Meta{Name: m.Name, Codec: m.Codec, DocsCount: m.DocsCount, Files: m.Files, Version: m.Version}
	m.DocsCount = 0
	m.Codec = nil
	m.Files = make(map[string]struct{})
	return out
}

// Entry pairs a segment descriptor with the filename of its serialized
// descriptor. It exists only as part of an IndexMeta.
type Entry struct {
	Meta     *Meta
	Filename string
}

// invalidGen is the sentinel for "no generation observed yet".
const invalidGen int64 = -1

// IndexMeta tracks the generation counter, the committed segment list,
// and the monotonic segment-name counter for one index.
type IndexMeta struct {
	gen        int64
	lastGen    int64
	segments   []Entry
	segCounter atomic.Uint64
	pending    []Entry
}

// NewIndexMeta returns a freshly initialized, ungenerationed index meta.
func NewIndexMeta() *IndexMeta {
	return &IndexMeta{gen: invalidGen, lastGen: invalidGen}
}

// Gen returns the current committed generation, or false if none has
// been committed yet.
func (m *IndexMeta) Gen() (int64, bool) {
	if m.gen == invalidGen {
		return 0, false
	}
	return m.gen, true
}

// LastGen returns the last generation observed on load.
func (m *IndexMeta) LastGen() (int64, bool) {
	if m.lastGen == invalidGen {
		return 0, false
	}
	return m.lastGen, true
}

// NextGeneration returns gen+1 if gen is valid, else 1.
func (m *IndexMeta) NextGeneration() int64 {
	if m.gen == invalidGen {
		return 1
	}
	return m.gen + 1
}

// Commit installs segments as the new committed generation.
func (m *IndexMeta) Commit(segments []Entry) {
	m.lastGen = m.gen
	m.gen = m.NextGeneration()
	m.segments = segments
	m.pending = nil
}

// Segments returns the ordered, committed segment-entry list.
func (m *IndexMeta) Segments() []Entry { return m.segments }

// NextSegmentName mints a fresh, monotonic numeric segment name
// component. Safe for concurrent writers.
func (m *IndexMeta) NextSegmentName() uint64 {
	return m.segCounter.Add(1)
}

// SegCounter returns the current value of the monotonic segment
// counter without advancing it.
func (m *IndexMeta) SegCounter() uint64 {
	return m.segCounter.Load()
}

// Pending returns the staged, not-yet-committed entries.
func (m *IndexMeta) Pending() []Entry { return m.pending }

// Stage appends an entry to the pending-changes region.
func (m *IndexMeta) Stage(e Entry) {
	m.pending = append(m.pending, e)
}

// Clone returns an independent copy of m: the atomic counter is loaded
// by value so the clone never shares state with the source, and the
// pending region is deep-copied.
func (m *IndexMeta) Clone() *IndexMeta {
	out := &IndexMeta{
		gen:     m.gen,
		lastGen: m.lastGen,
	}
	out.segCounter.Store(m.segCounter.Load())
	out.segments = append([]Entry(nil), m.segments...)
	out.pending = append([]Entry(nil), m.pending...)
	return out
}

// Take transfers m's pending region and segment list into the returned
// IndexMeta (move semantics); the atomic counter is still loaded by
// value rather than shared, and m is left as a valid, empty meta.
func (m *IndexMeta) Take() *IndexMeta {
	out := &IndexMeta{
		gen:      m.gen,
		lastGen:  m.lastGen,
		segments: m.segments,
		pending:  m.pending,
	}
	out.segCounter.Store(m.segCounter.Load())

	m.gen = invalidGen
	m.lastGen = invalidGen
	m.segments = nil
	m.pending = nil
	return out
}
