// Package reader opens a committed index generation and exposes it to
// the query runtime: the segment count, indexing into sub-readers, and
// a stored-field document visitor.
//
// Grounded on spec.md §4.7's reader contract and the teacher's
// internal/storage segment-file lifecycle (open-on-demand, structured
// logging at each transition), adapted from a single active write file
// to a read-only fan-out over an immutable segment set.
package reader

import (
	"sort"

	"go.uber.org/zap"

	"github.com/ervinbosenbacher/ironsearch/internal/metastore"
	"github.com/ervinbosenbacher/ironsearch/internal/segment"
	"github.com/ervinbosenbacher/ironsearch/pkg/codec"
	"github.com/ervinbosenbacher/ironsearch/pkg/directory"
	"github.com/ervinbosenbacher/ironsearch/pkg/errors"
	"github.com/ervinbosenbacher/ironsearch/pkg/query"
)

func segmentCodecUnregisteredErr(name string) error {
	return errors.NewStorageError(nil, errors.ErrorCodeSegmentCorrupted, "segment references unregistered codec").
		WithDetail("codec", name)
}

// FieldMeta is a sub-reader's per-field record: name and the indexing
// options it was written with.
type FieldMeta struct {
	Name    string
	Options codec.FieldOptions
}

// VisitFunc is the stored-field visitor callback. Returning false aborts
// the visit and reports the document as not matching the caller's
// criteria.
type VisitFunc func(field FieldMeta, data []byte) bool

// SubReader is the per-segment face of an IndexReader: term dictionary
// lookups, sorted-term enumeration for range decomposition, and
// stored-field visitation. It implements query.SubReader.
type SubReader struct {
	meta   *segment.Meta
	data   *codec.SegmentData
	fields map[string]codec.FieldData
	stored map[uint32]codec.StoredDoc
}

func newSubReader(meta *segment.Meta, data *codec.SegmentData) *SubReader {
	sr := &SubReader{
		meta:   meta,
		data:   data,
		fields: make(map[string]codec.FieldData, len(data.Fields)),
		stored: make(map[uint32]codec.StoredDoc, len(data.Stored)),
	}
	for _, fd := range data.Fields {
		sr.fields[fd.Name] = fd
	}
	for _, sd := range data.Stored {
		sr.stored[sd.DocID] = sd
	}
	return sr
}

// Name returns the underlying segment's name.
func (s *SubReader) Name() string { return s.meta.Name }

// NumDocs returns the number of live documents in this segment.
func (s *SubReader) NumDocs() int { return s.meta.DocsCount }

// Field returns the field reader for name, or false if the field is
// absent from this segment.
func (s *SubReader) Field(name string) (query.FieldReader, bool) {
	fd, ok := s.fields[name]
	if !ok {
		return nil, false
	}
	return fieldReader{fd}, true
}

// VisitDocument delivers docID's stored fields to fn in unspecified
// field order, aborting early (returning false) the moment fn does.
// Returns false also when docID has no stored fields recorded.
func (s *SubReader) VisitDocument(docID uint32, fn VisitFunc) bool {
	sd, ok := s.stored[docID]
	if !ok {
		return false
	}
	for name, data := range sd.Fields {
		meta := FieldMeta{Name: name}
		if fd, ok := s.fields[name]; ok {
			meta.Options = fd.Options
		}
		if !fn(meta, data) {
			return false
		}
	}
	return true
}

type fieldReader struct{ fd codec.FieldData }

func (f fieldReader) Postings(term []byte) ([]uint32, bool) {
	docs, ok := f.fd.Terms[string(term)]
	if !ok {
		return nil, false
	}
	out := append([]uint32(nil), docs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, true
}

func (f fieldReader) SortedTerms() [][]byte {
	terms := make([][]byte, 0, len(f.fd.Terms))
	for t := range f.fd.Terms {
		terms = append(terms, []byte(t))
	}
	sort.Slice(terms, func(i, j int) bool {
		return string(terms[i]) < string(terms[j])
	})
	return terms
}

// IndexReader opens a committed index generation and exposes a
// sub-reader per segment. It is immutable after construction: once
// Open returns, a reader always sees the snapshot it was opened
// against, even as a concurrent writer commits later generations.
// It implements query.Reader.
type IndexReader struct {
	generation int64
	subs       []*SubReader
	log        *zap.SugaredLogger
}

// Open loads the latest committed generation recorded in store,
// reading every segment's artefacts from dir through its codec.
func Open(dir directory.Directory, store *metastore.Store, log *zap.SugaredLogger) (*IndexReader, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	gen, _, entries, ok, err := store.LoadLatest()
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Infow("opening reader over empty index, no generation committed yet")
		return &IndexReader{generation: 0, log: log}, nil
	}

	subs := make([]*SubReader, 0, len(entries))
	for _, e := range entries {
		files := make([]string, 0, len(e.Meta.Files))
		for f := range e.Meta.Files {
			files = append(files, f)
		}
		c, ok := codec.Lookup(e.Meta.Codec.Name())
		if !ok {
			return nil, segmentCodecUnregisteredErr(e.Meta.Codec.Name())
		}
		data, err := c.ReadSegment(dir, e.Meta.Name, files)
		if err != nil {
			return nil, err
		}
		subs = append(subs, newSubReader(e.Meta, data))
	}

	log.Infow("opened index reader", "generation", gen, "segments", len(subs))
	return &IndexReader{generation: gen, subs: subs, log: log}, nil
}

// Generation returns the committed generation this reader was opened
// against.
func (r *IndexReader) Generation() int64 { return r.generation }

// NumSegments returns the number of sub-readers (one per segment).
func (r *IndexReader) NumSegments() int { return len(r.subs) }

// Segment returns the i'th sub-reader.
func (r *IndexReader) Segment(i int) *SubReader { return r.subs[i] }

// SubReaders implements query.Reader: the generation's ordered set of
// sub-readers.
func (r *IndexReader) SubReaders() []query.SubReader {
	out := make([]query.SubReader, len(r.subs))
	for i, s := range r.subs {
		out[i] = s
	}
	return out
}
