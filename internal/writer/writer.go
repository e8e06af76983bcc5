// Package writer implements the index writer: accepts documents,
// groups them into segments, and commits segments into the index meta
// under a new generation.
//
// Grounded on the teacher's internal/storage segment-file lifecycle
// (one active buffer rotated into a sealed file past a size threshold,
// structured .Infow logging at each transition) generalized from a
// single append-only log to a set of independently-built inverted-index
// segments, fanned out across the shared thread pool per SPEC_FULL.md's
// concurrency-substrate mandate.
package writer

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/ervinbosenbacher/ironsearch/internal/concurrency"
	"github.com/ervinbosenbacher/ironsearch/internal/metastore"
	"github.com/ervinbosenbacher/ironsearch/internal/metrics"
	"github.com/ervinbosenbacher/ironsearch/internal/segment"
	"github.com/ervinbosenbacher/ironsearch/internal/token"
	"github.com/ervinbosenbacher/ironsearch/pkg/analysis"
	"github.com/ervinbosenbacher/ironsearch/pkg/codec"
	"github.com/ervinbosenbacher/ironsearch/pkg/directory"
	"github.com/ervinbosenbacher/ironsearch/pkg/errors"
	"github.com/ervinbosenbacher/ironsearch/pkg/options"
)

// Field is one named value of a document being inserted: its raw
// value, its indexing options (tokenized into postings, stored
// verbatim, or both), and an optional analyzer override. When Analyzer
// is nil, the writer picks one from Value's Go type: internal
// typed-term streams for numeric/bool/nil values, analysis.Keyword for
// strings.
type Field struct {
	Name     string
	Value    any
	Options  codec.FieldOptions
	Analyzer analysis.TokenStream
}

// Document is an ordered sequence of field instances, ephemeral at
// indexing time: it is decomposed into the codec's on-disk form and
// never persisted as such.
type Document []Field

// segCodec adapts a pkg/codec.Codec to the segment package's minimal
// Codec identity contract.
type segCodec struct{ codec.Codec }

// Writer accepts documents, buffers them, and on Commit flushes the
// buffer into one or more new segments, installing them into a new
// committed generation.
type Writer struct {
	dir   directory.Directory
	store *metastore.Store
	codec codec.Codec
	opts  options.Options
	pool  *concurrency.Pool
	log   *zap.SugaredLogger
	mx    *metrics.Recorder

	pendingMu concurrency.BusyMutex
	tokenSeq  uint64
	pending   []Document

	metaMu sync.RWMutex // guards meta: readers (Generation/NumSegments) vs the writer (Commit)
	meta   *segment.IndexMeta
}

// Open opens (or creates) a writer over dir using store for durable
// generation bookkeeping, seeded with whatever generation store already
// has on disk.
func Open(dir directory.Directory, store *metastore.Store, opts options.Options, log *zap.SugaredLogger, mx *metrics.Recorder) (*Writer, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c, ok := codec.Lookup(opts.CodecName)
	if !ok {
		return nil, errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "codec not registered").
			WithField("codecName").WithProvided(opts.CodecName)
	}

	meta := segment.NewIndexMeta()
	gen, segCounter, entries, found, err := store.LoadLatest()
	if err != nil {
		return nil, err
	}
	if found {
		meta.Commit(entries)
		for g, _ := meta.Gen(); g < gen; g, _ = meta.Gen() {
			meta.Commit(entries)
		}
		for meta.SegCounter() < segCounter {
			meta.NextSegmentName()
		}
		log.Infow("writer resumed existing generation", "generation", gen, "segments", len(entries))
	}

	w := &Writer{
		dir:   dir,
		store: store,
		codec: c,
		opts:  opts,
		pool:  concurrency.NewPool(opts.PoolOptions.MaxThreads, opts.PoolOptions.MaxIdle),
		log:   log,
		mx:    mx,
		meta:  meta,
	}
	return w, nil
}

// Close stops the writer's thread pool, draining any in-flight segment
// builds.
func (w *Writer) Close() {
	w.pool.Stop(false)
}

func (w *Writer) nextToken() uint64 { return atomic.AddUint64(&w.tokenSeq, 1) }

// Insert stages doc for the next Commit. Safe for concurrent use.
func (w *Writer) Insert(doc Document) error {
	if len(doc) == 0 {
		return errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "document has no fields")
	}
	tok := w.nextToken()
	w.pendingMu.Lock(tok)
	w.pending = append(w.pending, doc)
	w.pendingMu.Unlock(tok)
	return nil
}

// PendingCount returns the number of documents staged since the last
// Commit.
func (w *Writer) PendingCount() int {
	tok := w.nextToken()
	w.pendingMu.Lock(tok)
	n := len(w.pending)
	w.pendingMu.Unlock(tok)
	return n
}

// Commit flushes every staged document into one or more new segments
// (split into chunks of at most opts.SegmentOptions.MaxDocs, built
// concurrently on the shared thread pool) and installs them into a new
// index-meta generation. Commit failures leave the prior committed
// generation intact: segments are written before the generation pointer
// advances, and the pointer advance itself is a single bbolt
// transaction. Commit on an empty pending buffer is a no-op that
// returns the current generation unchanged.
func (w *Writer) Commit() (int64, error) {
	tok := w.nextToken()
	w.pendingMu.Lock(tok)
	docs := w.pending
	w.pending = nil
	w.pendingMu.Unlock(tok)

	w.metaMu.Lock()
	defer w.metaMu.Unlock()

	if len(docs) == 0 {
		gen, ok := w.meta.Gen()
		if !ok {
			return 0, nil
		}
		return gen, nil
	}

	chunks := chunk(docs, int(w.opts.SegmentOptions.MaxDocs))

	built := make([]*segment.Meta, len(chunks))
	errs := make([]error, len(chunks))
	var wg sync.WaitGroup
	for i, ch := range chunks {
		i, ch := i, ch
		wg.Add(1)
		task := func() {
			defer wg.Done()
			m, err := w.buildSegment(ch)
			built[i] = m
			errs[i] = err
		}
		if !w.pool.Run(task) {
			task()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}

	entries := append([]segment.Entry(nil), w.meta.Segments()...)
	var docsAdded int
	for _, m := range built {
		entries = append(entries, segment.Entry{Meta: m, Filename: firstFile(m)})
		docsAdded += m.DocsCount
	}

	gen := w.meta.NextGeneration()
	if err := w.store.SaveGeneration(gen, w.meta.SegCounter(), entries); err != nil {
		return 0, err
	}
	w.meta.Commit(entries)

	if w.mx != nil {
		w.mx.SegmentsCommitted.Add(float64(len(built)))
		w.mx.DocsIndexed.Add(float64(docsAdded))
		w.mx.ActiveSegments.Set(float64(len(entries)))
		w.mx.PoolThreads.Set(float64(w.pool.Threads()))
		w.mx.PoolActive.Set(float64(w.pool.TasksActive()))
	}
	w.log.Infow("committed generation", "generation", gen, "new_segments", len(built), "docs", docsAdded)
	return gen, nil
}

// chunk splits docs into groups of at most size documents each, one
// group per segment the commit will build. size <= 0 means "one
// group".
func chunk(docs []Document, size int) [][]Document {
	if size <= 0 || size >= len(docs) {
		return [][]Document{docs}
	}
	var out [][]Document
	for len(docs) > 0 {
		n := size
		if n > len(docs) {
			n = len(docs)
		}
		out = append(out, docs[:n])
		docs = docs[n:]
	}
	return out
}

// buildSegment tokenizes one chunk of documents, assigning document ids
// 0..len(docs)-1 within that segment, mints a content-addressed name for
// it, and serializes it through the writer's codec.
func (w *Writer) buildSegment(docs []Document) (*segment.Meta, error) {
	fieldIdx := make(map[string]*codec.FieldData)
	var fieldOrder []string
	stored := make([]codec.StoredDoc, 0, len(docs))

	for i, doc := range docs {
		docID := uint32(i)
		sd := codec.StoredDoc{DocID: docID, Fields: make(map[string][]byte)}

		for _, f := range doc {
			if f.Options.Tokenized {
				terms, err := tokenize(f)
				if err != nil {
					return nil, errors.NewValidationError(err, errors.ErrorCodeInvalidInput, "failed to tokenize field").
						WithField(f.Name)
				}
				fd, ok := fieldIdx[f.Name]
				if !ok {
					fd = &codec.FieldData{Name: f.Name, Options: f.Options, Terms: make(map[string][]uint32)}
					fieldIdx[f.Name] = fd
					fieldOrder = append(fieldOrder, f.Name)
				}
				for _, term := range terms {
					fd.Terms[string(term)] = appendUniqueDoc(fd.Terms[string(term)], docID)
				}
			}
			if f.Options.Stored {
				sd.Fields[f.Name] = encodeStoredValue(f.Value)
			}
		}
		if len(sd.Fields) > 0 {
			stored = append(stored, sd)
		}
	}

	fields := make([]codec.FieldData, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		fields = append(fields, *fieldIdx[name])
	}
	data := &codec.SegmentData{Fields: fields, Stored: stored}

	name, err := contentAddressedName(w.meta.NextSegmentName(), data)
	if err != nil {
		return nil, err
	}

	files, err := w.codec.WriteSegment(w.dir, name, data)
	if err != nil {
		return nil, err
	}
	m := segment.NewMetaFull(name, segCodec{w.codec}, len(docs), files)
	return m, nil
}

// contentAddressedName derives a segment's on-disk name stem from its
// monotonic sequence number and an xxhash of its gob-encoded descriptor.
// This hash is independent of the codec's own on-disk checksum
// (plainfmt's, say): it only names the segment and is not re-checked
// when the segment is loaded; the codec's checksum protects the bytes it
// writes.
func contentAddressedName(seq uint64, data *codec.SegmentData) (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return "", errors.NewStorageError(err, errors.ErrorCodeIO, "failed to hash segment descriptor")
	}
	return fmt.Sprintf("seg_%020d_%x", seq, xxhash.Sum64(buf.Bytes())), nil
}

// tokenize resolves f's analyzer (explicit, or a type-appropriate
// default) and drains every term it emits for f.Value.
func tokenize(f Field) ([][]byte, error) {
	ts := f.Analyzer
	if ts == nil {
		var err error
		ts, err = defaultAnalyzer(f.Value)
		if err != nil {
			return nil, err
		}
	}
	if err := ts.Reset(f.Value); err != nil {
		return nil, err
	}
	var terms [][]byte
	for ts.Next() {
		terms = append(terms, append([]byte(nil), ts.Term()...))
	}
	return terms, nil
}

// defaultAnalyzer picks a token stream from value's Go type when a
// field doesn't specify an analyzer: numeric kinds get the
// precision-stepped numeric stream, bool the boolean stream, nil the
// null stream, and everything else (strings included) the keyword
// default.
func defaultAnalyzer(value any) (analysis.TokenStream, error) {
	switch value.(type) {
	case nil:
		return &token.NullTokenStream{}, nil
	case bool:
		return &token.BooleanTokenStream{}, nil
	case int32, int64, uint32, uint64, float32, float64:
		return &token.NumericTokenStream{}, nil
	default:
		return &analysis.Keyword{}, nil
	}
}

func appendUniqueDoc(docs []uint32, docID uint32) []uint32 {
	for _, d := range docs {
		if d == docID {
			return docs
		}
	}
	return append(docs, docID)
}

// encodeStoredValue renders a field value as the raw bytes kept in the
// stored-field table; strings are stored verbatim, everything else
// falls back to its default textual representation.
func encodeStoredValue(v any) []byte {
	if s, ok := v.(string); ok {
		return []byte(s)
	}
	return []byte(fmt.Sprint(v))
}

func firstFile(m *segment.Meta) string {
	for f := range m.Files {
		return f
	}
	return ""
}

// Generation returns the writer's current committed generation, or
// false if nothing has been committed yet.
func (w *Writer) Generation() (int64, bool) {
	w.metaMu.RLock()
	defer w.metaMu.RUnlock()
	return w.meta.Gen()
}

// NumSegments returns the number of segments in the writer's current
// committed generation.
func (w *Writer) NumSegments() int {
	w.metaMu.RLock()
	defer w.metaMu.RUnlock()
	return len(w.meta.Segments())
}
