package query

import "sort"

// NoMoreDocs is the end-of-stream sentinel value() / seek() return once
// a document iterator is exhausted.
const NoMoreDocs uint32 = ^uint32(0)

// IterAttributes exposes optional per-iterator facets.
type IterAttributes struct {
	// Score, if non-nil, materializes the current document's score into
	// buf, which is exactly the byte size the attached Order requires.
	Score func(buf []byte)

	// Cost, if non-nil, reports an estimated number of matching
	// documents without having to exhaust the iterator.
	Cost func() uint64
}

// DocIterator is a single-pass, seekable cursor over the document ids
// matched by a query in one segment.
type DocIterator interface {
	// Next advances to the next matching document, returning false at
	// end.
	Next() bool

	// Value returns the current document id; valid after a successful
	// Next or Seek.
	Value() uint32

	// Seek advances to the smallest matching document id >= target,
	// returning that id, or NoMoreDocs at end.
	Seek(target uint32) uint32

	// Attributes exposes optional per-iterator facets.
	Attributes() IterAttributes
}

// emptyIterator matches the empty iterator contract used throughout
// §4.6 for absent fields, absent terms, and empty field/term arguments.
type emptyIterator struct{}

func (emptyIterator) Next() bool                 { return false }
func (emptyIterator) Value() uint32              { return NoMoreDocs }
func (emptyIterator) Seek(uint32) uint32         { return NoMoreDocs }
func (emptyIterator) Attributes() IterAttributes { return IterAttributes{Cost: func() uint64 { return 0 }} }

// EmptyIterator returns the shared empty document iterator.
func EmptyIterator() DocIterator { return emptyIterator{} }

// sliceIterator walks a sorted, deduplicated slice of document ids.
type sliceIterator struct {
	docs []uint32
	pos  int // index of the current document; -1 before the first Next/Seek
}

func newSliceIterator(docs []uint32) *sliceIterator {
	return &sliceIterator{docs: docs, pos: -1}
}

func (it *sliceIterator) Next() bool {
	if it.pos+1 >= len(it.docs) {
		it.pos = len(it.docs)
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Value() uint32 {
	if it.pos < 0 || it.pos >= len(it.docs) {
		return NoMoreDocs
	}
	return it.docs[it.pos]
}

func (it *sliceIterator) Seek(target uint32) uint32 {
	if it.pos >= 0 && it.pos < len(it.docs) && it.docs[it.pos] >= target {
		return it.docs[it.pos]
	}
	start := it.pos + 1
	if start < 0 {
		start = 0
	}
	idx := start + sort.Search(len(it.docs)-start, func(i int) bool {
		return it.docs[start+i] >= target
	})
	it.pos = idx
	return it.Value()
}

func (it *sliceIterator) Attributes() IterAttributes {
	return IterAttributes{Cost: func() uint64 { return uint64(len(it.docs)) }}
}

// NewSliceIterator returns a DocIterator walking a sorted, deduplicated
// slice of document ids. Exported for use by filter implementations
// outside this package (e.g. a custom proxy filter).
func NewSliceIterator(docs []uint32) DocIterator { return newSliceIterator(docs) }
