// Package query implements the filter/query runtime: the filter ->
// prepared-query -> per-segment document-iterator pipeline, including
// scoring, ordering, and boost propagation.
package query

// Reader is the whole-index face a filter prepares against: the
// generation's ordered set of sub-readers.
type Reader interface {
	SubReaders() []SubReader
}

// SubReader is the per-segment face of a reader. Queries execute
// per sub-reader.
type SubReader interface {
	// NumDocs returns the number of live documents in this segment.
	NumDocs() int

	// Field returns the field reader for name, or false if the field
	// does not exist in this segment.
	Field(name string) (FieldReader, bool)
}

// FieldReader exposes one field's term dictionary and postings within a
// single segment.
type FieldReader interface {
	// Postings returns the sorted document ids for an exact term match.
	Postings(term []byte) ([]uint32, bool)

	// SortedTerms returns every term in this field, in ascending byte
	// order, for range-query decomposition.
	SortedTerms() [][]byte
}
