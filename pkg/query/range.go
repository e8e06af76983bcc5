package query

import (
	"bytes"

	"github.com/ervinbosenbacher/ironsearch/pkg/bitset"
)

// RangeBuilder is the customization point for the four endpoint-
// inclusivity combinators and the "similar" operator: given a field
// name and the requested endpoints, it returns a substitute Filter and
// true on success, or false to fall through to the default range
// filter. Implemented by declarative-query-language function/operator
// registries external to this package.
type RangeBuilder func(field string, lo, hi []byte, loIncl, hiIncl bool) (Filter, bool)

// SimilarBuilder is the customization point for a "similar to" filter
// over a single value, analogous to RangeBuilder but for a single
// endpoint rather than a pair.
type SimilarBuilder func(field string, value []byte) (Filter, bool)

// defaultRangeBuilder always declines, so NewRange falls through to a
// plain RangeFilter.
func defaultRangeBuilder(string, []byte, []byte, bool, bool) (Filter, bool) { return nil, false }

func defaultSimilarBuilder(string, []byte) (Filter, bool) { return nil, false }

// NewRange constructs a range filter over field between lo and hi,
// honoring the requested endpoint inclusivity. If builder is non-nil
// and returns true, its substitute filter is returned instead of the
// default RangeFilter; builder may be nil to always use the default.
func NewRange(builder RangeBuilder, field string, lo, hi []byte, loIncl, hiIncl bool) Filter {
	if builder == nil {
		builder = defaultRangeBuilder
	}
	if f, ok := builder(field, lo, hi, loIncl, hiIncl); ok {
		return f
	}
	return &RangeFilter{field: field, lo: lo, hi: hi, loIncl: loIncl, hiIncl: hiIncl}
}

// NewSimilar constructs a "similar to value" filter over field. If
// builder is non-nil and returns true, its substitute filter is
// returned; otherwise the default is an exact TermFilter, since the
// core has no notion of fuzzy similarity without an external analyzer.
func NewSimilar(builder SimilarBuilder, field string, value []byte) Filter {
	if builder == nil {
		builder = defaultSimilarBuilder
	}
	if f, ok := builder(field, value); ok {
		return f
	}
	return NewTermFilter(field, value)
}

// RangeFilter matches every document whose field holds a term within
// [lo, hi] under the requested endpoint inclusivity. A nil lo or hi
// means "unbounded" on that side.
type RangeFilter struct {
	boostable
	field          string
	lo, hi         []byte
	loIncl, hiIncl bool
}

// NewRangeFilter returns a RangeFilter with no boost. A nil lo or hi
// leaves that side unbounded.
func NewRangeFilter(field string, lo, hi []byte, loIncl, hiIncl bool) *RangeFilter {
	return &RangeFilter{field: field, lo: lo, hi: hi, loIncl: loIncl, hiIncl: hiIncl}
}

// SetBoost sets the filter's boost, returning f for chaining.
func (f *RangeFilter) SetBoost(b float64) Filter {
	f.setBoost(b)
	return f
}

// Equal reports whether other is a RangeFilter over the same field,
// endpoints, and inclusivity.
func (f *RangeFilter) Equal(other Filter) bool {
	o, ok := other.(*RangeFilter)
	if !ok {
		return false
	}
	return f.field == o.field &&
		bytes.Equal(f.lo, o.lo) && bytes.Equal(f.hi, o.hi) &&
		f.loIncl == o.loIncl && f.hiIncl == o.hiIncl
}

func (f *RangeFilter) contains(term []byte) bool {
	if f.lo != nil {
		c := bytes.Compare(term, f.lo)
		if c < 0 || (c == 0 && !f.loIncl) {
			return false
		}
	}
	if f.hi != nil {
		c := bytes.Compare(term, f.hi)
		if c > 0 || (c == 0 && !f.hiIncl) {
			return false
		}
	}
	return true
}

// Prepare compiles f against reader and order.
func (f *RangeFilter) Prepare(reader Reader, order *Order) (PreparedQuery, error) {
	return &preparedRangeQuery{filter: f, order: order, attrs: Attributes{Boost: f.boost}}, nil
}

type preparedRangeQuery struct {
	filter *RangeFilter
	order  *Order
	attrs  Attributes
}

func (q *preparedRangeQuery) Attributes() Attributes { return q.attrs }

func (q *preparedRangeQuery) Execute(sub SubReader) (DocIterator, error) {
	f := q.filter
	if f.field == "" {
		return EmptyIterator(), nil
	}
	fr, ok := sub.Field(f.field)
	if !ok {
		return EmptyIterator(), nil
	}

	// A range typically decomposes into many terms (precision-stepped
	// numeric terms especially), each contributing a posting list that
	// can repeat document ids already seen under an earlier term; a
	// bitset dedups in O(1) per hit instead of a growing hash set.
	numDocs := sub.NumDocs()
	seen := bitset.New(numDocs)
	var docs []uint32
	for _, term := range fr.SortedTerms() {
		if !f.contains(term) {
			continue
		}
		matched, ok := fr.Postings(term)
		if !ok {
			continue
		}
		for _, d := range matched {
			if int(d) >= numDocs || seen.Test(int(d)) {
				continue
			}
			seen.Set(int(d))
			docs = append(docs, d)
		}
	}
	sortUint32s(docs)
	return withScoring(newSliceIterator(docs), sub, q.order, q.attrs.Boost), nil
}
