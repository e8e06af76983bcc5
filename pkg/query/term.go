package query

// TermFilter matches every document that has term in field's postings.
// An empty field name or empty term is documented as a no-op: it
// compiles to the empty iterator rather than raising an error.
type TermFilter struct {
	boostable
	field string
	term  []byte
}

// NewTermFilter returns a TermFilter over field/term with no boost.
func NewTermFilter(field string, term []byte) *TermFilter {
	return &TermFilter{field: field, term: append([]byte(nil), term...)}
}

// Field returns the filter's field name.
func (f *TermFilter) Field() string { return f.field }

// Term returns the filter's term bytes.
func (f *TermFilter) Term() []byte { return f.term }

// SetBoost sets the filter's boost, returning f for chaining.
func (f *TermFilter) SetBoost(b float64) Filter {
	f.setBoost(b)
	return f
}

// Equal reports whether other is a TermFilter with the same field and
// term. Boost is intentionally excluded, matching the testable
// property that two filters with the same field and term compare
// equal regardless of boost.
func (f *TermFilter) Equal(other Filter) bool {
	o, ok := other.(*TermFilter)
	if !ok {
		return false
	}
	return f.field == o.field && string(f.term) == string(o.term)
}

// Prepare compiles f against reader and order. Field/term resolution
// happens lazily per sub-reader in Execute, since the term dictionary
// is segment-local.
func (f *TermFilter) Prepare(reader Reader, order *Order) (PreparedQuery, error) {
	return &preparedTermQuery{
		field: f.field,
		term:  f.term,
		order: order,
		attrs: Attributes{Boost: f.boost},
	}, nil
}

type preparedTermQuery struct {
	field string
	term  []byte
	order *Order
	attrs Attributes
}

func (q *preparedTermQuery) Attributes() Attributes { return q.attrs }

func (q *preparedTermQuery) Execute(sub SubReader) (DocIterator, error) {
	if q.field == "" || len(q.term) == 0 {
		return EmptyIterator(), nil
	}
	fr, ok := sub.Field(q.field)
	if !ok {
		return EmptyIterator(), nil
	}
	docs, ok := fr.Postings(q.term)
	if !ok {
		return EmptyIterator(), nil
	}
	return withScoring(newSliceIterator(docs), sub, q.order, q.attrs.Boost), nil
}
