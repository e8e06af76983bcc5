package query

// OrFilter matches the union of its clauses' matched documents.
type OrFilter struct {
	boostable
	clauses []Filter
}

// NewOr returns an OrFilter over clauses with no boost.
func NewOr(clauses ...Filter) *OrFilter { return &OrFilter{clauses: clauses} }

// SetBoost sets the filter's boost, returning f for chaining.
func (f *OrFilter) SetBoost(b float64) Filter { f.setBoost(b); return f }

// Clauses returns f's child filters.
func (f *OrFilter) Clauses() []Filter { return f.clauses }

// Equal reports whether other is an OrFilter with pairwise-equal
// clauses in the same order.
func (f *OrFilter) Equal(other Filter) bool {
	o, ok := other.(*OrFilter)
	return ok && equalClauses(f.clauses, o.clauses)
}

// Prepare compiles every clause against reader/order.
func (f *OrFilter) Prepare(reader Reader, order *Order) (PreparedQuery, error) {
	children, err := prepareAll(f.clauses, reader, order)
	if err != nil {
		return nil, err
	}
	return &preparedBoolQuery{op: boolOr, children: children, order: order, attrs: Attributes{Boost: f.boost}}, nil
}

// AndFilter matches the intersection of its clauses' matched documents.
type AndFilter struct {
	boostable
	clauses []Filter
}

// NewAnd returns an AndFilter over clauses with no boost.
func NewAnd(clauses ...Filter) *AndFilter { return &AndFilter{clauses: clauses} }

// SetBoost sets the filter's boost, returning f for chaining.
func (f *AndFilter) SetBoost(b float64) Filter { f.setBoost(b); return f }

// Clauses returns f's child filters.
func (f *AndFilter) Clauses() []Filter { return f.clauses }

// Equal reports whether other is an AndFilter with pairwise-equal
// clauses in the same order.
func (f *AndFilter) Equal(other Filter) bool {
	o, ok := other.(*AndFilter)
	return ok && equalClauses(f.clauses, o.clauses)
}

// Prepare compiles every clause against reader/order.
func (f *AndFilter) Prepare(reader Reader, order *Order) (PreparedQuery, error) {
	children, err := prepareAll(f.clauses, reader, order)
	if err != nil {
		return nil, err
	}
	return &preparedBoolQuery{op: boolAnd, children: children, order: order, attrs: Attributes{Boost: f.boost}}, nil
}

// NotFilter matches every document in the sub-reader's universe that
// inner does not match.
type NotFilter struct {
	boostable
	inner Filter
}

// NewNot returns a NotFilter over inner with no boost.
func NewNot(inner Filter) *NotFilter { return &NotFilter{inner: inner} }

// SetBoost sets the filter's boost, returning f for chaining.
func (f *NotFilter) SetBoost(b float64) Filter { f.setBoost(b); return f }

// Inner returns f's negated child filter.
func (f *NotFilter) Inner() Filter { return f.inner }

// Equal reports whether other is a NotFilter over an equal inner
// filter.
func (f *NotFilter) Equal(other Filter) bool {
	o, ok := other.(*NotFilter)
	return ok && f.inner.Equal(o.inner)
}

// Prepare compiles inner against reader/order.
func (f *NotFilter) Prepare(reader Reader, order *Order) (PreparedQuery, error) {
	child, err := f.inner.Prepare(reader, order)
	if err != nil {
		return nil, err
	}
	return &preparedNotQuery{inner: child, order: order, attrs: Attributes{Boost: f.boost}}, nil
}

func prepareAll(clauses []Filter, reader Reader, order *Order) ([]PreparedQuery, error) {
	out := make([]PreparedQuery, len(clauses))
	for i, c := range clauses {
		pq, err := c.Prepare(reader, order)
		if err != nil {
			return nil, err
		}
		out[i] = pq
	}
	return out, nil
}

func equalClauses(a, b []Filter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

type boolOp int

const (
	boolOr boolOp = iota
	boolAnd
)

type preparedBoolQuery struct {
	op       boolOp
	children []PreparedQuery
	order    *Order
	attrs    Attributes
}

func (q *preparedBoolQuery) Attributes() Attributes { return q.attrs }

func (q *preparedBoolQuery) Execute(sub SubReader) (DocIterator, error) {
	if len(q.children) == 0 {
		return EmptyIterator(), nil
	}
	iters := make([]DocIterator, len(q.children))
	for i, c := range q.children {
		it, err := c.Execute(sub)
		if err != nil {
			return nil, err
		}
		iters[i] = it
	}
	var combined DocIterator
	if q.op == boolOr {
		combined = newUnionIterator(iters)
	} else {
		combined = newIntersectIterator(iters)
	}
	return withScoring(combined, sub, q.order, q.attrs.Boost), nil
}

type preparedNotQuery struct {
	inner PreparedQuery
	order *Order
	attrs Attributes
}

func (q *preparedNotQuery) Attributes() Attributes { return q.attrs }

func (q *preparedNotQuery) Execute(sub SubReader) (DocIterator, error) {
	it, err := q.inner.Execute(sub)
	if err != nil {
		return nil, err
	}
	combined := newNotIterator(it, sub.NumDocs())
	return withScoring(combined, sub, q.order, q.attrs.Boost), nil
}
