package query

// Attributes exposes the facets a prepared query carries independent
// of any particular sub-reader, notably the query-level boost.
type Attributes struct {
	Boost float64
}

// PreparedQuery is a filter compiled against a specific reader and sort
// order, ready for per-segment execution. Preparing the same filter
// twice against the same reader yields equivalent (but independent)
// prepared queries.
type PreparedQuery interface {
	// Execute returns a document iterator over sub. Independently
	// calling Execute twice against the same sub-reader yields
	// independent iterators that agree on their matched document set.
	Execute(sub SubReader) (DocIterator, error)

	// Attributes returns this prepared query's reader-independent
	// facets.
	Attributes() Attributes
}

// Filter is a user-constructed, polymorphic description of "which
// documents match". Every filter carries a boost, defaulting to
// NoBoost.
type Filter interface {
	// Boost returns the filter's current boost.
	Boost() float64

	// SetBoost sets the filter's boost, returning the filter for
	// chaining.
	SetBoost(b float64) Filter

	// Prepare compiles the filter against reader and order into a
	// PreparedQuery. order may be nil to disable scoring.
	Prepare(reader Reader, order *Order) (PreparedQuery, error)

	// Equal reports whether other is a filter of the same kind with
	// equal parameters (used for caching and deduplication).
	Equal(other Filter) bool
}

// boostable is embedded by every concrete filter to supply the shared
// boost field and its accessors.
type boostable struct {
	boost float64
}

func (b *boostable) Boost() float64 { return b.boost }

func (b *boostable) setBoost(v float64) { b.boost = v }
