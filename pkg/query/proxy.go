package query

// Proxy is the user-extension point for filter kinds the core does not
// know about: a caller-supplied Prepare function wrapped in the same
// Filter contract as the built-in kinds, identified for Equal/caching
// purposes by Name. The declarative query language's function registry
// is the expected producer of Proxy filters.
type Proxy struct {
	boostable
	name    string
	prepare func(reader Reader, order *Order, boost float64) (PreparedQuery, error)
}

// NewProxy returns a Proxy filter identified by name, compiling via
// prepare.
func NewProxy(name string, prepare func(reader Reader, order *Order, boost float64) (PreparedQuery, error)) *Proxy {
	return &Proxy{name: name, prepare: prepare}
}

// Name returns the proxy's identity, used by Equal.
func (f *Proxy) Name() string { return f.name }

// SetBoost sets the filter's boost, returning f for chaining.
func (f *Proxy) SetBoost(b float64) Filter { f.setBoost(b); return f }

// Equal reports whether other is a Proxy with the same name. This is a
// shallow identity check; proxies that need parameter-sensitive
// equality should encode their parameters into name.
func (f *Proxy) Equal(other Filter) bool {
	o, ok := other.(*Proxy)
	return ok && f.name == o.name
}

// Prepare delegates to f's prepare function.
func (f *Proxy) Prepare(reader Reader, order *Order) (PreparedQuery, error) {
	return f.prepare(reader, order, f.boost)
}
