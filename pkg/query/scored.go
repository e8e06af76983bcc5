package query

// withScoring wraps it so that, if order carries scorers, Attributes()
// exposes a Score function bound to sub and the prepared query's boost.
// If order is unordered, it returns it unchanged.
func withScoring(it DocIterator, sub SubReader, order *Order, boost float64) DocIterator {
	if order.Unordered() {
		return it
	}
	return &scoredIterator{DocIterator: it, scoreFn: order.perSegment(sub, boost)}
}

type scoredIterator struct {
	DocIterator
	scoreFn func(doc uint32, out []byte)
}

func (s *scoredIterator) Attributes() IterAttributes {
	base := s.DocIterator.Attributes()
	base.Score = func(out []byte) { s.scoreFn(s.DocIterator.Value(), out) }
	return base
}
