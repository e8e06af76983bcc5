package query

// unionIterator walks the sorted union of its children's matched
// document ids, in ascending order, deduplicating ids matched by more
// than one child. Document-id order is preserved per the Boolean
// combinator ordering contract.
type unionIterator struct {
	children []DocIterator
	alive    []bool
	value    uint32
	started  bool
}

func newUnionIterator(children []DocIterator) DocIterator {
	live := make([]DocIterator, 0, len(children))
	for _, c := range children {
		if c != nil {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return EmptyIterator()
	}
	return &unionIterator{children: live, alive: make([]bool, len(live))}
}

func (u *unionIterator) minAlive() (uint32, bool) {
	min := NoMoreDocs
	found := false
	for i, c := range u.children {
		if !u.alive[i] {
			continue
		}
		v := c.Value()
		if v == NoMoreDocs {
			u.alive[i] = false
			continue
		}
		if !found || v < min {
			min, found = v, true
		}
	}
	return min, found
}

func (u *unionIterator) Next() bool {
	if !u.started {
		u.started = true
		for i, c := range u.children {
			u.alive[i] = c.Next()
		}
	} else {
		for i, c := range u.children {
			if u.alive[i] && c.Value() == u.value {
				u.alive[i] = c.Next()
			}
		}
	}
	v, ok := u.minAlive()
	if !ok {
		return false
	}
	u.value = v
	return true
}

func (u *unionIterator) Value() uint32 { return u.value }

func (u *unionIterator) Seek(target uint32) uint32 {
	if u.started && u.value >= target {
		return u.value
	}
	for i, c := range u.children {
		if !u.alive[i] {
			continue
		}
		if c.Value() != NoMoreDocs && c.Value() >= target {
			continue
		}
		v := c.Seek(target)
		u.alive[i] = v != NoMoreDocs
	}
	u.started = true
	v, ok := u.minAlive()
	if !ok {
		u.value = NoMoreDocs
		return NoMoreDocs
	}
	u.value = v
	return v
}

func (u *unionIterator) Attributes() IterAttributes {
	return IterAttributes{Cost: func() uint64 {
		var total uint64
		for _, c := range u.children {
			if cost := c.Attributes().Cost; cost != nil {
				total += cost()
			}
		}
		return total
	}}
}

// intersectIterator walks the sorted intersection of its children's
// matched document ids via leapfrog seeking: repeatedly advance the
// lagging iterator to the current maximum until all children agree.
type intersectIterator struct {
	children []DocIterator
	value    uint32
	started  bool
	done     bool
}

func newIntersectIterator(children []DocIterator) DocIterator {
	if len(children) == 0 {
		return EmptyIterator()
	}
	for _, c := range children {
		if c == nil {
			return EmptyIterator()
		}
	}
	return &intersectIterator{children: children}
}

func (it *intersectIterator) advance(start uint32) bool {
	target := start
	for {
		agree := true
		for _, c := range it.children {
			v := c.Seek(target)
			if v == NoMoreDocs {
				return false
			}
			if v != target {
				target = v
				agree = false
			}
		}
		if agree {
			it.value = target
			return true
		}
	}
}

func (it *intersectIterator) Next() bool {
	if it.done {
		return false
	}
	next := uint32(0)
	if it.started {
		next = it.value + 1
	}
	it.started = true
	if !it.advance(next) {
		it.done = true
		return false
	}
	return true
}

func (it *intersectIterator) Value() uint32 { return it.value }

func (it *intersectIterator) Seek(target uint32) uint32 {
	if it.done {
		return NoMoreDocs
	}
	if it.started && it.value >= target {
		return it.value
	}
	it.started = true
	if !it.advance(target) {
		it.done = true
		return NoMoreDocs
	}
	return it.value
}

func (it *intersectIterator) Attributes() IterAttributes {
	return IterAttributes{Cost: func() uint64 {
		min := uint64(0)
		for i, c := range it.children {
			cost := c.Attributes().Cost
			if cost == nil {
				continue
			}
			v := cost()
			if i == 0 || v < min {
				min = v
			}
		}
		return min
	}}
}

// notIterator walks every document id in [0, numDocs) that inner does
// not match, in ascending order.
type notIterator struct {
	inner   DocIterator
	numDocs uint32
	value   uint32
	started bool
	done    bool
}

func newNotIterator(inner DocIterator, numDocs int) DocIterator {
	if numDocs <= 0 {
		return EmptyIterator()
	}
	return &notIterator{inner: inner, numDocs: uint32(numDocs)}
}

// matchedByInner advances inner so its value is >= candidate, then returns
// whether candidate itself is matched by inner.
func (it *notIterator) matchedByInner(candidate uint32) bool {
	v := it.inner.Value()
	if v == NoMoreDocs || v < candidate {
		v = it.inner.Seek(candidate)
	}
	return v == candidate
}

func (it *notIterator) Next() bool {
	if it.done {
		return false
	}
	next := uint32(0)
	if it.started {
		next = it.value + 1
	}
	it.started = true
	for next < it.numDocs {
		if !it.matchedByInner(next) {
			it.value = next
			return true
		}
		next++
	}
	it.done = true
	return false
}

func (it *notIterator) Value() uint32 { return it.value }

func (it *notIterator) Seek(target uint32) uint32 {
	if it.done {
		return NoMoreDocs
	}
	if it.started && it.value >= target {
		return it.value
	}
	it.started = true
	for target < it.numDocs {
		if !it.matchedByInner(target) {
			it.value = target
			return target
		}
		target++
	}
	it.done = true
	return NoMoreDocs
}

func (it *notIterator) Attributes() IterAttributes {
	return IterAttributes{Cost: func() uint64 {
		innerCost := uint64(0)
		if cost := it.inner.Attributes().Cost; cost != nil {
			innerCost = cost()
		}
		if uint64(it.numDocs) > innerCost {
			return uint64(it.numDocs) - innerCost
		}
		return 0
	}}
}
