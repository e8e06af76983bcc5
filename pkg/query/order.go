package query

import "encoding/binary"

// NoBoost is the default boost value: a term filter with no boost set
// yields a zero score under the boost scorer.
const NoBoost float64 = 0

// SegmentScorer is a per-segment scoring object bound to one sub-reader
// and one prepared query's attributes.
type SegmentScorer interface {
	// Score writes this scorer's contribution for doc into out, which
	// is exactly Scorer.Size() bytes.
	Score(doc uint32, out []byte)
}

// Scorer is a per-query scorer descriptor: its score-slot byte size,
// how to compare two slots, and how to bind it to one segment.
type Scorer interface {
	// Size is the byte size of this scorer's score slot.
	Size() int

	// Less reports whether score slot a sorts before score slot b.
	Less(a, b []byte) bool

	// PerSegment binds this scorer to sub, given the boost carried by
	// the prepared query that owns this order.
	PerSegment(sub SubReader, boost float64) SegmentScorer
}

// Order is a composition of scorer descriptors forming a prepared sort
// order. A nil or empty Order disables scoring ("unordered").
type Order struct {
	Scorers []Scorer
}

// Unordered reports whether o carries no scorers.
func (o *Order) Unordered() bool { return o == nil || len(o.Scorers) == 0 }

// SlotSize returns the total byte size a caller must allocate to
// materialize a score under this order.
func (o *Order) SlotSize() int {
	if o == nil {
		return 0
	}
	n := 0
	for _, s := range o.Scorers {
		n += s.Size()
	}
	return n
}

// perSegment binds every scorer in o to sub with the given boost,
// returning a function that fills a caller-owned buffer for one
// document.
func (o *Order) perSegment(sub SubReader, boost float64) func(doc uint32, out []byte) {
	if o.Unordered() {
		return nil
	}
	bound := make([]SegmentScorer, len(o.Scorers))
	for i, s := range o.Scorers {
		bound[i] = s.PerSegment(sub, boost)
	}
	sizes := make([]int, len(o.Scorers))
	for i, s := range o.Scorers {
		sizes[i] = s.Size()
	}
	return func(doc uint32, out []byte) {
		off := 0
		for i, sc := range bound {
			sc.Score(doc, out[off:off+sizes[i]])
			off += sizes[i]
		}
	}
}

// BoostScorer is a scorer whose score is simply the prepared query's
// boost, encoded as a float64. A term filter with no boost therefore
// scores NoBoost (zero); with boost b it scores b, matching the
// "boost-only order" testable property.
type BoostScorer struct{}

// Size is 8 bytes (a float64).
func (BoostScorer) Size() int { return 8 }

// Less compares two float64-encoded score slots.
func (BoostScorer) Less(a, b []byte) bool {
	return decodeScore(a) < decodeScore(b)
}

// PerSegment returns a SegmentScorer that always writes boost, since
// the boost scorer ignores per-document term statistics entirely.
func (BoostScorer) PerSegment(sub SubReader, boost float64) SegmentScorer {
	return boostSegmentScorer{boost: boost}
}

type boostSegmentScorer struct{ boost float64 }

func (s boostSegmentScorer) Score(doc uint32, out []byte) {
	encodeScore(out, s.boost)
}

func encodeScore(out []byte, v float64) {
	binary.LittleEndian.PutUint64(out, float64bits(v))
}

func decodeScore(b []byte) float64 {
	return float64frombits(binary.LittleEndian.Uint64(b))
}
