package query

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// LatencyRecorder is the minimal metrics sink RunTimed reports execution
// latency through. internal/metrics.Recorder satisfies this
// structurally; this package never imports it directly, so the query
// runtime stays usable without pulling in the observability stack.
type LatencyRecorder interface {
	RecordQueryLatency(kind string, d time.Duration)
}

// Hit is one matched document surfaced by Run: its owning sub-reader's
// position in the reader's sub-reader slice, its segment-local document
// id, and (if the prepared query is ordered) its encoded score slot.
type Hit struct {
	SegmentIndex int
	DocID        uint32
	Score        []byte
}

// Run fans a prepared query's execution out across every sub-reader in
// reader concurrently, one goroutine per segment via errgroup, and
// merges the per-segment results into a single Hit slice. With a nil or
// unordered prepared query, hits come back grouped by segment index and
// in ascending document-id order within each segment. With an ordered
// query, hits are merged into a single best-first sequence using the
// query's Order; ties keep the lower segment index, then the lower
// document id, so the merge is deterministic.
//
// Grounded on spec.md §4.8's query-execution pipeline ("each sub-reader
// is queried independently, and results are merged") and the teacher's
// use of a shared thread pool for concurrent I/O fan-out, adapted here
// to golang.org/x/sync/errgroup since every sub-reader's work is
// independent. Iteration does not check ctx, so cancelling it does not
// stop a run that has started.
func Run(ctx context.Context, pq PreparedQuery, order *Order, reader Reader) ([]Hit, error) {
	subs := reader.SubReaders()
	perSegment := make([][]Hit, len(subs))

	g, _ := errgroup.WithContext(ctx)
	for i, sub := range subs {
		i, sub := i, sub
		g.Go(func() error {
			it, err := pq.Execute(sub)
			if err != nil {
				return err
			}
			slotSize := order.SlotSize()
			var hits []Hit
			for it.Next() {
				h := Hit{SegmentIndex: i, DocID: it.Value()}
				if slotSize > 0 {
					if scoreFn := it.Attributes().Score; scoreFn != nil {
						buf := make([]byte, slotSize)
						scoreFn(buf)
						h.Score = buf
					}
				}
				hits = append(hits, h)
			}
			perSegment[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Hit
	for _, hits := range perSegment {
		all = append(all, hits...)
	}

	if order.Unordered() {
		return all, nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Score != nil && b.Score != nil {
			if better, ok := orderLess(order, a.Score, b.Score); ok {
				return better
			}
		}
		if a.SegmentIndex != b.SegmentIndex {
			return a.SegmentIndex < b.SegmentIndex
		}
		return a.DocID < b.DocID
	})
	return all, nil
}

// RunTimed is Run, additionally reporting the call's wall-clock duration
// to mx under the given kind label (e.g. the filter's concrete type
// name). mx may be nil to skip recording.
func RunTimed(ctx context.Context, pq PreparedQuery, order *Order, reader Reader, mx LatencyRecorder, kind string) ([]Hit, error) {
	start := time.Now()
	hits, err := Run(ctx, pq, order, reader)
	if mx != nil {
		mx.RecordQueryLatency(kind, time.Since(start))
	}
	return hits, err
}

// orderLess reports whether a should rank ahead of b under order (higher
// score first). ok is false when every scorer compares the two slots
// equal and the caller should fall back to a stable tiebreaker.
func orderLess(order *Order, a, b []byte) (less bool, ok bool) {
	off := 0
	for _, s := range order.Scorers {
		n := s.Size()
		sa, sb := a[off:off+n], b[off:off+n]
		off += n
		if s.Less(sa, sb) {
			return false, true // a's slot is smaller: b ranks ahead
		}
		if s.Less(sb, sa) {
			return true, true // b's slot is smaller: a ranks ahead
		}
	}
	return false, false
}
