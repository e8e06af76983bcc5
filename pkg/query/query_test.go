package query_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/pkg/query"
)

// fakeField is an in-memory query.FieldReader fixture.
type fakeField struct {
	terms map[string][]uint32
}

func (f fakeField) Postings(term []byte) ([]uint32, bool) {
	docs, ok := f.terms[string(term)]
	return docs, ok
}

func (f fakeField) SortedTerms() [][]byte {
	out := make([][]byte, 0, len(f.terms))
	for t := range f.terms {
		out = append(out, []byte(t))
	}
	sort.Slice(out, func(i, j int) bool { return string(out[i]) < string(out[j]) })
	return out
}

// fakeSub is an in-memory query.SubReader fixture.
type fakeSub struct {
	numDocs int
	fields  map[string]fakeField
}

func (s fakeSub) NumDocs() int { return s.numDocs }
func (s fakeSub) Field(name string) (query.FieldReader, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// fakeReader is an in-memory query.Reader fixture over one or more
// segments, modeling the simple_sequential fixture: field "name" =
// A..Z for the first 26 docs and a, b, c, ... after that, field "same" =
// "xyz" for every doc.
type fakeReader struct {
	subs []query.SubReader
}

func (r fakeReader) SubReaders() []query.SubReader { return r.subs }

func newSequentialFixture(n int) fakeReader {
	nameTerms := map[string][]uint32{}
	sameTerms := map[string][]uint32{"xyz": {}}
	for i := 0; i < n; i++ {
		letter := string(rune('A' + i))
		if i >= 26 {
			letter = string(rune('a' + i - 26))
		}
		nameTerms[letter] = append(nameTerms[letter], uint32(i))
		sameTerms["xyz"] = append(sameTerms["xyz"], uint32(i))
	}
	sub := fakeSub{
		numDocs: n,
		fields: map[string]fakeField{
			"name": {terms: nameTerms},
			"same": {terms: sameTerms},
		},
	}
	return fakeReader{subs: []query.SubReader{sub}}
}

func docValues(it query.DocIterator) []uint32 {
	var out []uint32
	for it.Next() {
		out = append(out, it.Value())
	}
	return out
}

func TestTermFilterMatchesExpectedDocs(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewTermFilter("name", []byte("A"))
	pq, err := f.Prepare(r, nil)
	require.NoError(t, err)

	it, err := pq.Execute(r.subs[0])
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, docValues(it))
}

func TestTermFilterAbsentFieldIsEmpty(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewTermFilter("missing", []byte("A"))
	pq, err := f.Prepare(r, nil)
	require.NoError(t, err)

	it, err := pq.Execute(r.subs[0])
	require.NoError(t, err)
	assert.Empty(t, docValues(it))
}

func TestTermFilterEqualIgnoresBoost(t *testing.T) {
	a := query.NewTermFilter("name", []byte("A"))
	b := query.NewTermFilter("name", []byte("A")).SetBoost(5)
	assert.True(t, a.Equal(b))
}

func TestRangeFilterInclusiveBounds(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewRangeFilter("name", []byte("A"), []byte("C"), true, true)
	pq, err := f.Prepare(r, nil)
	require.NoError(t, err)

	it, err := pq.Execute(r.subs[0])
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, docValues(it))
}

func TestRangeFilterExclusiveHi(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewRangeFilter("name", []byte("A"), []byte("C"), true, false)
	pq, err := f.Prepare(r, nil)
	require.NoError(t, err)

	it, err := pq.Execute(r.subs[0])
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, docValues(it))
}

func TestAndFilterIntersects(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewAnd(
		query.NewTermFilter("same", []byte("xyz")),
		query.NewTermFilter("name", []byte("A")),
	)
	pq, err := f.Prepare(r, nil)
	require.NoError(t, err)

	it, err := pq.Execute(r.subs[0])
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, docValues(it))
}

func TestOrFilterUnionsAndDedups(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewOr(
		query.NewTermFilter("name", []byte("A")),
		query.NewTermFilter("name", []byte("B")),
	)
	pq, err := f.Prepare(r, nil)
	require.NoError(t, err)

	it, err := pq.Execute(r.subs[0])
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, docValues(it))
}

func TestNotFilterComplementsWithinNumDocs(t *testing.T) {
	r := newSequentialFixture(4)
	f := query.NewNot(query.NewTermFilter("name", []byte("A")))
	pq, err := f.Prepare(r, nil)
	require.NoError(t, err)

	it, err := pq.Execute(r.subs[0])
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, docValues(it))
}

func TestBoostScorerOrdersByBoost(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewOr(
		query.NewTermFilter("name", []byte("A")).SetBoost(1),
		query.NewTermFilter("name", []byte("B")).SetBoost(9),
	)
	order := &query.Order{Scorers: []query.Scorer{query.BoostScorer{}}}

	hits, err := query.Run(context.Background(), mustPrepare(t, f, r, order), order, r)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	// doc 1 (name=B, boost 9) ranks ahead of doc 0 (name=A, boost 1).
	assert.Equal(t, uint32(1), hits[0].DocID)
	assert.Equal(t, uint32(0), hits[1].DocID)
}

func TestRunUnorderedPreservesSegmentOrder(t *testing.T) {
	r := newSequentialFixture(32)
	f := query.NewTermFilter("same", []byte("xyz"))
	pq := mustPrepare(t, f, r, nil)

	hits, err := query.Run(context.Background(), pq, nil, r)
	require.NoError(t, err)
	assert.Len(t, hits, 32)
	assert.Equal(t, uint32(0), hits[0].DocID)
}

func mustPrepare(t *testing.T, f query.Filter, r query.Reader, order *query.Order) query.PreparedQuery {
	t.Helper()
	pq, err := f.Prepare(r, order)
	require.NoError(t, err)
	return pq
}
