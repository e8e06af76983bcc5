package query

import "sort"

// sortUint32s sorts docs in ascending order in place.
func sortUint32s(docs []uint32) {
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
}
