// Package token implements the typed token streams that turn numeric,
// boolean, and null field values into the byte-terms used as index keys.
// Numeric terms are not in numeric order: integers are zig-zag encoded,
// and integer and floating-point values carry different tag bytes, so a
// byte-range scan over numeric terms does not select a numeric range.
package token

// Stream is the minimal interface the indexer and query runtime consume:
// reset to a new value, advance to the next precision-stepped term, and
// read the current term's bytes.
type Stream interface {
	// Reset prepares the stream to emit tokens for value. value must be
	// one of the stream's supported Go types.
	Reset(value any) error

	// Next advances to the next token. It returns false once no more
	// tokens remain for the current value.
	Next() bool

	// Term returns the current token's bytes. Valid only after a Next
	// call that returned true.
	Term() []byte
}
