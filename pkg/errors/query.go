package errors

import "fmt"

// QueryError is a specialized error type for filter parsing and
// order/scorer conversion failures. It carries the AST/filter node name
// and, for parse errors, the byte offset at which parsing failed, so
// that the rendered message keeps the stable prefixes callers assert on.
type QueryError struct {
	*baseError
	node   string
	offset int
	kind   queryErrorKind
}

type queryErrorKind int

const (
	queryErrorParse queryErrorKind = iota
	queryErrorConversion
)

// NewParseError creates a QueryError whose Error() renders as
// "@(offset): parse error: msg".
func NewParseError(offset int, msg string) *QueryError {
	qe := &QueryError{
		baseError: NewBaseError(nil, ErrorCodeQueryParse, msg),
		offset:    offset,
		kind:      queryErrorParse,
	}
	qe.baseError.WithMessage(fmt.Sprintf("@(%d): parse error: %s", offset, msg))
	return qe
}

// NewConversionError creates a QueryError whose Error() renders as
// "order conversion error, node: <node>: msg".
func NewConversionError(node, msg string) *QueryError {
	qe := &QueryError{
		baseError: NewBaseError(nil, ErrorCodeQueryConversion, msg),
		node:      node,
		kind:      queryErrorConversion,
	}
	qe.baseError.WithMessage(fmt.Sprintf("order conversion error, node: %s: %s", node, msg))
	return qe
}

// WithDetail adds contextual information while preserving the QueryError type.
func (qe *QueryError) WithDetail(key string, value any) *QueryError {
	qe.baseError.WithDetail(key, value)
	return qe
}

// Node returns the offending AST/filter node name, if any.
func (qe *QueryError) Node() string { return qe.node }

// Offset returns the byte offset of a parse failure. Meaningless for
// conversion errors.
func (qe *QueryError) Offset() int { return qe.offset }
