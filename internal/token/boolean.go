package token

// booleanTrueTerm is the single fixed token emitted for a boolean field
// value. This matches the documented (if questionable) source behavior
// of mapping both true and false onto the same token rather than
// distinct ones; see the project's decision log for why this was kept
// rather than silently changed.
var booleanTrueTerm = []byte{0x01}

// BooleanTokenStream emits one fixed token regardless of the boolean
// value it is reset to.
type BooleanTokenStream struct {
	emitted bool
}

// Reset accepts a bool value; both true and false are accepted, and
// both currently produce the same token.
func (s *BooleanTokenStream) Reset(value any) error {
	if _, ok := value.(bool); !ok {
		return errUnsupportedType("bool", value)
	}
	s.emitted = false
	return nil
}

// Next yields the single boolean token once per Reset.
func (s *BooleanTokenStream) Next() bool {
	if s.emitted {
		return false
	}
	s.emitted = true
	return true
}

// Term returns the fixed boolean token.
func (s *BooleanTokenStream) Term() []byte { return booleanTrueTerm }
