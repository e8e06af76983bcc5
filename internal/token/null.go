package token

import "fmt"

var nullTerm = []byte{0x00}

// NullTokenStream emits a single sentinel token for a null field value.
type NullTokenStream struct {
	emitted bool
}

// Reset accepts any value and ignores it; a null token stream always
// emits the same sentinel.
func (s *NullTokenStream) Reset(value any) error {
	s.emitted = false
	return nil
}

// Next yields the sentinel token once per Reset.
func (s *NullTokenStream) Next() bool {
	if s.emitted {
		return false
	}
	s.emitted = true
	return true
}

// Term returns the fixed null token.
func (s *NullTokenStream) Term() []byte { return nullTerm }

func errUnsupportedType(want string, got any) error {
	return fmt.Errorf("token: expected %s, got %T", want, got)
}
