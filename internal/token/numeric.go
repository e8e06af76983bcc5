package token

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ervinbosenbacher/ironsearch/pkg/zigzag"
)

const (
	precisionStep = 8 // bits shifted off between successive stepped terms
	maxSteps      = 8 // shifts of 0,8,...,56

	tagInteger byte = 0x01
	tagFloat   byte = 0x02
)

// canonicalize widens any supported numeric Go value (int32, int64,
// uint32, uint64, float32, float64) onto a common representation so that
// the same logical value indexed or queried through a different width
// produces an identical most-specific term. Every floating-point value is
// first round-tripped through float32 precision, which collapses a
// float32 value and the float64 value nearest to the same decimal literal
// onto the same bits; a float that is integral after that rounding is
// encoded as the equal integer.
func canonicalize(value any) (tag byte, raw uint64, err error) {
	var f float64
	switch v := value.(type) {
	case int32:
		return tagInteger, zigzagRaw(int64(v)), nil
	case int64:
		return tagInteger, zigzagRaw(v), nil
	case uint32:
		return tagInteger, zigzagRaw(int64(v)), nil
	case uint64:
		return tagInteger, zigzagRaw(int64(v)), nil
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return 0, 0, fmt.Errorf("token: unsupported numeric type %T", value)
	}

	// Collapse float32/float64 precision differences onto a shared
	// resolution before deciding whether the value is integral.
	f = float64(float32(f))
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return tagInteger, zigzagRaw(int64(f)), nil
	}
	return tagFloat, sortableFloat64Bits(f), nil
}

func zigzagRaw(v int64) uint64 { return zigzag.Encode64(v) }

// sortableFloat64Bits maps a float64's IEEE-754 bits onto a uint64 whose
// unsigned ordering matches the float's numeric ordering.
func sortableFloat64Bits(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

// MostSpecificTerm returns the full-precision term for value, the term
// a point query should look up directly.
func MostSpecificTerm(value any) ([]byte, error) {
	tag, raw, err := canonicalize(value)
	if err != nil {
		return nil, err
	}
	return encodeTerm(tag, 0, raw), nil
}

func encodeTerm(tag byte, shift uint, raw uint64) []byte {
	buf := make([]byte, 1+1+8)
	buf[0] = tag
	buf[1] = byte(shift)
	binary.BigEndian.PutUint64(buf[2:], raw>>shift)
	return buf
}

// NumericTokenStream produces precision-stepped terms for a numeric
// value: the full-precision term first (the one point queries use),
// then successively coarser terms useful for range-query decomposition.
type NumericTokenStream struct {
	tag  byte
	raw  uint64
	step int
	done bool
	term []byte
}

// Reset prepares the stream for value.
func (s *NumericTokenStream) Reset(value any) error {
	tag, raw, err := canonicalize(value)
	if err != nil {
		return err
	}
	s.tag, s.raw, s.step, s.done, s.term = tag, raw, 0, false, nil
	return nil
}

// Next advances to the next precision-stepped term.
func (s *NumericTokenStream) Next() bool {
	if s.done || s.step >= maxSteps {
		return false
	}
	shift := uint(s.step * precisionStep)
	s.term = encodeTerm(s.tag, shift, s.raw)
	s.step++
	if shift >= 56 {
		s.done = true
	}
	return true
}

// Term returns the current token's bytes.
func (s *NumericTokenStream) Term() []byte { return s.term }
