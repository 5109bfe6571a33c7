// Package quant decodes raw fixed-point bit patterns into the real numbers
// they represent. It shares the format vocabulary of the root package but is
// otherwise independent: a Quantizer only interprets stored bits, it derives
// nothing.
package quant

import (
	"math"
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	mu "github.com/fixnum/fxprop/internal/mathutil"
)

var (
	// ErrInvalidFormat is returned for word lengths below one.
	ErrInvalidFormat = errs.Class("invalid format")
	// ErrOutOfRange is returned when a raw value does not fit the word
	// length.
	ErrOutOfRange = errs.Class("out of range")
)

// Quantizer interprets raw unsigned bit patterns under a fixed-point format.
type Quantizer struct {
	wordLen  int
	integLen int
	signed   bool
}

// New returns a quantizer for the given format.
// Returns ErrInvalidFormat if wordLen < 1.
func New(wordLen, integLen int, signed bool) (Quantizer, error) {
	if wordLen < 1 {
		return Quantizer{}, ErrInvalidFormat.New("word length %d, must be >= 1", wordLen)
	}
	return Quantizer{wordLen: wordLen, integLen: integLen, signed: signed}, nil
}

// MustNew is like New, but panics on error.
func MustNew(wordLen, integLen int, signed bool) Quantizer {
	q, err := New(wordLen, integLen, signed)
	if err != nil {
		panic(err)
	}
	return q
}

// String returns the display form of the quantizer's format,
// "2s<W, I>" or "us<W, I>".
func (q Quantizer) String() string {
	var builder strings.Builder
	if q.signed {
		builder.WriteString("2s")
	} else {
		builder.WriteString("us")
	}
	builder.WriteRune('<')
	builder.WriteString(strconv.Itoa(q.wordLen))
	builder.WriteString(", ")
	builder.WriteString(strconv.Itoa(q.integLen))
	builder.WriteRune('>')
	return builder.String()
}

// Decode converts a raw bit pattern to the value it represents. Bit
// patterns with the top bit set are reinterpreted as two's-complement for
// signed formats. Returns ErrOutOfRange if raw needs more bits than the
// word length.
func (q Quantizer) Decode(raw uint64) (float64, error) {
	if q.wordLen < 64 && raw > uint64(1)<<uint(q.wordLen)-1 {
		return 0, ErrOutOfRange.New("raw value %d does not fit %d bits", raw, q.wordLen)
	}
	value := float64(raw)
	if q.signed && q.wordLen <= 64 && raw >= uint64(1)<<uint(q.wordLen-1) {
		// two's-complement reinterpretation, exact in the integer domain.
		// For a 64-bit word the subtraction wraps to the right magnitude.
		value = -float64(uint64(1)<<uint(q.wordLen) - raw)
	}
	fracLen := q.wordLen - mu.BoolToInt(q.signed) - q.integLen
	return math.Ldexp(value, -fracLen), nil
}
