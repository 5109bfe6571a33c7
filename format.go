// Package fxprop implements bit-width propagation for fixed-point formats.
//
// A Format describes a fixed-point representation by word length, integer
// length and signedness. The derivation methods (Negate, Absolute, Square,
// Add, Sub, Mul) return the format of the full-precision result of the
// corresponding arithmetic operation: wide enough to hold the exact
// mathematical result for every value combination the operand formats can
// represent, with no overflow and no rounding. Formats are immutable values;
// operations always produce fresh ones.
package fxprop

import (
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	mu "github.com/fixnum/fxprop/internal/mathutil"
)

var (
	// ErrInvalidFormat is returned for word lengths below one and for
	// strings that do not parse as a format.
	ErrInvalidFormat = errs.Class("invalid format")
	// ErrDomain is returned when a derived range has a non-positive upper
	// bound, so no integer length can cover it.
	ErrDomain = errs.Class("domain")
)

// Bit is the one-bit unsigned format, the smallest valid Format.
var Bit = MustNew(1, 1, false)

// Format describes a fixed-point representation.
// The zero value is not a valid format; use New.
type Format struct {
	wordLen  int
	integLen int
	signed   bool
}

// New returns a format with the given word length, integer length and
// signedness. The word length counts all bits including the sign bit. The
// integer length counts the bits to the left of the binary point, sign bit
// excluded; it may be negative or exceed the word length, callers are
// responsible for sane leaf formats. Returns ErrInvalidFormat if
// wordLen < 1.
func New(wordLen, integLen int, signed bool) (Format, error) {
	if wordLen < 1 {
		return Format{}, ErrInvalidFormat.New("word length %d, must be >= 1", wordLen)
	}
	return Format{wordLen: wordLen, integLen: integLen, signed: signed}, nil
}

// MustNew is like New, but panics on error.
func MustNew(wordLen, integLen int, signed bool) Format {
	f, err := New(wordLen, integLen, signed)
	if err != nil {
		panic(err)
	}
	return f
}

// FromString parses the display form produced by String, e.g. "2s<4, 3>".
// The space after the comma is optional.
func FromString(s string) (Format, error) {
	var signed bool
	switch {
	case strings.HasPrefix(s, "2s"):
		signed = true
	case strings.HasPrefix(s, "us"):
	default:
		return Format{}, ErrInvalidFormat.New("bad prefix in %q", s)
	}
	body := s[2:]
	if len(body) < 2 || body[0] != '<' || body[len(body)-1] != '>' {
		return Format{}, ErrInvalidFormat.New("missing brackets in %q", s)
	}
	ws, is, found := strings.Cut(body[1:len(body)-1], ",")
	if !found {
		return Format{}, ErrInvalidFormat.New("missing comma in %q", s)
	}
	wordLen, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return Format{}, ErrInvalidFormat.Wrap(err)
	}
	integLen, err := strconv.Atoi(strings.TrimSpace(is))
	if err != nil {
		return Format{}, ErrInvalidFormat.Wrap(err)
	}
	return New(wordLen, integLen, signed)
}

// WordLength returns the total number of bits, sign bit included.
func (f Format) WordLength() int {
	return f.wordLen
}

// IntegerLength returns the number of bits to the left of the binary point,
// sign bit excluded.
func (f Format) IntegerLength() int {
	return f.integLen
}

// Signed reports whether the format has a sign bit.
func (f Format) Signed() bool {
	return f.signed
}

// FracLength returns the number of bits to the right of the binary point.
// It is negative for formats that represent only large integers.
func (f Format) FracLength() int {
	return f.wordLen - mu.BoolToInt(f.signed) - f.integLen
}

// Max returns the most positive representable value, (2^(W-s) - 1) * 2^-F.
func (f Format) Max() float64 {
	x := mu.MaxPositive(f.wordLen - mu.BoolToInt(f.signed))
	return x * mu.Exp2(-f.FracLength())
}

// Min returns the most negative representable value, or zero if unsigned.
func (f Format) Min() float64 {
	if !f.signed {
		return 0
	}
	return -mu.Exp2(f.integLen)
}

// Smallest returns the resolution step, 2^-F. It is >= 1 when the
// fractional length is negative.
func (f Format) Smallest() float64 {
	return mu.Exp2(-f.FracLength())
}

// String returns the display form: "2s<W, I>" for signed and "us<W, I>"
// for unsigned formats.
func (f Format) String() string {
	var builder strings.Builder
	if f.signed {
		builder.WriteString("2s")
	} else {
		builder.WriteString("us")
	}
	builder.WriteRune('<')
	builder.WriteString(strconv.Itoa(f.wordLen))
	builder.WriteString(", ")
	builder.WriteString(strconv.Itoa(f.integLen))
	builder.WriteRune('>')
	return builder.String()
}

// MarshalJSON marshals the format as its display string.
func (f Format) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON unmarshals a display string into the format.
func (f *Format) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromString(s)
	if err == nil {
		*f = parsed
	}
	return err
}
