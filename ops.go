package fxprop

import (
	"math"

	mu "github.com/fixnum/fxprop/internal/mathutil"
)

// zeroSideLog2 stands in for log2 of an empty negative side. It sits far
// below any practical integer length, so the positive side always dominates.
const zeroSideLog2 = -128

// Negate returns the format of -x. Signed inputs widen both the word and
// the integer part by one bit, since negating the most negative value
// overflows the original width. Unsigned inputs become signed with one
// extra bit.
func (f Format) Negate() Format {
	if f.signed {
		return Format{wordLen: f.wordLen + 1, integLen: f.integLen + 1, signed: true}
	}
	return Format{wordLen: f.wordLen + 1, integLen: f.integLen, signed: true}
}

// Absolute returns the format of |x|. Signed inputs drop the sign bit but
// widen the integer part by one, since |min| exceeds max. For unsigned
// inputs the result equals the receiver.
func (f Format) Absolute() Format {
	if f.signed {
		return Format{wordLen: f.wordLen, integLen: f.integLen + 1, signed: false}
	}
	return f
}

// Square returns the format of x*x. The result is always unsigned.
func (f Format) Square() Format {
	integLen := 2 * f.integLen
	if f.signed {
		integLen++
	}
	fracLen := 2 * f.FracLength()
	return Format{wordLen: integLen + fracLen, integLen: integLen, signed: false}
}

// Add returns the format of x+y, wide enough for the exact sum over the
// operands' full ranges.
func (f Format) Add(other Format) (Format, error) {
	maxVal := f.Max() + other.Max()
	minVal := f.Min() + other.Min()
	return rangeToFormat(maxVal, minVal, max(f.FracLength(), other.FracLength()))
}

// Sub returns the format of x-y, wide enough for the exact difference over
// the operands' full ranges.
func (f Format) Sub(other Format) (Format, error) {
	maxVal := f.Max() - other.Min()
	minVal := f.Min() - other.Max()
	return rangeToFormat(maxVal, minVal, max(f.FracLength(), other.FracLength()))
}

// Mul returns the format of x*y. The bounds follow the interval
// multiplication rule over the operand ranges. Fractional lengths add: the
// product of values with fa and fb fractional bits has exactly fa+fb
// fractional bits.
func (f Format) Mul(other Format) (Format, error) {
	maxVal := math.Max(f.Max()*other.Max(), f.Min()*other.Min())
	minVal := math.Min(f.Max()*other.Min(), f.Min()*other.Max())
	return rangeToFormat(maxVal, minVal, f.FracLength()+other.FracLength())
}

// rangeToFormat converts an exact result range and fractional length into a
// format covering both. An N-bit field tops out at 2^N - 1, so an upper
// bound that is an exact power of two needs one extra bit.
func rangeToFormat(maxVal, minVal float64, fracLen int) (Format, error) {
	if maxVal <= 0 {
		return Format{}, ErrDomain.New("max value %v, must be positive", maxVal)
	}
	signed := minVal != 0

	log2Max := math.Log2(maxVal)
	if math.Ceil(log2Max) == log2Max {
		log2Max++
	}
	log2Min := float64(zeroSideLog2)
	if minVal != 0 {
		log2Min = math.Log2(-minVal)
	}
	integLen := int(math.Ceil(math.Max(log2Max, log2Min)))
	return New(mu.BoolToInt(signed)+integLen+fracLen, integLen, signed)
}
