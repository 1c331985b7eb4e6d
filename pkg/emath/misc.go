package emath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// MicroFloorMod is a floor-mod (the result takes the sign of the
// divisor) done in fixed point: both operands are scaled by 1e6 and
// truncated towards zero to int64, the modulo is taken on the integers,
// and the result is scaled back. So the answer only has six decimal
// places, and e.g. 0.33333334 mod 6 is 0.333333. A divisor that
// truncates to zero gives NaN.
func MicroFloorMod(dividend, divisor float64) float64 {
	d, m := TruncToInt64(dividend * 1e6), TruncToInt64(divisor * 1e6)
	if m == 0 {
		return math.NaN()
	}

	r := d % m
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return float64(r) / 1e6
}

// TruncToInt64 rounds towards zero, saturating at the int64 limits; NaN
// becomes zero. Go leaves out-of-range conversions undefined, so this
// pins them down.
func TruncToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):        return 0
	case f >= math.MaxInt64:   return math.MaxInt64
	case f <= math.MinInt64:   return math.MinInt64
	}
	return int64(f)
}

// RoundHalfUp rounds to the nearest integer, with halves going towards
// positive infinity (2.5 => 3, -2.5 => -2). NaN rounds to zero.
func RoundHalfUp(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	fl := math.Floor(f)
	if f - fl >= 0.5 {
		fl += 1
	}
	return int64(fl)
}

// NarrowToByte keeps the low 8 bits, two's complement style; so -102
// becomes 154 and 256 becomes 0. No clamping.
func NarrowToByte(i int64) uint8 {
	return uint8(i)
}

func Max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
func Min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
