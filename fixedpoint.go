package schedcore

// Fixed is a 17.14 signed fixed-point number: value/2^Q, stored in an
// int32. Intermediate products and divisions are widened to int64.
//
// Overflow and divide-by-zero are caller bugs, not handled conditions —
// there is no saturation, matching threads/fixed_point.h in the kernel
// this core is modeled on.
type Fixed int32

// Q is the number of fractional bits.
const Q = 14

// f is 2^Q, the fixed-point scale factor.
const f = 1 << Q

// FromInt converts an integer to fixed point.
func FromInt(n int) Fixed {
	return Fixed(n * f)
}

// Trunc converts x to an integer, rounding toward zero.
func (x Fixed) Trunc() int {
	return int(x) / f
}

// Round converts x to the nearest integer, rounding half away from zero.
func (x Fixed) Round() int {
	if x >= 0 {
		return int(x+f/2) / f
	}
	return int(x-f/2) / f
}

// Add returns x + y.
func (x Fixed) Add(y Fixed) Fixed {
	return x + y
}

// Sub returns x - y.
func (x Fixed) Sub(y Fixed) Fixed {
	return x - y
}

// AddInt returns x + n.
func (x Fixed) AddInt(n int) Fixed {
	return x + Fixed(n*f)
}

// SubInt returns x - n.
func (x Fixed) SubInt(n int) Fixed {
	return x - Fixed(n*f)
}

// Mul returns x * y.
func (x Fixed) Mul(y Fixed) Fixed {
	return Fixed((int64(x) * int64(y)) / f)
}

// MulInt returns x * n.
func (x Fixed) MulInt(n int) Fixed {
	return x * Fixed(n)
}

// Div returns x / y.
func (x Fixed) Div(y Fixed) Fixed {
	return Fixed((int64(x) * f) / int64(y))
}

// DivInt returns x / n.
func (x Fixed) DivInt(n int) Fixed {
	return x / Fixed(n)
}
