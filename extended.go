package weft

import "strconv"

// Extended is an integer extended with positive and negative infinity.
// Layout uses it to express "as much space as you like" without a magic
// sentinel: proposing Inf width to a child means the axis is unconstrained.
//
// Arithmetic follows the extended reals: Inf + finite = Inf, finite / 0 = Inf.
// Inf - Inf has no meaning; it never occurs in a valid layout and resolves
// to Inf rather than panicking.
type Extended struct {
	value int
	inf   int8 // -1, 0, +1
}

// Inf is positive infinity.
var Inf = Extended{inf: 1}

// NegInf is negative infinity.
var NegInf = Extended{inf: -1}

// Ext returns a finite Extended with the given value.
func Ext(v int) Extended {
	return Extended{value: v}
}

// IsInf reports whether e is positive or negative infinity.
func (e Extended) IsInf() bool {
	return e.inf != 0
}

// Finite reports whether e is a finite value.
func (e Extended) Finite() bool {
	return e.inf == 0
}

// Int returns the finite value. Infinities saturate to the int extremes,
// so callers that have already clamped against a finite bound can use the
// result directly as a slice length or loop limit.
func (e Extended) Int() int {
	switch e.inf {
	case 1:
		return int(^uint(0) >> 1) // MaxInt
	case -1:
		return -int(^uint(0)>>1) - 1 // MinInt
	}
	return e.value
}

// Add returns e + o. Any infinite operand dominates; Inf + NegInf resolves
// to Inf (invalid in a layout, but must not loop or panic).
func (e Extended) Add(o Extended) Extended {
	if e.inf != 0 {
		return e
	}
	if o.inf != 0 {
		return o
	}
	return Extended{value: e.value + o.value}
}

// Sub returns e - o.
func (e Extended) Sub(o Extended) Extended {
	return e.Add(o.Neg())
}

// Neg returns -e.
func (e Extended) Neg() Extended {
	if e.inf != 0 {
		return Extended{inf: -e.inf}
	}
	return Extended{value: -e.value}
}

// Mul returns e * o.
func (e Extended) Mul(o Extended) Extended {
	if e.inf != 0 || o.inf != 0 {
		s := e.sign() * o.sign()
		if s == 0 {
			return Extended{} // Inf * 0: treat as 0, zero-size content in unbounded space
		}
		return Extended{inf: s}
	}
	return Extended{value: e.value * o.value}
}

// Div returns e / o. Division by zero yields positive infinity, which is
// what a layout wants when it asks "how many times does nothing fit".
func (e Extended) Div(o Extended) Extended {
	if o.inf != 0 {
		if e.inf != 0 {
			return Extended{inf: 1}
		}
		return Extended{}
	}
	if o.value == 0 {
		return Extended{inf: 1}
	}
	if e.inf != 0 {
		return Extended{inf: e.inf * int8(intSign(o.value))}
	}
	return Extended{value: e.value / o.value}
}

func (e Extended) sign() int8 {
	if e.inf != 0 {
		return e.inf
	}
	return int8(intSign(e.value))
}

func intSign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Less reports e < o. Positive infinity is greater than every finite value,
// negative infinity less than every finite value.
func (e Extended) Less(o Extended) bool {
	if e.inf != o.inf {
		return e.inf < o.inf
	}
	if e.inf != 0 {
		return false // equal infinities
	}
	return e.value < o.value
}

// Cmp returns -1, 0 or +1 comparing e to o.
func (e Extended) Cmp(o Extended) int {
	switch {
	case e.Less(o):
		return -1
	case o.Less(e):
		return 1
	}
	return 0
}

// MinExt returns the smaller of a and b.
func MinExt(a, b Extended) Extended {
	if b.Less(a) {
		return b
	}
	return a
}

// MaxExt returns the larger of a and b.
func MaxExt(a, b Extended) Extended {
	if a.Less(b) {
		return b
	}
	return a
}

// Clamp limits e to the inclusive range [lo, hi].
func (e Extended) Clamp(lo, hi Extended) Extended {
	return MaxExt(lo, MinExt(e, hi))
}

// ClampZero limits e to be non-negative.
func (e Extended) ClampZero() Extended {
	return MaxExt(e, Extended{})
}

// String returns "inf", "-inf" or the decimal value.
func (e Extended) String() string {
	switch e.inf {
	case 1:
		return "inf"
	case -1:
		return "-inf"
	}
	return strconv.Itoa(e.value)
}
