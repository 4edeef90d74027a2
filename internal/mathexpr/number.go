package mathexpr

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is the result of evaluating an expression. Integers are exact
// and unbounded; anything touched by a decimal literal or true division
// is a float64.
type Number struct {
	i *big.Int
	f float64
}

// Int wraps an integer value.
func Int(i *big.Int) Number {
	return Number{i: i}
}

// Float wraps a floating point value.
func Float(f float64) Number {
	return Number{f: f}
}

// IsInt reports whether n holds an exact integer.
func (n Number) IsInt() bool {
	return n.i != nil
}

// BigInt returns the integer value, or nil for floats.
func (n Number) BigInt() *big.Int {
	return n.i
}

// Float64 converts n to a float64, failing when an integer is too
// large to be represented.
func (n Number) Float64() (float64, error) {
	if n.i == nil {
		return n.f, nil
	}
	f, _ := new(big.Float).SetInt(n.i).Float64()
	if math.IsInf(f, 0) {
		return 0, errIntTooLarge
	}
	return f, nil
}

// IsZero reports whether n equals zero.
func (n Number) IsZero() bool {
	if n.i != nil {
		return n.i.Sign() == 0
	}
	return n.f == 0
}

// String renders integers in full and floats in their shortest
// round-trip form, always with a decimal point or an exponent.
func (n Number) String() string {
	if n.i != nil {
		return n.i.String()
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(f)
	if abs >= 1e16 || abs < 1e-4 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
