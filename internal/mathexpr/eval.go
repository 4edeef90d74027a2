package mathexpr

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// ErrDivisionByZero is returned for x/0, x//0 and 0**-n.
var ErrDivisionByZero = errors.New("division by zero")

var (
	errResultTooLarge = errors.New("result too large")
	errIntTooLarge    = errors.New("integer too large to convert to float")
	errComplex        = errors.New("complex results are not supported")
)

const (
	// maxExponent is the largest integer exponent accepted for bases
	// other than -1, 0 and 1.
	maxExponent = 10000
	// maxResultBits bounds exact integer powers so a single expression
	// cannot exhaust memory.
	maxResultBits = 1 << 20
)

// Eval parses and evaluates a sanitized expression.
func Eval(input string) (Number, error) {
	p := NewParser(NewLexer(input))
	exp := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return Number{}, errors.New(errs[0])
	}
	return evalExpression(exp)
}

func evalExpression(exp Expression) (Number, error) {
	switch node := exp.(type) {
	case *NumberLiteral:
		return node.Value, nil

	case *UnaryExpression:
		right, err := evalExpression(node.Right)
		if err != nil {
			return Number{}, err
		}
		if node.Operator == "-" {
			return negate(right), nil
		}
		return right, nil

	case *BinaryExpression:
		left, err := evalExpression(node.Left)
		if err != nil {
			return Number{}, err
		}
		right, err := evalExpression(node.Right)
		if err != nil {
			return Number{}, err
		}
		return applyOperator(node.Operator, left, right)
	}

	return Number{}, fmt.Errorf("unsupported expression %T", exp)
}

func applyOperator(op string, left, right Number) (Number, error) {
	switch op {
	case "+":
		return arithmetic(left, right, (*big.Int).Add, func(a, b float64) float64 { return a + b })
	case "-":
		return arithmetic(left, right, (*big.Int).Sub, func(a, b float64) float64 { return a - b })
	case "*":
		return arithmetic(left, right, (*big.Int).Mul, func(a, b float64) float64 { return a * b })
	case "/":
		return divide(left, right)
	case "//":
		return floorDivide(left, right)
	case "**":
		return power(left, right)
	}
	return Number{}, fmt.Errorf("unknown operator %q", op)
}

func negate(n Number) Number {
	if n.IsInt() {
		return Int(new(big.Int).Neg(n.i))
	}
	return Float(-n.f)
}

func arithmetic(left, right Number, intOp func(z, x, y *big.Int) *big.Int, floatOp func(a, b float64) float64) (Number, error) {
	if left.IsInt() && right.IsInt() {
		return Int(intOp(new(big.Int), left.i, right.i)), nil
	}

	a, b, err := floats(left, right)
	if err != nil {
		return Number{}, err
	}
	return checkedFloat(floatOp(a, b))
}

func divide(left, right Number) (Number, error) {
	if right.IsZero() {
		return Number{}, ErrDivisionByZero
	}

	if left.IsInt() && right.IsInt() {
		f, _ := new(big.Rat).SetFrac(left.i, right.i).Float64()
		return checkedFloat(f)
	}

	a, b, err := floats(left, right)
	if err != nil {
		return Number{}, err
	}
	return checkedFloat(a / b)
}

func floorDivide(left, right Number) (Number, error) {
	if right.IsZero() {
		return Number{}, ErrDivisionByZero
	}

	if left.IsInt() && right.IsInt() {
		q, m := new(big.Int).QuoRem(left.i, right.i, new(big.Int))
		// QuoRem truncates toward zero; floor needs one less when the
		// remainder and divisor disagree in sign
		if m.Sign() != 0 && m.Sign() != right.i.Sign() {
			q.Sub(q, big.NewInt(1))
		}
		return Int(q), nil
	}

	a, b, err := floats(left, right)
	if err != nil {
		return Number{}, err
	}
	return checkedFloat(math.Floor(a / b))
}

func power(base, exponent Number) (Number, error) {
	if base.IsInt() && exponent.IsInt() {
		if exponent.i.Sign() >= 0 {
			return intPower(base.i, exponent.i)
		}
		if base.IsZero() {
			return Number{}, ErrDivisionByZero
		}
	}

	a, b, err := floats(base, exponent)
	if err != nil {
		return Number{}, err
	}
	if a == 0 && b < 0 {
		return Number{}, ErrDivisionByZero
	}
	if a < 0 && b != math.Trunc(b) {
		return Number{}, errComplex
	}
	return checkedFloat(math.Pow(a, b))
}

func intPower(base, exponent *big.Int) (Number, error) {
	if base.CmpAbs(big.NewInt(1)) > 0 {
		if exponent.Cmp(big.NewInt(maxExponent)) > 0 {
			return Number{}, fmt.Errorf("exponent too large")
		}
		if exponent.Int64() > maxResultBits/int64(base.BitLen()) {
			return Number{}, fmt.Errorf("exponent too large")
		}
	}

	return Int(new(big.Int).Exp(base, exponent, nil)), nil
}

func floats(left, right Number) (float64, float64, error) {
	a, err := left.Float64()
	if err != nil {
		return 0, 0, err
	}
	b, err := right.Float64()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func checkedFloat(f float64) (Number, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, errResultTooLarge
	}
	return Float(f), nil
}
