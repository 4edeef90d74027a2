package mathexpr

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		expected   string
	}{
		{"addition", "2 + 2", "Result: 4"},
		{"precedence", "10 * 5 + 3", "Result: 53"},
		{"larger product", "156 * 42 + 890", "Result: 7442"},
		{"parentheses", "(2 + 3) * 4", "Result: 20"},
		{"subtraction to negative", "3 - 10", "Result: -7"},
		{"true division is float", "6 / 3", "Result: 2.0"},
		{"fractional division", "7 / 2", "Result: 3.5"},
		{"repeating division", "1 / 3", "Result: 0.3333333333333333"},
		{"float addition", "0.1 + 0.2", "Result: 0.30000000000000004"},
		{"float times int", "3.0 * 2", "Result: 6.0"},
		{"trailing point", "4.", "Result: 4.0"},
		{"leading point", ".5 + .5", "Result: 1.0"},
		{"power", "2 ** 10", "Result: 1024"},
		{"power is right associative", "2 ** 3 ** 2", "Result: 512"},
		{"power binds tighter than unary minus", "-2 ** 2", "Result: -4"},
		{"negative exponent", "2 ** -1", "Result: 0.5"},
		{"big integer power", "2 ** 100", "Result: 1267650600228229401496703205376"},
		{"unit base with huge exponent", "1 ** 99999999999999999999", "Result: 1"},
		{"zero to the zero", "0 ** 0", "Result: 1"},
		{"floor division", "7 // 2", "Result: 3"},
		{"floor division negative dividend", "-7 // 2", "Result: -4"},
		{"floor division negative divisor", "7 // -2", "Result: -4"},
		{"floor division float", "7.5 // 2", "Result: 3.0"},
		{"stacked signs", "- - 3", "Result: 3"},
		{"negative zero float", "-0.0", "Result: -0.0"},
		{"large float uses exponent", "10000000000000000.0", "Result: 1e+16"},
		{"small float uses exponent", "0.00001", "Result: 1e-05"},
		{"small float boundary", "0.0001", "Result: 0.0001"},
		{"double zero literal", "00", "Result: 0"},
		{"prose is stripped", "what is 2+2?", "Result: 4"},
		{"function names are stripped", "abs(5*5)", "Result: 25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(tt.expression))
		})
	}
}

func TestEvaluate_InvalidExpression(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "hello world", "\t\n", "$%^&"} {
		assert.Equal(t, "Error: Invalid expression", Evaluate(input), "input %q", input)
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, input := range []string{"5/0", "5 / 0.0", "1 // 0", "2.5 // 0", "0 ** -1", "0.0 ** -2", "(3 - 3) ** -1 + 1", "10 / (5 - 5)"} {
		assert.Equal(t, "Error: Division by zero", Evaluate(input), "input %q", input)
	}
}

func TestEvaluate_MathErrors(t *testing.T) {
	tests := []struct {
		expression string
		contains   string
	}{
		{"2 +", "invalid syntax"},
		{"(1 + 2", "expected ')'"},
		{"2 x 3", "unexpected number 3"},
		{"007", "leading zeros in decimal integer literals are not permitted"},
		{"10.0 ** 400", "result too large"},
		{"(-8) ** 0.5", "complex results are not supported"},
		{"2 ** 99999999", "exponent too large"},
		{"2 ** 10001", "exponent too large"},
		{"2 ** 4611686018427387904", "exponent too large"},
		{"(-3) ** 99999999999999999999", "exponent too large"},
		{"99999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999999 ** 9000", "exponent too large"},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			result := Evaluate(tt.expression)
			assert.Contains(t, result, "Math error: ")
			assert.Contains(t, result, tt.contains)
		})
	}
}

func TestEvaluate_PowerExponentBoundary(t *testing.T) {
	result := Evaluate("2 ** 10000")
	assert.True(t, strings.HasPrefix(result, "Result: 19950631168807583848"), result)
	assert.Len(t, result, len("Result: ")+3011)

	assert.Equal(t, "Result: -1", Evaluate("(-1) ** 12345679"))
	assert.Equal(t, "Result: 0", Evaluate("0 ** 99999999999"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "2 + 2", Sanitize("2 + 2"))
	assert.Equal(t, "(1.5*2)", Sanitize("sqrt(1.5*2)"))
	assert.Equal(t, " 3 ", Sanitize("\t3\u00a0y"))
	assert.Equal(t, "", Sanitize("abc"))
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "inf", Float(math.Inf(1)).String())
	assert.Equal(t, "2.5", Float(2.5).String())
	assert.Equal(t, "123456789.0", Float(123456789).String())
}
