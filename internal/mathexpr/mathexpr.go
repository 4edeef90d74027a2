// Package mathexpr evaluates arithmetic expressions for the math tool.
//
// Input is first reduced to digits, operators, parentheses, decimal points
// and whitespace. What remains is parsed by a small Pratt parser rather
// than handed to any general purpose evaluator, so identifiers and calls
// cannot reach evaluation.
package mathexpr

import (
	"errors"
	"strings"
	"unicode"
)

const (
	invalidExpressionResult = "Error: Invalid expression"
	divisionByZeroResult    = "Error: Division by zero"
)

// Sanitize drops every character other than digits, + - * / ( ) . and
// whitespace. Whitespace is normalized to plain spaces.
func Sanitize(expression string) string {
	var sb strings.Builder
	sb.Grow(len(expression))

	for _, r := range expression {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case strings.ContainsRune("+-*/().", r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteByte(' ')
		}
	}

	return sb.String()
}

// Evaluate sanitizes and evaluates expression, always producing a
// user-facing string: "Result: <value>" on success, or one of the
// error forms "Error: Invalid expression", "Error: Division by zero"
// and "Math error: <description>".
func Evaluate(expression string) string {
	sanitized := Sanitize(expression)
	if strings.TrimSpace(sanitized) == "" {
		return invalidExpressionResult
	}

	value, err := Eval(sanitized)
	if errors.Is(err, ErrDivisionByZero) {
		return divisionByZeroResult
	}
	if err != nil {
		return "Math error: " + err.Error()
	}

	return "Result: " + value.String()
}
