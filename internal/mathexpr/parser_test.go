package mathexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) Expression {
	t.Helper()
	p := NewParser(NewLexer(input))
	exp := p.Parse()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", input)
	require.NotNil(t, exp)
	return exp
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"7 // 2 * 3", "((7 // 2) * 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"2 ** -1", "(2 ** (-1))"},
		{"2 * -3", "(2 * (-3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"- - 3", "(-(-3))"},
		{"+4", "(+4)"},
		{"2 ** 3 * 4", "((2 ** 3) * 4)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parse(t, tt.input).String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"", "unexpected end of expression"},
		{"2 +", "unexpected end of expression"},
		{"(1 + 2", "expected ')'"},
		{"2 3", "unexpected number 3 at position 3"},
		{")", "unexpected ')'"},
		{"1 . 2", "unexpected character \".\""},
		{"007", "leading zeros"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := NewParser(NewLexer(tt.input))
			exp := p.Parse()
			assert.Nil(t, exp)
			require.NotEmpty(t, p.Errors())
			assert.Contains(t, p.Errors()[0], tt.contains)
		})
	}
}

func TestParse_NumberLiterals(t *testing.T) {
	lit, ok := parse(t, "42").(*NumberLiteral)
	require.True(t, ok)
	assert.True(t, lit.Value.IsInt())

	lit, ok = parse(t, "4.").(*NumberLiteral)
	require.True(t, ok)
	assert.False(t, lit.Value.IsInt())

	lit, ok = parse(t, "00").(*NumberLiteral)
	require.True(t, ok)
	assert.True(t, lit.Value.IsZero())
}
