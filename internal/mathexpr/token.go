package mathexpr

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	NUMBER // 12, 3.5, .5, 4.

	OP_PLUS         // +
	OP_MINUS        // -
	OP_ASTERISK     // *
	OP_SLASH        // /
	OP_DOUBLE_SLASH // //
	OP_POWER        // **

	LPAREN // (
	RPAREN // )
)

var tokenTypeNames = [...]string{
	ILLEGAL:         "ILLEGAL",
	EOF:             "EOF",
	NUMBER:          "NUMBER",
	OP_PLUS:         "'+'",
	OP_MINUS:        "'-'",
	OP_ASTERISK:     "'*'",
	OP_SLASH:        "'/'",
	OP_DOUBLE_SLASH: "'//'",
	OP_POWER:        "'**'",
	LPAREN:          "'('",
	RPAREN:          "')'",
}

// String implements fmt.Stringer for TokenType.
func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		if name := tokenTypeNames[t]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit of an arithmetic expression.
type Token struct {
	Type     TokenType
	Literal  string
	Position int // 1-indexed column in the sanitized input
}

func (t Token) String() string {
	if t.Type == NUMBER {
		return fmt.Sprintf("number %s", t.Literal)
	}
	if t.Type == EOF {
		return "end of expression"
	}
	if t.Type == ILLEGAL {
		return fmt.Sprintf("character %q", t.Literal)
	}
	return t.Type.String()
}
