package mathexpr

// Lexer tokenizes a sanitized arithmetic expression
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.position + 1
	var tok Token

	switch l.ch {
	case 0:
		return Token{Type: EOF, Position: pos}
	case '+':
		tok = Token{Type: OP_PLUS, Literal: "+", Position: pos}
	case '-':
		tok = Token{Type: OP_MINUS, Literal: "-", Position: pos}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = Token{Type: OP_POWER, Literal: "**", Position: pos}
		} else {
			tok = Token{Type: OP_ASTERISK, Literal: "*", Position: pos}
		}
	case '/':
		if l.peekChar() == '/' {
			l.readChar()
			tok = Token{Type: OP_DOUBLE_SLASH, Literal: "//", Position: pos}
		} else {
			tok = Token{Type: OP_SLASH, Literal: "/", Position: pos}
		}
	case '(':
		tok = Token{Type: LPAREN, Literal: "(", Position: pos}
	case ')':
		tok = Token{Type: RPAREN, Literal: ")", Position: pos}
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return Token{Type: NUMBER, Literal: l.readNumber(), Position: pos}
		}
		tok = Token{Type: ILLEGAL, Literal: string(l.ch), Position: pos}
	}

	l.readChar()
	return tok
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v' {
		l.readChar()
	}
}

// readNumber reads digits with at most one decimal point. A trailing
// point ("4.") and a leading point (".5") are both accepted.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[position:l.position]
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
