package mathexpr

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Parser is a Pratt parser over the arithmetic grammar:
// numbers, + - * / // **, unary signs and parentheses.
type Parser struct {
	l      *Lexer
	errors []string

	curToken  Token
	peekToken Token

	prefixParseFns map[TokenType]prefixParseFn
	infixParseFns  map[TokenType]infixParseFn
}

// Operator precedence levels
const (
	_ int = iota
	LOWEST
	SUM     // + -
	PRODUCT // * / //
	PREFIX  // -X or +X
	POWER   // **
)

var precedences = map[TokenType]int{
	OP_PLUS:         SUM,
	OP_MINUS:        SUM,
	OP_ASTERISK:     PRODUCT,
	OP_SLASH:        PRODUCT,
	OP_DOUBLE_SLASH: PRODUCT,
	OP_POWER:        POWER,
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// NewParser creates a new Parser instance
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []string{},
	}

	p.prefixParseFns = map[TokenType]prefixParseFn{
		NUMBER:   p.parseNumberLiteral,
		OP_MINUS: p.parseUnaryExpression,
		OP_PLUS:  p.parseUnaryExpression,
		LPAREN:   p.parseGroupedExpression,
	}

	p.infixParseFns = map[TokenType]infixParseFn{
		OP_PLUS:         p.parseBinaryExpression,
		OP_MINUS:        p.parseBinaryExpression,
		OP_ASTERISK:     p.parseBinaryExpression,
		OP_SLASH:        p.parseBinaryExpression,
		OP_DOUBLE_SLASH: p.parseBinaryExpression,
		OP_POWER:        p.parseBinaryExpression,
	}

	// Read two tokens to set both curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a complete expression. The returned expression is nil
// whenever Errors is non-empty.
func (p *Parser) Parse() Expression {
	exp := p.parseExpression(LOWEST)
	if len(p.errors) > 0 {
		return nil
	}

	if !p.peekTokenIs(EOF) {
		p.addError("invalid syntax: unexpected %s at position %d", p.peekToken, p.peekToken.Position)
		return nil
	}

	return exp
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("invalid syntax: expected %v, got %s at position %d", t, p.peekToken, p.peekToken.Position)
	return false
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError("invalid syntax: unexpected %s at position %d", p.curToken, p.curToken.Position)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

func (p *Parser) parseNumberLiteral() Expression {
	lit := p.curToken.Literal

	if strings.Contains(lit, ".") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.addError("could not parse %q as number at position %d", lit, p.curToken.Position)
			return nil
		}
		return &NumberLiteral{Token: p.curToken, Value: Float(f)}
	}

	if len(lit) > 1 && lit[0] == '0' && strings.Trim(lit, "0") != "" {
		p.addError("leading zeros in decimal integer literals are not permitted")
		return nil
	}

	i, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		p.addError("could not parse %q as number at position %d", lit, p.curToken.Position)
		return nil
	}
	return &NumberLiteral{Token: p.curToken, Value: Int(i)}
}

func (p *Parser) parseUnaryExpression() Expression {
	expression := &UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseBinaryExpression(left Expression) Expression {
	expression := &BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	// ** is right-associative and admits a signed operand on its right
	if expression.Token.Type == OP_POWER {
		precedence = PREFIX
	}

	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(RPAREN) {
		return nil
	}

	return exp
}
