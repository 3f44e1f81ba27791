// Package parser builds the syntax tree from a scanned token stream.
package parser

import (
	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/token"
)

const maxArguments = 255

// Parser is a recursive-descent parser over one token stream. Syntax errors
// are recorded and parsing resumes at the next statement boundary.
type Parser struct {
	tokens  []token.Token
	current int
	errs    ErrorList
}

// New returns a parser for tokens, which must end with an EOF token.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, token.New(token.EOF, "", nil, line))
	}
	return &Parser{tokens: tokens}
}

// Parse parses a whole program. Statements that parsed cleanly are returned
// alongside an ErrorList when any syntax error occurred.
func Parse(tokens []token.Token) ([]ast.Stmt, error) {
	return New(tokens).Program()
}

// ParseExpression parses tokens as exactly one expression.
func ParseExpression(tokens []token.Token) (ast.Expr, error) {
	p := New(tokens)
	expr, err := p.expression()
	if err == nil && !p.isAtEnd() {
		p.error(p.peek(), "Expect end of expression.")
	}
	if len(p.errs) > 0 {
		return expr, p.errs
	}
	return expr, nil
}

// Program parses declarations until EOF.
func (p *Parser) Program() ([]ast.Stmt, error) {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if len(p.errs) > 0 {
		return statements, p.errs
	}
	return statements, nil
}

// synchronize discards tokens until a likely statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// error records a syntax error and returns it so callers can unwind.
func (p *Parser) error(tok token.Token, message string) *Error {
	err := &Error{Token: tok, Message: message}
	p.errs = append(p.errs, err)
	return err
}

func (p *Parser) consume(typ token.Type, message string) (token.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return token.Token{}, p.error(p.peek(), message)
}

func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}
