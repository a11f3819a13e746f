package parser

import (
	"strings"

	"github.com/zenpack-tools/zplc/internal/source/ast"
	"github.com/zenpack-tools/zplc/internal/source/lexer"
)

// Parser transforms a stream of tokens into AST nodes
type Parser struct {
	tokens  []lexer.Token
	dialect lexer.Dialect
	current int
	errors  []ParseError
}

// New creates a new parser for the given token stream
func New(tokens []lexer.Token, dialect lexer.Dialect) *Parser {
	return &Parser{
		tokens:  tokens,
		dialect: dialect,
		current: 0,
		errors:  make([]ParseError, 0),
	}
}

// ParseModule lexes and parses a definition-language source. Any lexical or
// structural error is returned as a *SourceError.
func ParseModule(file, source string) (*ast.Module, error) {
	tokens, lexErrors := lexer.Tokenize(source, lexer.DialectDefinition)
	module, parseErrors := New(tokens, lexer.DialectDefinition).ParseModule()
	if len(lexErrors) > 0 || len(parseErrors) > 0 {
		return nil, &SourceError{File: file, LexErrors: lexErrors, ParseErrors: parseErrors}
	}
	return module, nil
}

// Tokens returns the token stream being parsed
func (p *Parser) Tokens() []lexer.Token {
	return p.tokens
}

// Position returns the index of the next token to be consumed
func (p *Parser) Position() int {
	return p.current
}

// Seek moves the parser to the token at index pos
func (p *Parser) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(p.tokens) {
		pos = len(p.tokens)
	}
	p.current = pos
}

// Errors returns the errors collected so far
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// try runs fn speculatively. When fn records an error or returns nil the
// parser is rewound and the errors are discarded.
func (p *Parser) try(fn func() ast.ExprNode) (ast.ExprNode, bool) {
	mark := p.current
	errCount := len(p.errors)

	expr := fn()
	if expr == nil || len(p.errors) > errCount {
		p.current = mark
		p.errors = p.errors[:errCount]
		return nil, false
	}
	return expr, true
}

// opaque consumes tokens up to (not including) the first token at bracket
// depth zero for which stop returns true, and returns them as an Opaque node.
func (p *Parser) opaque(stop func(lexer.Token) bool) *ast.Opaque {
	start := p.peek()
	parts := make([]string, 0)
	depth := 0

	for !p.isAtEnd() {
		tok := p.peek()
		if depth == 0 && stop(tok) {
			break
		}
		switch tok.Type {
		case lexer.TOKEN_LPAREN, lexer.TOKEN_LBRACE, lexer.TOKEN_LBRACKET:
			depth++
		case lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACE, lexer.TOKEN_RBRACKET:
			if depth == 0 {
				return &ast.Opaque{Text: strings.Join(parts, " "), Loc: ast.TokenLocation(start)}
			}
			depth--
		}
		parts = append(parts, tok.Lexeme)
		p.advance()
	}

	return &ast.Opaque{Text: strings.Join(parts, " "), Loc: ast.TokenLocation(start)}
}

// skipBalanced consumes an opening delimiter and everything up to its match
func (p *Parser) skipBalanced() {
	depth := 0
	for !p.isAtEnd() {
		switch p.advance().Type {
		case lexer.TOKEN_LPAREN, lexer.TOKEN_LBRACE, lexer.TOKEN_LBRACKET:
			depth++
		case lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACE, lexer.TOKEN_RBRACKET:
			depth--
		}
		if depth <= 0 {
			return
		}
	}
}

// Token stream navigation

// peek returns the current token without advancing
func (p *Parser) peek() lexer.Token {
	return p.peekAt(0)
}

// peekAt returns the token offset positions ahead without advancing
func (p *Parser) peekAt(offset int) lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	i := p.current + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if len(p.tokens) == 0 || p.current == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

// advance consumes the current token and returns it
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check returns true if the current token matches the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return tokenType == lexer.TOKEN_EOF
	}
	return p.peek().Type == tokenType
}

// checkWord returns true if the current token is the identifier word
func (p *Parser) checkWord(word string) bool {
	tok := p.peek()
	return tok.Type == lexer.TOKEN_IDENTIFIER && tok.Lexeme == word
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances if the next token matches, otherwise reports an error
func (p *Parser) consume(tokenType lexer.TokenType, message string) lexer.Token {
	if p.check(tokenType) {
		return p.advance()
	}

	p.error(p.peek(), message)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

// isAtEnd returns true if we've reached the end of the token stream
func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// error records a parse error
func (p *Parser) error(token lexer.Token, message string) {
	p.errors = append(p.errors, NewParseError(message, token))
}
