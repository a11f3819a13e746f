package parser

import (
	"fmt"

	"github.com/zenpack-tools/zplc/internal/source/ast"
	"github.com/zenpack-tools/zplc/internal/source/lexer"
)

// ParseModule parses a definition-language token stream. Class definitions
// and simple assignments are modelled; every other statement is skipped
// along with any indented block it owns.
func (p *Parser) ParseModule() (*ast.Module, []ParseError) {
	module := &ast.Module{
		Body: make([]ast.StmtNode, 0),
		Loc:  ast.TokenLocation(p.peek()),
	}

	for !p.isAtEnd() {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		if p.check(lexer.TOKEN_INDENT) || p.check(lexer.TOKEN_DEDENT) {
			p.error(p.peek(), "Unexpected indentation")
			p.advance()
			continue
		}
		module.Body = append(module.Body, p.parseStatements()...)
	}

	return module, p.errors
}

// parseStatements parses one logical line, which may hold several
// semicolon-separated simple statements or one compound statement.
func (p *Parser) parseStatements() []ast.StmtNode {
	if p.check(lexer.TOKEN_CLASS) {
		if class := p.parseClass(); class != nil {
			return []ast.StmtNode{class}
		}
		return nil
	}

	stmts := make([]ast.StmtNode, 0, 1)
	for {
		stmts = append(stmts, p.parseSimpleStatement())
		if !p.match(lexer.TOKEN_SEMICOLON) || p.check(lexer.TOKEN_NEWLINE) || p.isAtEnd() {
			break
		}
	}
	p.endStatement()
	return stmts
}

// parseSimpleStatement parses an assignment or skips an unmodelled statement
// up to the end of the logical line.
func (p *Parser) parseSimpleStatement() ast.StmtNode {
	start := p.peek()

	switch start.Type {
	case lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACE, lexer.TOKEN_RBRACKET:
		p.error(start, fmt.Sprintf("Unmatched '%s'", start.Lexeme))
		p.advance()
	case lexer.TOKEN_IDENTIFIER:
		if p.peekAt(1).Type == lexer.TOKEN_EQUALS {
			return p.parseAssign()
		}
	}

	p.opaque(isStatementEnd)
	return &ast.OtherStmt{Keyword: start.Lexeme, Loc: ast.TokenLocation(start)}
}

// parseAssign parses `target = [target = ...] value`
func (p *Parser) parseAssign() *ast.Assign {
	assign := &ast.Assign{
		Targets: make([]string, 0, 1),
		Loc:     ast.TokenLocation(p.peek()),
	}

	for p.check(lexer.TOKEN_IDENTIFIER) && p.peekAt(1).Type == lexer.TOKEN_EQUALS {
		assign.Targets = append(assign.Targets, p.advance().Lexeme)
		p.advance() // =
	}

	value, ok := p.try(func() ast.ExprNode {
		expr := p.parseExpressionList()
		if !isStatementEnd(p.peek()) {
			p.error(p.peek(), "Expected end of statement")
		}
		return expr
	})
	if !ok {
		value = p.opaque(isStatementEnd)
	}
	assign.Value = value

	return assign
}

// parseClass parses a class definition and its body
func (p *Parser) parseClass() *ast.ClassDef {
	classToken := p.advance()

	nameToken := p.consume(lexer.TOKEN_IDENTIFIER, "Expected class name")
	if nameToken.Type == lexer.TOKEN_ERROR {
		p.skipStatement()
		return nil
	}

	class := &ast.ClassDef{
		Name:  nameToken.Lexeme,
		Bases: make([]ast.ExprNode, 0),
		Body:  make([]ast.StmtNode, 0),
		Loc:   ast.TokenLocation(classToken),
	}

	if p.check(lexer.TOKEN_LPAREN) {
		args, _ := p.parseArguments()
		class.Bases = args
	}

	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "Expected ':' after class header")
		p.skipStatement()
		return class
	}

	// Single-line body: class A(B): pass
	if !p.check(lexer.TOKEN_NEWLINE) {
		class.Body = append(class.Body, p.parseStatements()...)
		return class
	}
	p.advance() // NEWLINE

	if !p.match(lexer.TOKEN_INDENT) {
		p.error(p.peek(), fmt.Sprintf("Expected an indented block after class %s", class.Name))
		return class
	}

	for !p.check(lexer.TOKEN_DEDENT) && !p.isAtEnd() {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		if p.check(lexer.TOKEN_INDENT) {
			p.error(p.peek(), "Unexpected indentation")
			p.skipBlock()
			continue
		}
		class.Body = append(class.Body, p.parseStatements()...)
	}
	p.match(lexer.TOKEN_DEDENT)

	return class
}

// endStatement consumes the NEWLINE ending a statement and, for compound
// statements (def, if, for, ...), the indented block that follows it.
func (p *Parser) endStatement() {
	if !p.match(lexer.TOKEN_NEWLINE) && !p.isAtEnd() {
		p.opaque(isStatementEnd)
		p.match(lexer.TOKEN_NEWLINE)
	}
	if p.check(lexer.TOKEN_INDENT) {
		p.skipBlock()
	}
}

// skipStatement discards the rest of the logical line and any block it owns
func (p *Parser) skipStatement() {
	p.opaque(isStatementEnd)
	p.match(lexer.TOKEN_SEMICOLON)
	p.endStatement()
}

// skipBlock consumes an INDENT and everything up to its matching DEDENT
func (p *Parser) skipBlock() {
	depth := 0
	for !p.isAtEnd() {
		switch p.advance().Type {
		case lexer.TOKEN_INDENT:
			depth++
		case lexer.TOKEN_DEDENT:
			depth--
		}
		if depth <= 0 {
			return
		}
	}
}

func isStatementEnd(tok lexer.Token) bool {
	return tok.Type == lexer.TOKEN_NEWLINE ||
		tok.Type == lexer.TOKEN_SEMICOLON ||
		tok.Type == lexer.TOKEN_EOF
}
