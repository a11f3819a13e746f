package parser

import (
	"fmt"
	"strings"

	"github.com/zenpack-tools/zplc/internal/source/ast"
	"github.com/zenpack-tools/zplc/internal/source/lexer"
)

// ParseExpression parses a single expression at the current position.
// It returns nil when the tokens do not form a modelled expression; the
// reason is available from Errors.
func (p *Parser) ParseExpression() ast.ExprNode {
	return p.parseExpression()
}

// ParseObject parses the object literal (or dict display) starting at the
// current position, which must be a '{'.
func (p *Parser) ParseObject() (*ast.DictExpr, []ParseError) {
	errCount := len(p.errors)
	if !p.check(lexer.TOKEN_LBRACE) {
		p.error(p.peek(), "Expected '{' to start an object literal")
		return nil, p.errors[errCount:]
	}

	expr := p.parseBrace()
	dict, ok := expr.(*ast.DictExpr)
	if !ok || len(p.errors) > errCount {
		return nil, p.errors[errCount:]
	}
	return dict, nil
}

// ParseCallArguments parses a parenthesized argument list starting at the
// current position, which must be a '('.
func (p *Parser) ParseCallArguments() ([]ast.ExprNode, []ParseError) {
	errCount := len(p.errors)
	args, _ := p.parseArguments()
	if len(p.errors) > errCount {
		return nil, p.errors[errCount:]
	}
	return args, nil
}

// parseExpressionList parses `a, b, c` as a tuple, or a single expression
func (p *Parser) parseExpressionList() ast.ExprNode {
	start := p.peek()
	first := p.parseExpression()
	if first == nil || !p.check(lexer.TOKEN_COMMA) {
		return first
	}

	tuple := &ast.TupleExpr{
		Elements: []ast.ExprNode{first},
		Loc:      ast.TokenLocation(start),
	}
	for p.match(lexer.TOKEN_COMMA) {
		if isStatementEnd(p.peek()) {
			break
		}
		el := p.parseExpression()
		if el == nil {
			return nil
		}
		tuple.Elements = append(tuple.Elements, el)
	}
	return tuple
}

// parseExpression parses a left-associative chain of binary operators.
// Precedence is not modelled; the model only inspects the outermost
// operator (`Base._relations + (...)`).
func (p *Parser) parseExpression() ast.ExprNode {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		op, ok := p.binaryOperator()
		if !ok {
			return left
		}
		opToken := p.previous()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Left:     left,
			Operator: op,
			Right:    right,
			Loc:      ast.TokenLocation(opToken),
		}
	}
}

// binaryOperator consumes an infix operator if one is next
func (p *Parser) binaryOperator() (string, bool) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_PLUS, lexer.TOKEN_MINUS, lexer.TOKEN_STAR,
		lexer.TOKEN_DOUBLE_STAR, lexer.TOKEN_DOUBLE_PIPE, lexer.TOKEN_OPERATOR:
		p.advance()
		return tok.Lexeme, true
	case lexer.TOKEN_IDENTIFIER:
		if p.dialect != lexer.DialectDefinition {
			return "", false
		}
		switch tok.Lexeme {
		case "and", "or", "in":
			p.advance()
			return tok.Lexeme, true
		case "is":
			p.advance()
			if p.checkWord("not") {
				p.advance()
				return "is not", true
			}
			return "is", true
		case "not":
			if next := p.peekAt(1); next.Type == lexer.TOKEN_IDENTIFIER && next.Lexeme == "in" {
				p.advance()
				p.advance()
				return "not in", true
			}
		}
	}
	return "", false
}

// parseUnary parses prefix operators
func (p *Parser) parseUnary() ast.ExprNode {
	tok := p.peek()

	prefix := ""
	switch {
	case tok.Type == lexer.TOKEN_MINUS || tok.Type == lexer.TOKEN_PLUS:
		prefix = tok.Lexeme
	case tok.Type == lexer.TOKEN_OPERATOR && (tok.Lexeme == "~" || tok.Lexeme == "!"):
		prefix = tok.Lexeme
	case tok.Type == lexer.TOKEN_IDENTIFIER && tok.Lexeme == "not" && p.dialect == lexer.DialectDefinition:
		prefix = "not"
	case tok.Type == lexer.TOKEN_IDENTIFIER && tok.Lexeme == "new" && p.dialect == lexer.DialectScript:
		prefix = "new"
	}

	if prefix == "" {
		return p.parsePostfix()
	}

	p.advance()
	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpr{Operator: prefix, Operand: operand, Loc: ast.TokenLocation(tok)}
}

// parsePostfix parses attribute access, calls and subscripts
func (p *Parser) parsePostfix() ast.ExprNode {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.check(lexer.TOKEN_DOT):
			dot := p.advance()
			name := p.peek()
			if !isWordToken(name) {
				p.error(name, "Expected attribute name after '.'")
				return nil
			}
			p.advance()
			expr = &ast.Attribute{Value: expr, Name: name.Lexeme, Loc: ast.TokenLocation(dot)}
		case p.check(lexer.TOKEN_LPAREN):
			open := p.peek()
			args, keywords := p.parseArguments()
			if args == nil {
				return nil
			}
			expr = &ast.Call{Func: expr, Args: args, Keywords: keywords, Loc: ast.TokenLocation(open)}
		case p.check(lexer.TOKEN_LBRACKET):
			open := p.advance()
			index := p.parseExpression()
			if index == nil {
				return nil
			}
			if !p.match(lexer.TOKEN_RBRACKET) {
				p.error(p.peek(), "Expected ']' after subscript")
				return nil
			}
			expr = &ast.Subscript{Value: expr, Index: index, Loc: ast.TokenLocation(open)}
		default:
			return expr
		}
	}
}

// parsePrimary parses literals, names and bracketed displays
func (p *Parser) parsePrimary() ast.ExprNode {
	tok := p.peek()
	loc := ast.TokenLocation(tok)

	switch tok.Type {
	case lexer.TOKEN_STRING_LITERAL:
		var value strings.Builder
		for p.check(lexer.TOKEN_STRING_LITERAL) {
			s, _ := p.advance().Literal.(string)
			value.WriteString(s)
		}
		return &ast.StringLit{Value: value.String(), Loc: loc}
	case lexer.TOKEN_INT_LITERAL, lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		return &ast.NumberLit{Value: tok.Literal, Raw: tok.Lexeme, Loc: loc}
	case lexer.TOKEN_TRUE, lexer.TOKEN_FALSE:
		p.advance()
		return &ast.BoolLit{Value: tok.Type == lexer.TOKEN_TRUE, Raw: tok.Lexeme, Loc: loc}
	case lexer.TOKEN_NULL:
		p.advance()
		return &ast.NullLit{Raw: tok.Lexeme, Loc: loc}
	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		return &ast.Ident{Name: tok.Lexeme, Loc: loc}
	case lexer.TOKEN_LPAREN:
		return p.parseParen()
	case lexer.TOKEN_LBRACKET:
		return p.parseList()
	case lexer.TOKEN_LBRACE:
		return p.parseBrace()
	case lexer.TOKEN_FUNCTION:
		return p.parseFunction()
	}

	p.error(tok, fmt.Sprintf("Expected expression, got %s", tok.Type))
	return nil
}

// parseArguments parses `(arg, name=value, *rest, **kw)`.
// It returns nil args when the list is malformed.
func (p *Parser) parseArguments() ([]ast.ExprNode, []*ast.KeywordArg) {
	p.consume(lexer.TOKEN_LPAREN, "Expected '('")
	args := make([]ast.ExprNode, 0)
	keywords := make([]*ast.KeywordArg, 0)

	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		switch {
		case p.check(lexer.TOKEN_STAR) || p.check(lexer.TOKEN_DOUBLE_STAR):
			star := p.advance()
			value := p.parseExpression()
			if value == nil {
				return nil, nil
			}
			args = append(args, &ast.UnaryExpr{Operator: star.Lexeme, Operand: value, Loc: ast.TokenLocation(star)})
		case p.check(lexer.TOKEN_IDENTIFIER) && p.peekAt(1).Type == lexer.TOKEN_EQUALS:
			name := p.advance().Lexeme
			p.advance() // =
			value := p.parseExpression()
			if value == nil {
				return nil, nil
			}
			keywords = append(keywords, &ast.KeywordArg{Name: name, Value: value})
		default:
			value := p.parseExpression()
			if value == nil {
				return nil, nil
			}
			args = append(args, value)
		}

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.match(lexer.TOKEN_RPAREN) {
		p.error(p.peek(), "Expected ')' after arguments")
		return nil, nil
	}
	return args, keywords
}

// parseParen parses a parenthesized expression or a tuple
func (p *Parser) parseParen() ast.ExprNode {
	open := p.advance()

	if p.match(lexer.TOKEN_RPAREN) {
		return &ast.TupleExpr{Elements: make([]ast.ExprNode, 0), Loc: ast.TokenLocation(open)}
	}

	first := p.parseExpression()
	if first == nil {
		return nil
	}

	if !p.check(lexer.TOKEN_COMMA) {
		if !p.match(lexer.TOKEN_RPAREN) {
			p.error(p.peek(), "Expected ')'")
			return nil
		}
		return first
	}

	elements, ok := p.parseElements(first, lexer.TOKEN_RPAREN)
	if !ok {
		return nil
	}
	return &ast.TupleExpr{Elements: elements, Loc: ast.TokenLocation(open)}
}

// parseList parses a list display or array literal
func (p *Parser) parseList() ast.ExprNode {
	open := p.advance()

	if p.match(lexer.TOKEN_RBRACKET) {
		return &ast.ListExpr{Elements: make([]ast.ExprNode, 0), Loc: ast.TokenLocation(open)}
	}

	first := p.parseExpression()
	if first == nil {
		return nil
	}

	elements, ok := p.parseElements(first, lexer.TOKEN_RBRACKET)
	if !ok {
		return nil
	}
	return &ast.ListExpr{Elements: elements, Loc: ast.TokenLocation(open)}
}

// parseElements parses the remainder of a comma-separated display whose
// first element is already parsed, through the closing delimiter.
func (p *Parser) parseElements(first ast.ExprNode, closer lexer.TokenType) ([]ast.ExprNode, bool) {
	elements := []ast.ExprNode{first}

	for p.match(lexer.TOKEN_COMMA) {
		if p.check(closer) {
			break
		}
		el := p.parseExpression()
		if el == nil {
			return nil, false
		}
		elements = append(elements, el)
	}

	if !p.match(closer) {
		p.error(p.peek(), fmt.Sprintf("Expected %s to close display", closer))
		return nil, false
	}
	return elements, true
}

// parseBrace parses a dict display, set display or object literal
func (p *Parser) parseBrace() ast.ExprNode {
	open := p.advance()
	loc := ast.TokenLocation(open)

	if p.match(lexer.TOKEN_RBRACE) {
		return &ast.DictExpr{Entries: make([]*ast.DictEntry, 0), Loc: loc}
	}

	if p.dialect == lexer.DialectScript {
		return p.parseObjectEntries(loc)
	}

	first := p.parseExpression()
	if first == nil {
		return nil
	}

	if !p.check(lexer.TOKEN_COLON) {
		elements, ok := p.parseElements(first, lexer.TOKEN_RBRACE)
		if !ok {
			return nil
		}
		return &ast.SetExpr{Elements: elements, Loc: loc}
	}

	dict := &ast.DictExpr{Entries: make([]*ast.DictEntry, 0), Loc: loc}
	key := first
	for {
		if !p.match(lexer.TOKEN_COLON) {
			p.error(p.peek(), "Expected ':' after dict key")
			return nil
		}
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		dict.Entries = append(dict.Entries, &ast.DictEntry{Key: key, Value: value})

		if !p.match(lexer.TOKEN_COMMA) || p.check(lexer.TOKEN_RBRACE) {
			break
		}
		if key = p.parseExpression(); key == nil {
			return nil
		}
	}

	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(p.peek(), "Expected '}' to close dict")
		return nil
	}
	return dict
}

// parseObjectEntries parses script object literal entries after the '{'.
// A value outside the modelled grammar becomes an Opaque node so one odd
// entry does not lose the rest of the object.
func (p *Parser) parseObjectEntries(loc ast.SourceLocation) ast.ExprNode {
	dict := &ast.DictExpr{Entries: make([]*ast.DictEntry, 0), Loc: loc}

	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		keyToken := p.peek()
		var key ast.ExprNode
		switch {
		case keyToken.Type == lexer.TOKEN_STRING_LITERAL:
			s, _ := keyToken.Literal.(string)
			key = &ast.StringLit{Value: s, Loc: ast.TokenLocation(keyToken)}
		case keyToken.Type == lexer.TOKEN_INT_LITERAL || keyToken.Type == lexer.TOKEN_FLOAT_LITERAL:
			key = &ast.NumberLit{Value: keyToken.Literal, Raw: keyToken.Lexeme, Loc: ast.TokenLocation(keyToken)}
		case isWordToken(keyToken):
			key = &ast.Ident{Name: keyToken.Lexeme, Loc: ast.TokenLocation(keyToken)}
		default:
			p.error(keyToken, fmt.Sprintf("Expected object key, got %s", keyToken.Type))
			return nil
		}
		p.advance()

		var value ast.ExprNode
		switch {
		case p.match(lexer.TOKEN_COLON):
			var ok bool
			value, ok = p.try(func() ast.ExprNode {
				v := p.parseExpression()
				if !p.check(lexer.TOKEN_COMMA) && !p.check(lexer.TOKEN_RBRACE) {
					p.error(p.peek(), "Expected ',' or '}' after object value")
				}
				return v
			})
			if !ok {
				value = p.opaque(func(tok lexer.Token) bool { return tok.Type == lexer.TOKEN_COMMA })
			}
		case p.check(lexer.TOKEN_LPAREN):
			// Method shorthand: name(params) { body }
			p.skipBalanced()
			if p.check(lexer.TOKEN_LBRACE) {
				p.skipBalanced()
			}
			value = &ast.FunctionLit{Loc: key.Location()}
		default:
			// Shorthand property: { name }
			value = &ast.Ident{Name: keyToken.Lexeme, Loc: key.Location()}
		}
		dict.Entries = append(dict.Entries, &ast.DictEntry{Key: key, Value: value})

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(p.peek(), "Expected '}' to close object literal")
		return nil
	}
	return dict
}

// parseFunction parses a script function literal, skipping its body
func (p *Parser) parseFunction() ast.ExprNode {
	fn := p.advance()
	lit := &ast.FunctionLit{Params: make([]string, 0), Loc: ast.TokenLocation(fn)}

	p.match(lexer.TOKEN_IDENTIFIER) // optional name

	if !p.match(lexer.TOKEN_LPAREN) {
		p.error(p.peek(), "Expected '(' after function")
		return nil
	}
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		if tok := p.advance(); tok.Type == lexer.TOKEN_IDENTIFIER {
			lit.Params = append(lit.Params, tok.Lexeme)
		}
	}
	if !p.match(lexer.TOKEN_RPAREN) {
		p.error(p.peek(), "Expected ')' after parameters")
		return nil
	}

	if !p.check(lexer.TOKEN_LBRACE) {
		p.error(p.peek(), "Expected '{' to start function body")
		return nil
	}
	p.skipBalanced()
	return lit
}

// isWordToken reports whether tok can serve as a property or key name;
// keywords are valid property names in both dialects
func isWordToken(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.TOKEN_IDENTIFIER, lexer.TOKEN_CLASS, lexer.TOKEN_DEF, lexer.TOKEN_FUNCTION,
		lexer.TOKEN_TRUE, lexer.TOKEN_FALSE, lexer.TOKEN_NULL:
		return true
	}
	return false
}
