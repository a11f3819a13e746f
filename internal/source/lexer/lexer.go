// Package lexer provides lexical analysis for plugin package sources.
// It tokenizes class definition modules and UI configuration scripts into a
// single token vocabulary so one parser can read both.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// Lexer tokenizes source text in one Dialect.
//
// Lexer instances are NOT thread-safe; create one per source via New().
type Lexer struct {
	source  string     // Source code to tokenize
	dialect Dialect    // Concrete syntax being read
	start   int        // Start position of current token
	current int        // Current position in source
	line    int        // Current line number (1-indexed)
	column  int        // Current column number (1-indexed)
	tokens  []Token    // Collected tokens
	errors  []LexError // Collected errors

	// Definition dialect layout state
	depth       int   // Bracket nesting; newlines inside brackets are not significant
	indents     []int // Indentation stack, always starts with 0
	atLineStart bool  // Next character begins a physical line
}

// New creates a new Lexer for the given source code
func New(source string, dialect Dialect) *Lexer {
	return &Lexer{
		source:      source,
		dialect:     dialect,
		line:        1,
		column:      1,
		tokens:      make([]Token, 0),
		errors:      make([]LexError, 0),
		indents:     []int{0},
		atLineStart: true,
	}
}

// ScanTokens tokenizes the entire source and returns tokens and errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		if l.dialect == DialectDefinition && l.atLineStart && l.depth == 0 {
			l.indentation()
			continue
		}
		l.start = l.current
		l.scanToken()
	}

	if l.dialect == DialectDefinition {
		if n := len(l.tokens); n > 0 && l.tokens[n-1].Type != TOKEN_NEWLINE && l.tokens[n-1].Type != TOKEN_DEDENT {
			l.emit(TOKEN_NEWLINE, "", nil)
		}
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(TOKEN_DEDENT, "", nil)
		}
		if l.depth > 0 {
			l.addError("Unclosed bracket at end of input")
		}
	}

	// Add EOF token
	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, l.errors
}

// indentation measures the leading whitespace of a physical line and emits
// INDENT/DEDENT tokens. Blank and comment-only lines are consumed whole.
func (l *Lexer) indentation() {
	width := 0
measure:
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ':
			width++
		case '\t':
			width = (width/8 + 1) * 8
		case '\f':
			width = 0
		default:
			break measure
		}
		l.advance()
	}
	if l.isAtEnd() {
		return
	}

	switch l.peek() {
	case '\n', '\r', '#':
		for !l.isAtEnd() && l.peek() != '\n' {
			l.advance()
		}
		if !l.isAtEnd() {
			l.advance()
			l.newline()
		}
		return
	}

	l.atLineStart = false
	l.start = l.current

	top := l.indents[len(l.indents)-1]
	if width > top {
		l.indents = append(l.indents, width)
		l.emit(TOKEN_INDENT, "", nil)
		return
	}
	for width < top {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(TOKEN_DEDENT, "", nil)
		top = l.indents[len(l.indents)-1]
	}
	if width != top {
		l.addError("Unindent does not match any outer indentation level")
	}
}

// scanToken processes the next token.
//
//nolint:gocyclo,cyclop // Lexer dispatch function - complexity is inherent to the pattern
func (l *Lexer) scanToken() {
	c := l.advance()

	switch {
	case c == '(' || c == ')' || c == '{' || c == '}' || c == '[' || c == ']':
		l.scanDelimiter(c)
	case c == ' ' || c == '\r' || c == '\t' || c == '\f':
		// Ignore whitespace
	case c == '\n':
		if l.dialect == DialectDefinition && l.depth == 0 {
			l.addToken(TOKEN_NEWLINE)
			l.atLineStart = true
		}
		l.newline()
	case c == '\\' && l.dialect == DialectDefinition:
		l.lineContinuation()
	case c == '#' && l.dialect == DialectDefinition:
		l.comment()
	case c == '/' && l.dialect == DialectScript && l.peek() == '/':
		l.comment()
	case c == '/' && l.dialect == DialectScript && l.peek() == '*':
		l.blockComment()
	case c == '\'' || c == '"':
		l.string(c, false)
	case c == '`' && l.dialect == DialectScript:
		l.string(c, true)
	case c == '.' && l.isDigit(l.peek()):
		l.number()
	case l.isDigit(c):
		l.number()
	case l.isAlpha(c):
		l.identifier()
	default:
		l.scanOperator(c)
	}
}

// scanDelimiter handles delimiter tokens: ( ) { } [ ]
func (l *Lexer) scanDelimiter(c byte) {
	switch c {
	case '(':
		l.open(TOKEN_LPAREN)
	case ')':
		l.close(TOKEN_RPAREN)
	case '{':
		l.open(TOKEN_LBRACE)
	case '}':
		l.close(TOKEN_RBRACE)
	case '[':
		l.open(TOKEN_LBRACKET)
	case ']':
		l.close(TOKEN_RBRACKET)
	}
}

func (l *Lexer) open(tokenType TokenType) {
	l.depth++
	l.addToken(tokenType)
}

func (l *Lexer) close(tokenType TokenType) {
	if l.depth > 0 {
		l.depth--
	}
	l.addToken(tokenType)
}

// scanOperator handles punctuation, preferring the longest operator match
func (l *Lexer) scanOperator(c byte) {
	rest := l.source[l.start:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			for i := 1; i < len(op); i++ {
				l.advance()
			}
			switch op {
			case "**":
				l.addToken(TOKEN_DOUBLE_STAR)
			case "||":
				l.addToken(TOKEN_DOUBLE_PIPE)
			default:
				l.addToken(TOKEN_OPERATOR)
			}
			return
		}
	}

	switch c {
	case '@':
		l.addToken(TOKEN_AT)
	case ':':
		l.addToken(TOKEN_COLON)
	case ';':
		l.addToken(TOKEN_SEMICOLON)
	case '.':
		l.addToken(TOKEN_DOT)
	case ',':
		l.addToken(TOKEN_COMMA)
	case '=':
		l.addToken(TOKEN_EQUALS)
	case '+':
		l.addToken(TOKEN_PLUS)
	case '-':
		l.addToken(TOKEN_MINUS)
	case '*':
		l.addToken(TOKEN_STAR)
	case '%', '&', '|', '^', '~', '<', '>', '!', '/', '?':
		l.addToken(TOKEN_OPERATOR)
	default:
		l.addError(fmt.Sprintf("Unexpected character: '%c'", c))
	}
}

// lineContinuation handles a backslash that joins two physical lines
func (l *Lexer) lineContinuation() {
	if l.peek() == '\r' {
		l.advance()
	}
	if l.peek() != '\n' {
		l.addError("Unexpected character after line continuation")
		return
	}
	l.advance()
	l.newline()
}

// comment consumes a single-line comment
func (l *Lexer) comment() {
	for l.peek() != '\n' && !l.isAtEnd() {
		l.advance()
	}
}

// blockComment consumes a /* ... */ comment
func (l *Lexer) blockComment() {
	l.advance() // *
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.advance() == '\n' {
			l.newline()
		}
	}
	l.addError("Unterminated block comment")
}

// string handles quoted strings. The opening quote has been consumed.
// Definition strings may be triple-quoted; raw strings keep escapes verbatim.
func (l *Lexer) string(quote byte, multiline bool) {
	l.quoted(quote, multiline, false)
}

func (l *Lexer) quoted(quote byte, multiline, raw bool) {
	startLine := l.line
	startColumn := l.column - (l.current - l.start)

	triple := false
	if l.dialect == DialectDefinition && l.peek() == quote && l.peekNext() == quote {
		l.advance()
		l.advance()
		triple = true
		multiline = true
	}

	value := strings.Builder{}
	for {
		if l.isAtEnd() {
			l.errorAt(startLine, startColumn, fmt.Sprintf("Unterminated string starting at %d:%d", startLine, startColumn))
			return
		}

		c := l.peek()
		if c == quote {
			if !triple {
				l.advance()
				break
			}
			if l.peekNext() == quote && l.peekNextNext() == quote {
				l.advance()
				l.advance()
				l.advance()
				break
			}
			value.WriteByte(l.advance())
			continue
		}

		if c == '\n' {
			if !multiline {
				l.errorAt(startLine, startColumn, fmt.Sprintf("Unterminated string starting at %d:%d", startLine, startColumn))
				return
			}
			value.WriteByte(l.advance())
			l.newline()
			continue
		}

		if c == '\\' {
			l.advance()
			if l.isAtEnd() {
				continue
			}
			escaped := l.advance()
			if raw {
				value.WriteByte('\\')
				value.WriteByte(escaped)
				if escaped == '\n' {
					l.newline()
				}
				continue
			}
			switch escaped {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '0':
				value.WriteByte(0)
			case '\\', '\'', '"', '`':
				value.WriteByte(escaped)
			case '\n':
				// Escaped newline joins lines
				l.newline()
			default:
				// Unknown escape sequence - keep as-is
				value.WriteByte('\\')
				value.WriteByte(escaped)
			}
			continue
		}

		value.WriteByte(l.advance())
	}

	l.tokens = append(l.tokens, Token{
		Type:    TOKEN_STRING_LITERAL,
		Lexeme:  l.source[l.start:l.current],
		Literal: value.String(),
		Line:    startLine,
		Column:  startColumn,
	})
}

// number handles integer and float literals, including base prefixes and
// the legacy long (L) and imaginary (j) suffixes of the definition dialect
func (l *Lexer) number() {
	isFloat := l.source[l.start] == '.'

	if l.source[l.start] == '0' && strings.ContainsRune("xXoObB", rune(l.peek())) {
		l.advance()
		for l.isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	} else {
		for l.isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}

		if l.peek() == '.' && !isFloat {
			isFloat = true
			l.advance()
			for l.isDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}

		if l.peek() == 'e' || l.peek() == 'E' {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			if !l.isDigit(l.peek()) {
				l.addError("Invalid number: expected digits after exponent")
				return
			}
			for l.isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	lexeme := l.source[l.start:l.current]
	switch l.peek() {
	case 'l', 'L':
		l.advance()
	case 'j', 'J':
		l.advance()
		isFloat = true
	}

	if !isFloat {
		if value, err := strconv.ParseInt(lexeme, 0, 64); err == nil {
			l.addTokenWithLiteral(TOKEN_INT_LITERAL, value)
			return
		}
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(lexeme, "_", ""), 64)
	if err != nil {
		l.addError(fmt.Sprintf("Invalid number literal: %s", lexeme))
		return
	}
	l.addTokenWithLiteral(TOKEN_FLOAT_LITERAL, value)
}

// identifier handles identifiers, keywords and prefixed strings
func (l *Lexer) identifier() {
	for l.isAlphaNumeric(l.peek()) {
		l.advance()
	}

	text := l.source[l.start:l.current]

	if l.dialect == DialectDefinition && (l.peek() == '\'' || l.peek() == '"') && isStringPrefix(text) {
		quote := l.advance()
		l.quoted(quote, false, strings.ContainsAny(text, "rR"))
		return
	}

	keywords := DefinitionKeywords
	if l.dialect == DialectScript {
		keywords = ScriptKeywords
	}

	tokenType, isKeyword := keywords[text]
	if !isKeyword {
		l.addToken(TOKEN_IDENTIFIER)
		return
	}

	switch tokenType {
	case TOKEN_TRUE:
		l.addTokenWithLiteral(tokenType, true)
	case TOKEN_FALSE:
		l.addTokenWithLiteral(tokenType, false)
	default:
		l.addToken(tokenType)
	}
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "ur", "fr", "rf":
		return true
	}
	return false
}

// Helper methods

// isAtEnd checks if we've reached the end of the source
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	c := l.source[l.current]
	l.current++
	l.column++
	return c
}

// newline records that a line break was consumed
func (l *Lexer) newline() {
	l.line++
	l.column = 1
}

// peek returns the current character without consuming it
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the next character without consuming
func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// peekNextNext returns the character two positions ahead
func (l *Lexer) peekNextNext() byte {
	if l.current+2 >= len(l.source) {
		return 0
	}
	return l.source[l.current+2]
}

// isDigit checks if a character is a digit
func (l *Lexer) isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *Lexer) isHexDigit(c byte) bool {
	return l.isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isAlpha checks if a character can start an identifier.
// Bytes of multi-byte UTF-8 sequences are accepted as identifier characters.
func (l *Lexer) isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_' ||
		(c == '$' && l.dialect == DialectScript) ||
		c >= 0x80
}

// isAlphaNumeric checks if a character can continue an identifier
func (l *Lexer) isAlphaNumeric(c byte) bool {
	return l.isAlpha(c) || l.isDigit(c)
}

// addToken adds a token with the current lexeme
func (l *Lexer) addToken(tokenType TokenType) {
	l.addTokenWithLiteral(tokenType, nil)
}

// addTokenWithLiteral adds a token with a literal value
func (l *Lexer) addTokenWithLiteral(tokenType TokenType, literal interface{}) {
	l.emit(tokenType, l.source[l.start:l.current], literal)
}

func (l *Lexer) emit(tokenType TokenType, lexeme string, literal interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    l.line,
		Column:  l.column - (l.current - l.start),
	})
}

// addError records a lexical error at the current token
func (l *Lexer) addError(message string) {
	l.errorAt(l.line, l.column-(l.current-l.start), message)
}

func (l *Lexer) errorAt(line, column int, message string) {
	lexeme := ""
	if l.start < len(l.source) {
		end := l.current
		if end > l.start+20 {
			end = l.start + 20
		}
		lexeme = l.source[l.start:end]
	}

	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    line,
		Column:  column,
		Lexeme:  lexeme,
	})
}

// Tokenize is a convenience wrapper around New(source, dialect).ScanTokens()
func Tokenize(source string, dialect Dialect) ([]Token, []LexError) {
	return New(source, dialect).ScanTokens()
}
