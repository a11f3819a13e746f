// Package parser turns token streams from either source dialect into the
// shared AST. It uses recursive descent; expressions outside the modelled
// grammar are captured as opaque nodes instead of failing the parse.
package parser

import (
	"fmt"
	"strings"

	"github.com/zenpack-tools/zplc/internal/source/ast"
	"github.com/zenpack-tools/zplc/internal/source/lexer"
)

// ParseError represents an error encountered during parsing
type ParseError struct {
	Message  string
	Location ast.SourceLocation
	Token    lexer.Token
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %d:%d: %s (near '%s')",
		e.Location.Line, e.Location.Column, e.Message, e.Token.Lexeme)
}

// NewParseError creates a new parse error
func NewParseError(message string, token lexer.Token) ParseError {
	return ParseError{
		Message: message,
		Location: ast.SourceLocation{
			Line:   token.Line,
			Column: token.Column,
		},
		Token: token,
	}
}

// SourceError aggregates lexical and syntax errors of one source file
type SourceError struct {
	File        string
	LexErrors   []lexer.LexError
	ParseErrors []ParseError
}

// Error implements the error interface, reporting the first few problems
func (e *SourceError) Error() string {
	msgs := make([]string, 0, len(e.LexErrors)+len(e.ParseErrors))
	for _, le := range e.LexErrors {
		msgs = append(msgs, le.Error())
	}
	for i := range e.ParseErrors {
		msgs = append(msgs, e.ParseErrors[i].Error())
	}

	const limit = 3
	more := ""
	if len(msgs) > limit {
		more = fmt.Sprintf(" (and %d more)", len(msgs)-limit)
		msgs = msgs[:limit]
	}

	name := e.File
	if name == "" {
		name = "<source>"
	}
	return fmt.Sprintf("%s: %s%s", name, strings.Join(msgs, "; "), more)
}
