package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenType = iota
	// TOKEN_ERROR represents a lexical error encountered during scanning.
	TOKEN_ERROR
	// TOKEN_NEWLINE ends a logical line (definition dialect only).
	TOKEN_NEWLINE
	// TOKEN_INDENT opens an indented block (definition dialect only).
	TOKEN_INDENT
	// TOKEN_DEDENT closes an indented block (definition dialect only).
	TOKEN_DEDENT

	// Keywords - Definition dialect
	TOKEN_CLASS // class
	TOKEN_DEF   // def

	// Keywords - Script dialect
	TOKEN_FUNCTION // function

	// Literals
	TOKEN_IDENTIFIER     // meta_type, Ext, _t, etc.
	TOKEN_INT_LITERAL    // 42, 0x1f, 0o755
	TOKEN_FLOAT_LITERAL  // 3.14, 1e10
	TOKEN_STRING_LITERAL // 'abc', "abc", '''abc'''
	TOKEN_TRUE           // True, true
	TOKEN_FALSE          // False, false
	TOKEN_NULL           // None, null, undefined

	// Operators - Single character
	TOKEN_AT        // @
	TOKEN_COLON     // :
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .
	TOKEN_COMMA     // ,
	TOKEN_EQUALS    // =
	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *

	// Operators - Two character
	TOKEN_DOUBLE_STAR // **
	TOKEN_DOUBLE_PIPE // ||

	// TOKEN_OPERATOR covers every other operator; the lexeme carries it.
	TOKEN_OPERATOR

	// Delimiters
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }
	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
)

// TokenTypeNames maps token types to their string representations
var TokenTypeNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ERROR:          "ERROR",
	TOKEN_NEWLINE:        "NEWLINE",
	TOKEN_INDENT:         "INDENT",
	TOKEN_DEDENT:         "DEDENT",
	TOKEN_CLASS:          "CLASS",
	TOKEN_DEF:            "DEF",
	TOKEN_FUNCTION:       "FUNCTION",
	TOKEN_IDENTIFIER:     "IDENTIFIER",
	TOKEN_INT_LITERAL:    "INT_LITERAL",
	TOKEN_FLOAT_LITERAL:  "FLOAT_LITERAL",
	TOKEN_STRING_LITERAL: "STRING_LITERAL",
	TOKEN_TRUE:           "TRUE",
	TOKEN_FALSE:          "FALSE",
	TOKEN_NULL:           "NULL",
	TOKEN_AT:             "AT",
	TOKEN_COLON:          "COLON",
	TOKEN_SEMICOLON:      "SEMICOLON",
	TOKEN_DOT:            "DOT",
	TOKEN_COMMA:          "COMMA",
	TOKEN_EQUALS:         "EQUALS",
	TOKEN_PLUS:           "PLUS",
	TOKEN_MINUS:          "MINUS",
	TOKEN_STAR:           "STAR",
	TOKEN_DOUBLE_STAR:    "DOUBLE_STAR",
	TOKEN_DOUBLE_PIPE:    "DOUBLE_PIPE",
	TOKEN_OPERATOR:       "OPERATOR",
	TOKEN_LBRACE:         "LBRACE",
	TOKEN_RBRACE:         "RBRACE",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_LBRACKET:       "LBRACKET",
	TOKEN_RBRACKET:       "RBRACKET",
}

// String returns the string representation of a TokenType
func (t TokenType) String() string {
	if name, ok := TokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", t)
}

// Token represents a single lexical token
type Token struct {
	Type    TokenType   // The type of the token
	Lexeme  string      // The raw text of the token
	Literal interface{} // The parsed value (for literals)
	Line    int         // Line number (1-indexed)
	Column  int         // Column number (1-indexed)
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s '%s' (%v) at %d:%d",
			t.Type.String(), t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s '%s' at %d:%d",
		t.Type.String(), t.Lexeme, t.Line, t.Column)
}

// Dialect selects the concrete syntax the lexer accepts.
type Dialect int

const (
	// DialectDefinition is the indentation-sensitive class definition language.
	DialectDefinition Dialect = iota
	// DialectScript is the brace-delimited UI configuration script language.
	DialectScript
)

// String returns the dialect name
func (d Dialect) String() string {
	switch d {
	case DialectDefinition:
		return "definition"
	case DialectScript:
		return "script"
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// DefinitionKeywords maps reserved words of the definition dialect to token types.
// Words not listed here are plain identifiers.
var DefinitionKeywords = map[string]TokenType{
	"class": TOKEN_CLASS,
	"def":   TOKEN_DEF,
	"True":  TOKEN_TRUE,
	"False": TOKEN_FALSE,
	"None":  TOKEN_NULL,
}

// ScriptKeywords maps reserved words of the script dialect to token types.
var ScriptKeywords = map[string]TokenType{
	"function":  TOKEN_FUNCTION,
	"true":      TOKEN_TRUE,
	"false":     TOKEN_FALSE,
	"null":      TOKEN_NULL,
	"undefined": TOKEN_NULL,
}

// operators lists multi-character operators, longest first.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "===", "!==", "...",
	"**", "//", "||", "&&", "==", "!=", "<>", "<=", ">=", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "->", "=>", "++", "--",
}

// LexError represents an error encountered during lexical analysis
type LexError struct {
	Message string // Error message
	Line    int    // Line number where error occurred
	Column  int    // Column number where error occurred
	Lexeme  string // The problematic text
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("Lexical error at %d:%d: %s (near '%s')",
		e.Line, e.Column, e.Message, e.Lexeme)
}
