// Package ast defines the syntax tree shared by the definition-language and
// UI-script parsers. Expressions are dialect neutral: a quoted string is a
// StringLit whether it came from a class body or a panel configuration.
package ast

import "github.com/zenpack-tools/zplc/internal/source/lexer"

// SourceLocation tracks the position of an AST node in source code
type SourceLocation struct {
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// TokenLocation returns the location of a token
func TokenLocation(tok lexer.Token) SourceLocation {
	return SourceLocation{Line: tok.Line, Column: tok.Column}
}

// Node is the base interface for all AST nodes
type Node interface {
	Location() SourceLocation
	node()
}

// StmtNode is a statement inside a module or class body
type StmtNode interface {
	Node
	stmtNode()
}

// Module is the root node of a parsed definition-language source
type Module struct {
	Body []StmtNode
	Loc  SourceLocation
}

func (m *Module) node() {}

// Location returns the source location of the module.
func (m *Module) Location() SourceLocation {
	return m.Loc
}

// Classes returns the top-level class definitions in source order
func (m *Module) Classes() []*ClassDef {
	classes := make([]*ClassDef, 0)
	for _, stmt := range m.Body {
		if class, ok := stmt.(*ClassDef); ok {
			classes = append(classes, class)
		}
	}
	return classes
}

// ClassDef represents a class definition
type ClassDef struct {
	Name  string
	Bases []ExprNode
	Body  []StmtNode
	Loc   SourceLocation
}

func (c *ClassDef) node()     {}
func (c *ClassDef) stmtNode() {}

// Location returns the source location of the class definition.
func (c *ClassDef) Location() SourceLocation {
	return c.Loc
}

// Assignments returns the simple assignments of the class body in order
func (c *ClassDef) Assignments() []*Assign {
	assigns := make([]*Assign, 0)
	for _, stmt := range c.Body {
		if assign, ok := stmt.(*Assign); ok {
			assigns = append(assigns, assign)
		}
	}
	return assigns
}

// Assign represents `a = b = value`. Only plain-name targets are modelled.
type Assign struct {
	Targets []string
	Value   ExprNode
	Loc     SourceLocation
}

func (a *Assign) node()     {}
func (a *Assign) stmtNode() {}

// Location returns the source location of the assignment.
func (a *Assign) Location() SourceLocation {
	return a.Loc
}

// OtherStmt is any statement the model does not need (imports, functions,
// nested blocks, expression statements). Keyword holds the leading word.
type OtherStmt struct {
	Keyword string
	Loc     SourceLocation
}

func (o *OtherStmt) node()     {}
func (o *OtherStmt) stmtNode() {}

// Location returns the source location of the statement.
func (o *OtherStmt) Location() SourceLocation {
	return o.Loc
}
