package ast

// ExprNode is the interface for all expression nodes
type ExprNode interface {
	Node
	exprNode()
}

// StringLit represents a quoted string (adjacent literals already joined)
type StringLit struct {
	Value string
	Loc   SourceLocation
}

func (s *StringLit) node()     {}
func (s *StringLit) exprNode() {}

// Location returns the source location of the string literal.
func (s *StringLit) Location() SourceLocation {
	return s.Loc
}

// NumberLit represents an integer (int64) or float (float64) literal
type NumberLit struct {
	Value interface{}
	Raw   string
	Loc   SourceLocation
}

func (n *NumberLit) node()     {}
func (n *NumberLit) exprNode() {}

// Location returns the source location of the number literal.
func (n *NumberLit) Location() SourceLocation {
	return n.Loc
}

// BoolLit represents True/False or true/false
type BoolLit struct {
	Value bool
	Raw   string
	Loc   SourceLocation
}

func (b *BoolLit) node()     {}
func (b *BoolLit) exprNode() {}

// Location returns the source location of the boolean literal.
func (b *BoolLit) Location() SourceLocation {
	return b.Loc
}

// NullLit represents None, null or undefined
type NullLit struct {
	Raw string
	Loc SourceLocation
}

func (n *NullLit) node()     {}
func (n *NullLit) exprNode() {}

// Location returns the source location of the null literal.
func (n *NullLit) Location() SourceLocation {
	return n.Loc
}

// Ident represents a bare identifier reference
type Ident struct {
	Name string
	Loc  SourceLocation
}

func (i *Ident) node()     {}
func (i *Ident) exprNode() {}

// Location returns the source location of the identifier.
func (i *Ident) Location() SourceLocation {
	return i.Loc
}

// Attribute represents member access (value.Name)
type Attribute struct {
	Value ExprNode
	Name  string
	Loc   SourceLocation
}

func (a *Attribute) node()     {}
func (a *Attribute) exprNode() {}

// Location returns the source location of the attribute access.
func (a *Attribute) Location() SourceLocation {
	return a.Loc
}

// Subscript represents value[index]
type Subscript struct {
	Value ExprNode
	Index ExprNode
	Loc   SourceLocation
}

func (s *Subscript) node()     {}
func (s *Subscript) exprNode() {}

// Location returns the source location of the subscript.
func (s *Subscript) Location() SourceLocation {
	return s.Loc
}

// KeywordArg is a name=value call argument
type KeywordArg struct {
	Name  string
	Value ExprNode
}

// Call represents a function or constructor call
type Call struct {
	Func     ExprNode
	Args     []ExprNode
	Keywords []*KeywordArg
	Loc      SourceLocation
}

func (c *Call) node()     {}
func (c *Call) exprNode() {}

// Location returns the source location of the call.
func (c *Call) Location() SourceLocation {
	return c.Loc
}

// TupleExpr represents a parenthesized or bare comma-separated tuple
type TupleExpr struct {
	Elements []ExprNode
	Loc      SourceLocation
}

func (t *TupleExpr) node()     {}
func (t *TupleExpr) exprNode() {}

// Location returns the source location of the tuple.
func (t *TupleExpr) Location() SourceLocation {
	return t.Loc
}

// ListExpr represents a list display or a script array literal
type ListExpr struct {
	Elements []ExprNode
	Loc      SourceLocation
}

func (l *ListExpr) node()     {}
func (l *ListExpr) exprNode() {}

// Location returns the source location of the list.
func (l *ListExpr) Location() SourceLocation {
	return l.Loc
}

// DictEntry is one key/value pair of a DictExpr
type DictEntry struct {
	Key   ExprNode
	Value ExprNode
}

// DictExpr represents a dict display or a script object literal
type DictExpr struct {
	Entries []*DictEntry
	Loc     SourceLocation
}

func (d *DictExpr) node()     {}
func (d *DictExpr) exprNode() {}

// Location returns the source location of the dict.
func (d *DictExpr) Location() SourceLocation {
	return d.Loc
}

// SetExpr represents a set display ({a, b})
type SetExpr struct {
	Elements []ExprNode
	Loc      SourceLocation
}

func (s *SetExpr) node()     {}
func (s *SetExpr) exprNode() {}

// Location returns the source location of the set.
func (s *SetExpr) Location() SourceLocation {
	return s.Loc
}

// UnaryExpr represents a prefix operator application (-x, not x)
type UnaryExpr struct {
	Operator string
	Operand  ExprNode
	Loc      SourceLocation
}

func (u *UnaryExpr) node()     {}
func (u *UnaryExpr) exprNode() {}

// Location returns the source location of the unary expression.
func (u *UnaryExpr) Location() SourceLocation {
	return u.Loc
}

// BinaryExpr represents an infix operator application.
// Operators are left-associative and carry no precedence.
type BinaryExpr struct {
	Left     ExprNode
	Operator string
	Right    ExprNode
	Loc      SourceLocation
}

func (b *BinaryExpr) node()     {}
func (b *BinaryExpr) exprNode() {}

// Location returns the source location of the binary expression.
func (b *BinaryExpr) Location() SourceLocation {
	return b.Loc
}

// FunctionLit represents a script function literal; its body is not modelled
type FunctionLit struct {
	Params []string
	Loc    SourceLocation
}

func (f *FunctionLit) node()     {}
func (f *FunctionLit) exprNode() {}

// Location returns the source location of the function literal.
func (f *FunctionLit) Location() SourceLocation {
	return f.Loc
}

// Opaque stands in for an expression outside the modelled grammar
// (comprehensions, lambdas, conditionals). Text is the raw token text.
type Opaque struct {
	Text string
	Loc  SourceLocation
}

func (o *Opaque) node()     {}
func (o *Opaque) exprNode() {}

// Location returns the source location of the opaque expression.
func (o *Opaque) Location() SourceLocation {
	return o.Loc
}
