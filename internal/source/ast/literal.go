package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotLiteral is returned by Literal for expressions that are not built
// purely from literal displays.
var ErrNotLiteral = errors.New("expression is not a literal")

// Literal evaluates a literal expression into Go values:
// strings, int64, float64, bool, nil, []interface{} for tuples and lists,
// and map[string]interface{} for dicts. Identifiers, calls and operators
// other than unary minus are rejected.
func Literal(expr ExprNode) (interface{}, error) {
	switch e := expr.(type) {
	case *StringLit:
		return e.Value, nil
	case *NumberLit:
		return e.Value, nil
	case *BoolLit:
		return e.Value, nil
	case *NullLit:
		return nil, nil
	case *TupleExpr:
		return literalList(e.Elements)
	case *ListExpr:
		return literalList(e.Elements)
	case *DictExpr:
		out := make(map[string]interface{}, len(e.Entries))
		for _, entry := range e.Entries {
			key, err := Literal(entry.Key)
			if err != nil {
				return nil, err
			}
			value, err := Literal(entry.Value)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(key)] = value
		}
		return out, nil
	case *UnaryExpr:
		if e.Operator == "-" {
			if n, ok := e.Operand.(*NumberLit); ok {
				switch v := n.Value.(type) {
				case int64:
					return -v, nil
				case float64:
					return -v, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%w at %d:%d", ErrNotLiteral, expr.Location().Line, expr.Location().Column)
}

func literalList(elements []ExprNode) ([]interface{}, error) {
	out := make([]interface{}, 0, len(elements))
	for _, el := range elements {
		value, err := Literal(el)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

// DottedName returns "a.b.c" for identifier and attribute chains
func DottedName(expr ExprNode) (string, bool) {
	switch e := expr.(type) {
	case *Ident:
		return e.Name, true
	case *Attribute:
		prefix, ok := DottedName(e.Value)
		if !ok {
			return "", false
		}
		return prefix + "." + e.Name, true
	}
	return "", false
}

// LastName returns the final segment of a dotted name
func LastName(expr ExprNode) (string, bool) {
	name, ok := DottedName(expr)
	if !ok {
		return "", false
	}
	return name[strings.LastIndex(name, ".")+1:], true
}

// TranslationFunc is the name of the script translation wrapper, _t('...')
const TranslationFunc = "_t"

// Text normalizes a scalar script value to text. Quoted strings, bare
// identifier paths, numbers, booleans and _t('...') calls all collapse to
// the text they carry. Composite values return false.
func Text(expr ExprNode) (string, bool) {
	switch e := expr.(type) {
	case *StringLit:
		return e.Value, true
	case *NumberLit:
		return e.Raw, true
	case *BoolLit:
		return e.Raw, true
	case *NullLit:
		return e.Raw, true
	case *Ident, *Attribute:
		return DottedName(e)
	case *UnaryExpr:
		if e.Operator != "-" && e.Operator != "+" {
			return "", false
		}
		if inner, ok := Text(e.Operand); ok {
			return e.Operator + inner, true
		}
	case *Call:
		if name, ok := DottedName(e.Func); ok && name == TranslationFunc && len(e.Args) == 1 {
			return Text(e.Args[0])
		}
	}
	return "", false
}

// Key returns the text of a dict or object key
func Key(entry *DictEntry) (string, bool) {
	switch k := entry.Key.(type) {
	case *StringLit:
		return k.Value, true
	case *Ident:
		return k.Name, true
	case *NumberLit:
		return k.Raw, true
	case *BoolLit:
		return k.Raw, true
	}
	return "", false
}

// Lookup returns the value stored under key in a dict or object literal.
// The last matching entry wins, as in both source languages.
func (d *DictExpr) Lookup(key string) (ExprNode, bool) {
	var found ExprNode
	for _, entry := range d.Entries {
		if k, ok := Key(entry); ok && k == key {
			found = entry.Value
		}
	}
	return found, found != nil
}

// Scalar returns the literal Go value of a scalar expression: string, int64,
// float64, bool or nil. Identifier references evaluate to their name.
func Scalar(expr ExprNode) (interface{}, bool) {
	switch e := expr.(type) {
	case *StringLit:
		return e.Value, true
	case *NumberLit:
		return e.Value, true
	case *BoolLit:
		return e.Value, true
	case *NullLit:
		return nil, true
	case *Ident:
		return e.Name, true
	case *Attribute:
		return DottedName(e)
	case *UnaryExpr:
		if v, err := Literal(e); err == nil {
			return v, true
		}
	}
	return nil, false
}

// ParseBool interprets script text such as "true" or "False"
func ParseBool(text string) (bool, bool) {
	b, err := strconv.ParseBool(strings.ToLower(text))
	if err != nil {
		return false, false
	}
	return b, true
}
