package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *StringLit { return &StringLit{Value: s} }

func num(v interface{}, raw string) *NumberLit { return &NumberLit{Value: v, Raw: raw} }

func ident(name string) *Ident { return &Ident{Name: name} }

func attr(value ExprNode, name string) *Attribute { return &Attribute{Value: value, Name: name} }

func TestLiteral(t *testing.T) {
	t.Run("nested displays", func(t *testing.T) {
		expr := &TupleExpr{Elements: []ExprNode{
			&DictExpr{Entries: []*DictEntry{
				{Key: str("id"), Value: str("slot")},
				{Key: str("size"), Value: &UnaryExpr{Operator: "-", Operand: num(int64(3), "3")}},
				{Key: str("flags"), Value: &ListExpr{Elements: []ExprNode{&BoolLit{Value: true}, &NullLit{}}}},
			}},
		}}

		got, err := Literal(expr)
		require.NoError(t, err)
		assert.Equal(t, []interface{}{
			map[string]interface{}{
				"id":    "slot",
				"size":  int64(-3),
				"flags": []interface{}{true, nil},
			},
		}, got)
	})

	t.Run("identifier is rejected", func(t *testing.T) {
		_, err := Literal(&TupleExpr{Elements: []ExprNode{ident("CONSTANT")}})
		assert.ErrorIs(t, err, ErrNotLiteral)
	})

	t.Run("call is rejected", func(t *testing.T) {
		_, err := Literal(&Call{Func: ident("_t"), Args: []ExprNode{str("x")}})
		assert.ErrorIs(t, err, ErrNotLiteral)
	})
}

func TestDottedName(t *testing.T) {
	name, ok := DottedName(attr(attr(ident("Products"), "ZenRelations"), "ToOne"))
	require.True(t, ok)
	assert.Equal(t, "Products.ZenRelations.ToOne", name)

	last, ok := LastName(attr(ident("RelSchema"), "ToManyCont"))
	require.True(t, ok)
	assert.Equal(t, "ToManyCont", last)

	_, ok = DottedName(str("x"))
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		expr ExprNode
		want string
		ok   bool
	}{
		{"string", str("Name"), "Name", true},
		{"identifier path", attr(ident("Zenoss"), "render"), "Zenoss.render", true},
		{"number keeps source text", num(int64(120), "120"), "120", true},
		{"boolean", &BoolLit{Value: true, Raw: "true"}, "true", true},
		{"translation", &Call{Func: ident("_t"), Args: []ExprNode{str("Slot")}}, "Slot", true},
		{"negative number", &UnaryExpr{Operator: "-", Operand: num(int64(1), "1")}, "-1", true},
		{"other call", &Call{Func: ident("f"), Args: []ExprNode{str("x")}}, "", false},
		{"new expression", &UnaryExpr{Operator: "new", Operand: ident("X")}, "", false},
		{"object", &DictExpr{}, "", false},
		{"function", &FunctionLit{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Text(tt.expr)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDictLookup(t *testing.T) {
	d := &DictExpr{Entries: []*DictEntry{
		{Key: ident("id"), Value: str("first")},
		{Key: str("header"), Value: str("Name")},
		{Key: ident("id"), Value: str("second")},
	}}

	v, ok := d.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, "second", v.(*StringLit).Value)

	v, ok = d.Lookup("header")
	require.True(t, ok)
	assert.Equal(t, "Name", v.(*StringLit).Value)

	_, ok = d.Lookup("missing")
	assert.False(t, ok)
}

func TestScalar(t *testing.T) {
	tests := []struct {
		name string
		expr ExprNode
		want interface{}
		ok   bool
	}{
		{"string", str("Card"), "Card", true},
		{"int", num(int64(7), "7"), int64(7), true},
		{"bool", &BoolLit{Value: false}, false, true},
		{"none", &NullLit{}, nil, true},
		{"identifier", ident("DEFAULT_SPEED"), "DEFAULT_SPEED", true},
		{"negative", &UnaryExpr{Operator: "-", Operand: num(2.5, "2.5")}, -2.5, true},
		{"tuple", &TupleExpr{}, nil, false},
		{"call", &Call{Func: ident("f")}, nil, false},
		{"opaque", &Opaque{Text: "lambda : 1"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Scalar(tt.expr)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "True", "TRUE"} {
		b, ok := ParseBool(s)
		assert.True(t, ok, s)
		assert.True(t, b, s)
	}

	b, ok := ParseBool("False")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = ParseBool("maybe")
	assert.False(t, ok)
}
