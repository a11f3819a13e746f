package extract

import (
	"strings"

	"go.uber.org/zap"

	"github.com/zenpack-tools/zplc/internal/model"
	"github.com/zenpack-tools/zplc/internal/source/ast"
	"github.com/zenpack-tools/zplc/internal/source/lexer"
	"github.com/zenpack-tools/zplc/internal/source/parser"
)

// Panel configuration keys
const (
	keyComponentType    = "componentType"
	keyColumns          = "columns"
	keyAutoExpandColumn = "autoExpandColumn"
	keySortInfo         = "sortInfo"
	keyField            = "field"
	keyDirection        = "direction"
	keyID               = "id"
	keyDataIndex        = "dataIndex"
	keyHeader           = "header"
	keySortable         = "sortable"
)

// configMarker is the token shape of `config || {}, {` which opens the
// configuration object of a grid panel constructor
var configMarker = []lexer.TokenType{
	lexer.TOKEN_DOUBLE_PIPE,
	lexer.TOKEN_LBRACE,
	lexer.TOKEN_RBRACE,
	lexer.TOKEN_COMMA,
	lexer.TOKEN_LBRACE,
}

// Panels reads every grid panel configuration in a UI script. Scripts are
// never fatal: lexical and syntax problems become diagnostics.
func (e *Extractor) Panels(file, source string) {
	tokens, lexErrors := lexer.Tokenize(source, lexer.DialectScript)
	for _, le := range lexErrors {
		e.logger.Debug("script lexical error", zap.String("file", file), zap.String("error", le.Error()))
	}

	floor := 0
	for i := 0; i+len(configMarker) <= len(tokens); i++ {
		if !matchTokens(tokens, i, configMarker) {
			continue
		}

		open := i + len(configMarker) - 1
		name := panelName(tokens, floor, i)

		p := parser.New(tokens, lexer.DialectScript)
		p.Seek(open)
		config, errs := p.ParseObject()
		if len(errs) > 0 {
			e.diagnose(file, tokens[open].Line, name, "could not parse panel configuration: %s", errs[0].Message)
			floor = open
			continue
		}

		e.logger.Debug("panel configuration", zap.String("file", file), zap.String("panel", name))
		e.panel(file, name, config)

		i = p.Position() - 1
		floor = p.Position()
	}
}

func matchTokens(tokens []lexer.Token, at int, shape []lexer.TokenType) bool {
	for k, t := range shape {
		if tokens[at+k].Type != t {
			return false
		}
	}
	return true
}

// panelName finds the nearest `A.B = X.extend(` before the marker at end,
// without looking before floor. It returns "" when there is none.
func panelName(tokens []lexer.Token, floor, end int) string {
	for j := end - 1; j > floor; j-- {
		if tokens[j].Type != lexer.TOKEN_EQUALS {
			continue
		}
		if !isExtendCall(tokens, j+1) {
			continue
		}
		if name := dottedNameBefore(tokens, floor, j); name != "" {
			return name
		}
	}
	return ""
}

// isExtendCall reports whether tokens at i read `a.b.extend(`
func isExtendCall(tokens []lexer.Token, i int) bool {
	last := ""
	for i < len(tokens) && tokens[i].Type == lexer.TOKEN_IDENTIFIER {
		last = tokens[i].Lexeme
		if i+1 < len(tokens) && tokens[i+1].Type == lexer.TOKEN_DOT {
			i += 2
			continue
		}
		i++
		break
	}
	return last == "extend" && i < len(tokens) && tokens[i].Type == lexer.TOKEN_LPAREN
}

// dottedNameBefore reads the `a.b.c` chain ending just before index end
func dottedNameBefore(tokens []lexer.Token, floor, end int) string {
	parts := make([]string, 0, 2)
	i := end - 1
	for i >= floor && tokens[i].Type == lexer.TOKEN_IDENTIFIER {
		parts = append(parts, tokens[i].Lexeme)
		if i-1 >= floor && tokens[i-1].Type == lexer.TOKEN_DOT {
			i -= 2
			continue
		}
		break
	}

	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, ".")
}

func (e *Extractor) panel(file, name string, config *ast.DictExpr) {
	line := config.Location().Line

	componentType, ok := lookupText(config, keyComponentType)
	if !ok || componentType == "" {
		e.diagnose(file, line, name, "panel has no %s", keyComponentType)
		return
	}

	class := e.builder.Class(componentType)
	class.MonitoringTemplate = componentType

	columnsExpr, _ := config.Lookup(keyColumns)
	columns, ok := columnsExpr.(*ast.ListExpr)
	if !ok {
		e.diagnose(file, line, name, "%s has no columns. Most likely the result of a parsing error.", componentType)
		return
	}

	if id, ok := lookupText(config, keyAutoExpandColumn); ok && id != "" {
		class.Property(id).Set(model.AttrWidth, "auto")
	}

	if sortExpr, ok := config.Lookup(keySortInfo); ok {
		if sortInfo, ok := sortExpr.(*ast.DictExpr); ok {
			field, hasField := lookupText(sortInfo, keyField)
			direction, hasDirection := lookupText(sortInfo, keyDirection)
			if hasField && hasDirection && field != "" {
				class.Property(field).Set(model.AttrSortDirection, direction)
			}
		}
	}

	for _, element := range columns.Elements {
		column, ok := element.(*ast.DictExpr)
		if !ok {
			e.diagnose(file, element.Location().Line, componentType, "column is not an object literal")
			continue
		}
		e.column(file, class, column)
	}
}

// column merges one grid column into the property it displays
func (e *Extractor) column(file string, class *model.ClassModel, column *ast.DictExpr) {
	attrs := make(map[string]interface{}, len(column.Entries))
	for _, entry := range column.Entries {
		key, ok := ast.Key(entry)
		if !ok || strings.HasPrefix(key, "//") {
			continue
		}
		value, ok := columnValue(entry.Value)
		if !ok {
			e.logger.Debug("skipping column attribute", zap.String("class", class.ID), zap.String("key", key))
			continue
		}
		attrs[key] = value
	}

	id := textAttr(attrs, keyID)
	if id == "" {
		id = textAttr(attrs, keyDataIndex)
	}
	if id == "" {
		e.diagnose(file, column.Location().Line, class.ID, "column has neither %s nor %s", keyID, keyDataIndex)
		return
	}

	if _, auto := e.autoColumns[id]; auto {
		return
	}

	delete(attrs, keyID)
	delete(attrs, keyDataIndex)

	if header, ok := attrs[keyHeader]; ok {
		attrs[model.AttrLabel] = header
		delete(attrs, keyHeader)
	}

	if raw, ok := attrs[keySortable]; ok {
		delete(attrs, keySortable)
		if sortable, ok := boolAttr(raw); ok && !sortable {
			attrs[model.AttrSortable] = false
		}
	}

	attrs[model.AttrGridDisplay] = true
	class.Property(id).Merge(attrs)
}

// columnValue normalizes a column attribute. Numbers and booleans keep
// their type; strings, identifier paths and _t('...') collapse to text.
func columnValue(expr ast.ExprNode) (interface{}, bool) {
	switch v := expr.(type) {
	case *ast.NumberLit:
		return v.Value, true
	case *ast.BoolLit:
		return v.Value, true
	}
	return ast.Text(expr)
}

func lookupText(d *ast.DictExpr, key string) (string, bool) {
	expr, ok := d.Lookup(key)
	if !ok {
		return "", false
	}
	return ast.Text(expr)
}

func textAttr(attrs map[string]interface{}, key string) string {
	s, _ := attrs[key].(string)
	return s
}

func boolAttr(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		return ast.ParseBool(b)
	}
	return false, false
}
