package extract

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zenpack-tools/zplc/internal/model"
	"github.com/zenpack-tools/zplc/internal/source/ast"
	"github.com/zenpack-tools/zplc/internal/source/parser"
)

// Special class-body assignments
const (
	targetRelations  = "_relations"
	targetProperties = "_properties"
	targetFactory    = "factory_type_information"
)

// ErrPropertiesNotLiteral is returned when a _properties tuple contains
// anything other than literal displays.
var ErrPropertiesNotLiteral = errors.New("_properties is not a literal")

// Definition reads one class definition module. The class id is derived
// from the file name. Syntax errors and non-literal _properties are fatal.
func (e *Extractor) Definition(file, source string) error {
	classID := ClassIDFromPath(file)

	module, err := parser.ParseModule(file, source)
	if err != nil {
		return err
	}

	e.logger.Debug("definition module", zap.String("file", file), zap.String("class", classID))

	for _, class := range module.Classes() {
		if e.classifier.IsDetailInterface(class.Name, classID) {
			e.detailInterface(classID, class)
		}
		if e.classifier.IsModelClass(class.Name, classID) {
			if err := e.modelClass(file, classID, class); err != nil {
				return err
			}
			e.confirmFirstClass(class.Name)
		}
	}
	return nil
}

// detailInterface flags every attribute declared by the detail interface
// as shown on the detail view of classID
func (e *Extractor) detailInterface(classID string, class *ast.ClassDef) {
	target := e.builder.Class(classID)
	for _, assign := range class.Assignments() {
		for _, name := range assign.Targets {
			target.Property(name).Set(model.AttrDetailsDisplay, true)
		}
	}
}

func (e *Extractor) modelClass(file, classID string, class *ast.ClassDef) error {
	target := e.builder.Class(class.Name)

	for _, assign := range class.Assignments() {
		for _, name := range assign.Targets {
			switch name {
			case targetFactory:
				continue
			case targetRelations:
				e.relations(file, classID, assign.Value)
				continue
			case targetProperties:
				if err := e.properties(file, target, assign.Value); err != nil {
					return err
				}
				continue
			}

			value, ok := ast.Scalar(assign.Value)
			if !ok {
				e.logger.Debug("skipping composite attribute",
					zap.String("class", class.Name), zap.String("attribute", name))
				continue
			}

			prop := target.Property(name)
			if value != nil {
				prop.Set(model.AttrDefault, value)
			}
		}
	}
	return nil
}

// confirmFirstClass keeps a class only if it declares a meta_type, then
// drops the meta_type and portal_type bookkeeping properties. A class that
// passed once stays.
func (e *Extractor) confirmFirstClass(name string) {
	class, ok := e.builder.Lookup(name)
	if !ok {
		return
	}

	if _, done := e.confirmed[name]; !done {
		if !class.HasProperty(model.PropMetaType) {
			e.logger.Debug("discarding class without meta_type", zap.String("class", name))
			e.builder.Discard(name)
			return
		}
		e.confirmed[name] = struct{}{}
	}

	class.RemoveProperty(model.PropMetaType)
	class.RemoveProperty(model.PropPortalType)
}

// appendedTuple returns the tuple of `Base.attr + (...)` or of a bare tuple
func appendedTuple(value ast.ExprNode) (*ast.TupleExpr, bool) {
	switch v := value.(type) {
	case *ast.BinaryExpr:
		if v.Operator != "+" {
			return nil, false
		}
		tuple, ok := v.Right.(*ast.TupleExpr)
		return tuple, ok
	case *ast.TupleExpr:
		return v, true
	}
	return nil, false
}

func (e *Extractor) relations(file, classID string, value ast.ExprNode) {
	tuple, ok := appendedTuple(value)
	if !ok {
		e.diagnose(file, value.Location().Line, classID, "unrecognized %s expression", targetRelations)
		return
	}

	elements := tuple.Elements
	if isDescriptor(tuple) {
		// `+ (('name', Kind(...)))` without a trailing comma
		elements = []ast.ExprNode{tuple}
	}

	for _, element := range elements {
		rel, err := relationDescriptor(classID, element)
		if err != nil {
			e.diagnose(file, element.Location().Line, classID, "skipping relation: %v", err)
			continue
		}
		if !e.builder.AddRelation(rel) {
			e.logger.Debug("duplicate relation", zap.Stringer("relation", rel))
		}
	}
}

func isDescriptor(tuple *ast.TupleExpr) bool {
	if len(tuple.Elements) != 2 {
		return false
	}
	_, named := tuple.Elements[0].(*ast.StringLit)
	_, called := tuple.Elements[1].(*ast.Call)
	return named && called
}

// relationDescriptor reads ('name', Kind(OtherKind, 'pkg.Other', 'otherName'))
func relationDescriptor(classID string, expr ast.ExprNode) (model.Relation, error) {
	pair, ok := expr.(*ast.TupleExpr)
	if !ok || len(pair.Elements) != 2 {
		return model.Relation{}, errors.New("descriptor is not a (name, schema) pair")
	}

	name, ok := pair.Elements[0].(*ast.StringLit)
	if !ok {
		return model.Relation{}, errors.New("relation name is not a string")
	}

	call, ok := pair.Elements[1].(*ast.Call)
	if !ok || len(call.Args) < 3 {
		return model.Relation{}, fmt.Errorf("%s: schema is not a Kind(OtherKind, 'Class', 'name') call", name.Value)
	}

	kindName, ok := ast.LastName(call.Func)
	if !ok {
		return model.Relation{}, fmt.Errorf("%s: unrecognized relation kind", name.Value)
	}
	kind, err := model.ParseCardinality(kindName)
	if err != nil {
		return model.Relation{}, fmt.Errorf("%s: %w", name.Value, err)
	}

	otherKindName, ok := ast.LastName(call.Args[0])
	if !ok {
		return model.Relation{}, fmt.Errorf("%s: unrecognized remote kind", name.Value)
	}
	otherKind, err := model.ParseCardinality(otherKindName)
	if err != nil {
		return model.Relation{}, fmt.Errorf("%s: %w", name.Value, err)
	}

	otherClass, ok := call.Args[1].(*ast.StringLit)
	if !ok {
		return model.Relation{}, fmt.Errorf("%s: remote class is not a string", name.Value)
	}
	otherName, ok := call.Args[2].(*ast.StringLit)
	if !ok {
		return model.Relation{}, fmt.Errorf("%s: remote relation name is not a string", name.Value)
	}

	path := otherClass.Value
	return model.Relation{
		LeftClass:  classID,
		LeftName:   name.Value,
		LeftKind:   kind,
		RightKind:  otherKind,
		RightClass: path[strings.LastIndex(path, ".")+1:],
		RightName:  otherName.Value,
	}, nil
}

func (e *Extractor) properties(file string, class *model.ClassModel, value ast.ExprNode) error {
	tuple, ok := appendedTuple(value)
	if !ok {
		e.diagnose(file, value.Location().Line, class.ID, "unrecognized %s expression", targetProperties)
		return nil
	}

	evaluated, err := ast.Literal(tuple)
	if err != nil {
		return fmt.Errorf("%s: %s: %w: %v", file, class.ID, ErrPropertiesNotLiteral, err)
	}

	for i, item := range evaluated.([]interface{}) {
		descriptor, ok := item.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s: %s: %w: entry %d is not a dict", file, class.ID, ErrPropertiesNotLiteral, i)
		}

		id, ok := descriptor["id"].(string)
		if !ok || id == "" {
			e.diagnose(file, tuple.Elements[i].Location().Line, class.ID, "property descriptor %d has no id", i)
			continue
		}

		attrs := make(map[string]interface{}, len(descriptor))
		for k, v := range descriptor {
			attrs[k] = v
		}
		delete(attrs, "id")
		delete(attrs, "mode")
		if t, ok := attrs["type"].(string); ok && t == "string" {
			delete(attrs, "type")
		}

		class.Property(id).Merge(attrs)
	}
	return nil
}
