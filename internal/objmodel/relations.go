package objmodel

import (
	"errors"
	"fmt"
)

// RelationHolder exposes an object's relationship containers by name
type RelationHolder interface {
	Relation(name string) (interface{}, bool)
}

// ContainingRelation owns the objects it holds
type ContainingRelation interface {
	SetObject(id string, obj Object) error
	GetObject(id string) (Object, error)
}

// ReferencingRelation holds references to objects owned elsewhere
type ReferencingRelation interface {
	AddRelation(obj Object) error
}

var (
	// ErrNoRelation indicates the holder has no relationship of that name
	ErrNoRelation = errors.New("no such relationship")

	// ErrWrongRelationKind indicates a containing helper was used on a
	// referencing relationship or the reverse
	ErrWrongRelationKind = errors.New("wrong relationship kind")
)

// AddContained stores target in the containing relationship relName of
// holder and returns the object as stored by the container.
func AddContained(holder RelationHolder, relName string, target Object) (Object, error) {
	raw, ok := holder.Relation(relName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRelation, relName)
	}
	rel, ok := raw.(ContainingRelation)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not containing", ErrWrongRelationKind, relName)
	}

	if err := rel.SetObject(target.ID(), target); err != nil {
		return nil, fmt.Errorf("failed to add %s to %s: %w", target.ID(), relName, err)
	}
	return rel.GetObject(target.ID())
}

// AddNonContained adds a reference to target in relationship relName of holder
func AddNonContained(holder RelationHolder, relName string, target Object) error {
	raw, ok := holder.Relation(relName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoRelation, relName)
	}
	rel, ok := raw.(ReferencingRelation)
	if !ok {
		return fmt.Errorf("%w: %s is not referencing", ErrWrongRelationKind, relName)
	}

	if err := rel.AddRelation(target); err != nil {
		return fmt.Errorf("failed to relate %s via %s: %w", target.ID(), relName, err)
	}
	return nil
}
