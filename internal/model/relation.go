package model

import (
	"fmt"
)

// Cardinality classifies one endpoint of a relationship
type Cardinality string

const (
	// ToOne is a single-valued endpoint
	ToOne Cardinality = "ToOne"
	// ToMany is a multi-valued referencing endpoint
	ToMany Cardinality = "ToMany"
	// ToManyCont is a multi-valued containing endpoint
	ToManyCont Cardinality = "ToManyCont"
)

// ParseCardinality converts a cardinality factory name to a Cardinality
func ParseCardinality(name string) (Cardinality, error) {
	switch c := Cardinality(name); c {
	case ToOne, ToMany, ToManyCont:
		return c, nil
	}
	return "", fmt.Errorf("unknown cardinality %q", name)
}

// IsMany reports whether the endpoint holds several objects
func (c Cardinality) IsMany() bool {
	return c == ToMany || c == ToManyCont
}

// IsContaining reports whether the endpoint owns the objects it holds
func (c Cardinality) IsContaining() bool {
	return c == ToManyCont
}

// Relation is one relationship fact between two classes. LeftKind is the
// cardinality of LeftName as seen from LeftClass.
type Relation struct {
	LeftClass  string
	LeftName   string
	LeftKind   Cardinality
	RightKind  Cardinality
	RightClass string
	RightName  string
}

// Reverse returns the same relationship described from the right side
func (r Relation) Reverse() Relation {
	return Relation{
		LeftClass:  r.RightClass,
		LeftName:   r.RightName,
		LeftKind:   r.RightKind,
		RightKind:  r.LeftKind,
		RightClass: r.LeftClass,
		RightName:  r.LeftName,
	}
}

// IsContaining reports whether either endpoint is containing
func (r Relation) IsContaining() bool {
	return r.LeftKind.IsContaining() || r.RightKind.IsContaining()
}

// Equivalent reports whether o is r or its mirror
func (r Relation) Equivalent(o Relation) bool {
	return r == o || r == o.Reverse()
}

// String renders the relation as its source descriptor
func (r Relation) String() string {
	return fmt.Sprintf("%s: ('%s', %s(%s, '%s', '%s'))",
		r.LeftClass, r.LeftName, r.LeftKind, r.RightKind, r.RightClass, r.RightName)
}

// RelationSet keeps relations in insertion order, holding at most one of
// any relation and its mirror.
type RelationSet struct {
	items []Relation
	seen  map[Relation]struct{}
}

// NewRelationSet creates an empty set
func NewRelationSet() *RelationSet {
	return &RelationSet{
		items: make([]Relation, 0),
		seen:  make(map[Relation]struct{}),
	}
}

// Add inserts r unless r or its mirror is already present.
// It reports whether r was added.
func (s *RelationSet) Add(r Relation) bool {
	if _, ok := s.seen[r]; ok {
		return false
	}
	if _, ok := s.seen[r.Reverse()]; ok {
		return false
	}
	s.seen[r] = struct{}{}
	s.items = append(s.items, r)
	return true
}

// Contains reports whether r or its mirror is present
func (s *RelationSet) Contains(r Relation) bool {
	_, ok := s.seen[r]
	if !ok {
		_, ok = s.seen[r.Reverse()]
	}
	return ok
}

// Len returns the number of relations
func (s *RelationSet) Len() int {
	return len(s.items)
}

// All returns the relations in insertion order
func (s *RelationSet) All() []Relation {
	out := make([]Relation, len(s.items))
	copy(out, s.items)
	return out
}
