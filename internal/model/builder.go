package model

import "sort"

// Builder accumulates class models and relations across extraction passes.
// Classes and properties are created once and reused; attribute writes are
// last-write-wins.
type Builder struct {
	classes   map[string]*ClassModel
	relations *RelationSet
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		classes:   make(map[string]*ClassModel),
		relations: NewRelationSet(),
	}
}

// Class returns the class model for id, creating it on first reference
func (b *Builder) Class(id string) *ClassModel {
	class, ok := b.classes[id]
	if !ok {
		class = NewClassModel(id)
		b.classes[id] = class
	}
	return class
}

// Lookup returns the class model for id without creating it
func (b *Builder) Lookup(id string) (*ClassModel, bool) {
	class, ok := b.classes[id]
	return class, ok
}

// Discard removes a class model entirely
func (b *Builder) Discard(id string) {
	delete(b.classes, id)
}

// Len returns the number of class models
func (b *Builder) Len() int {
	return len(b.classes)
}

// AddRelation records a relation unless it or its mirror is known.
// It reports whether the relation was new.
func (b *Builder) AddRelation(r Relation) bool {
	return b.relations.Add(r)
}

// Relations returns the recorded relations in insertion order
func (b *Builder) Relations() []Relation {
	return b.relations.All()
}

// Build returns a snapshot with classes sorted by id. Later changes to the
// builder do not affect the snapshot.
func (b *Builder) Build() *Model {
	classes := make([]*ClassModel, 0, len(b.classes))
	for _, class := range b.classes {
		classes = append(classes, class.clone())
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })

	return &Model{
		Classes:   classes,
		Relations: b.relations.All(),
	}
}
