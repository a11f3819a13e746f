package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deviceCards = Relation{
	LeftClass:  "Device",
	LeftName:   "cards",
	LeftKind:   ToManyCont,
	RightKind:  ToOne,
	RightClass: "Card",
	RightName:  "device",
}

func TestParseCardinality(t *testing.T) {
	for _, name := range []string{"ToOne", "ToMany", "ToManyCont"} {
		c, err := ParseCardinality(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(c))
	}

	_, err := ParseCardinality("ToManyish")
	assert.Error(t, err)

	assert.True(t, ToManyCont.IsMany())
	assert.True(t, ToManyCont.IsContaining())
	assert.True(t, ToMany.IsMany())
	assert.False(t, ToMany.IsContaining())
	assert.False(t, ToOne.IsMany())
}

func TestRelationReverse(t *testing.T) {
	mirror := deviceCards.Reverse()

	assert.Equal(t, Relation{
		LeftClass:  "Card",
		LeftName:   "device",
		LeftKind:   ToOne,
		RightKind:  ToManyCont,
		RightClass: "Device",
		RightName:  "cards",
	}, mirror)
	assert.Equal(t, deviceCards, mirror.Reverse())
	assert.True(t, deviceCards.Equivalent(mirror))
	assert.True(t, mirror.IsContaining())
}

func TestRelationSetKeepsOneOfMirrors(t *testing.T) {
	set := NewRelationSet()

	assert.True(t, set.Add(deviceCards))
	assert.False(t, set.Add(deviceCards))
	assert.False(t, set.Add(deviceCards.Reverse()))

	other := Relation{
		LeftClass: "Card", LeftName: "ports", LeftKind: ToMany,
		RightKind: ToMany, RightClass: "Port", RightName: "cards",
	}
	assert.True(t, set.Add(other))

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(deviceCards.Reverse()))
	assert.Equal(t, []Relation{deviceCards, other}, set.All())
}

func TestRelationSetDistinguishesKinds(t *testing.T) {
	set := NewRelationSet()
	require.True(t, set.Add(deviceCards))

	referencing := deviceCards
	referencing.LeftKind = ToMany
	assert.True(t, set.Add(referencing), "same names with another kind is a different relation")
}

func TestClassModelProperties(t *testing.T) {
	class := NewClassModel("Card")

	prop := class.Property("slot")
	prop.Set(AttrDefault, "A1")
	class.Property("slot").Merge(map[string]interface{}{AttrLabel: "Slot"})

	assert.True(t, class.HasProperty("slot"))
	assert.Equal(t, PropertyModel{AttrDefault: "A1", AttrLabel: "Slot"}, class.Properties["slot"])
	assert.Equal(t, []string{AttrDefault, AttrLabel}, class.Properties["slot"].Keys())

	class.Property("name")
	assert.Equal(t, []string{"name", "slot"}, class.PropertyIDs())

	class.RemoveProperty("name")
	class.RemoveProperty("missing")
	assert.False(t, class.HasProperty("name"))
}

func TestBuilderMergesAcrossPasses(t *testing.T) {
	b := NewBuilder()

	b.Class("Card").Property("slot").Set(AttrDefault, "A1")
	b.Class("Card").Property("slot").Set(AttrGridDisplay, true)
	b.Class("Card").Label = "Card"
	b.Class("Device")
	b.AddRelation(deviceCards)

	m := b.Build()

	want := &Model{
		Classes: []*ClassModel{
			{
				ID:    "Card",
				Label: "Card",
				Properties: map[string]PropertyModel{
					"slot": {AttrDefault: "A1", AttrGridDisplay: true},
				},
			},
			{ID: "Device", Properties: map[string]PropertyModel{}},
		},
		Relations: []Relation{deviceCards},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	card, ok := m.Class("Card")
	require.True(t, ok)
	assert.Equal(t, "Card", card.ID)
	_, ok = m.Class("Missing")
	assert.False(t, ok)
}

func TestBuildIsASnapshot(t *testing.T) {
	b := NewBuilder()
	b.Class("Card").Property("slot").Set(AttrDefault, "A1")

	m := b.Build()
	b.Class("Card").Property("slot").Set(AttrDefault, "B2")
	b.Class("Extra")

	assert.Len(t, m.Classes, 1)
	assert.Equal(t, "A1", m.Classes[0].Properties["slot"][AttrDefault])
}

func TestBuilderDiscard(t *testing.T) {
	b := NewBuilder()
	b.Class("Helper").Property("x")

	_, ok := b.Lookup("Helper")
	require.True(t, ok)

	b.Discard("Helper")
	_, ok = b.Lookup("Helper")
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}
