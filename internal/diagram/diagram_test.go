package diagram

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenpack-tools/zplc/internal/model"
)

func rel(lc, ln string, lk, rk model.Cardinality, rc, rn string) model.Relation {
	return model.Relation{LeftClass: lc, LeftName: ln, LeftKind: lk, RightKind: rk, RightClass: rc, RightName: rn}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		rel  model.Relation
		want string
	}{
		{
			name: "containing declared on the many side",
			rel:  rel("A", "items", model.ToManyCont, model.ToOne, "B", "parent"),
			want: "[A]++items -.- parent[B]",
		},
		{
			name: "containing declared on the one side",
			rel:  rel("B", "parent", model.ToOne, model.ToManyCont, "A", "items"),
			want: "[A]++items -.- parent[B]",
		},
		{
			name: "referencing one to many",
			rel:  rel("Card", "port", model.ToOne, model.ToMany, "Port", "cards"),
			want: "[Port]*cards -.- port[Card]",
		},
		{
			name: "many to many orders by class",
			rel:  rel("Zone", "hosts", model.ToMany, model.ToMany, "Host", "zones"),
			want: "[Host]*zones -.- hosts*[Zone]",
		},
		{
			name: "one to one orders by class",
			rel:  rel("Lun", "volume", model.ToOne, model.ToOne, "Disk", "lun"),
			want: "[Disk]lun -.- volume[Lun]",
		},
		{
			name: "self relation orders by name",
			rel:  rel("Node", "peers", model.ToMany, model.ToMany, "Node", "others"),
			want: "[Node]*others -.- peers*[Node]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.rel))
			assert.Equal(t, tt.want, Line(tt.rel.Reverse()), "mirror renders identically")
		})
	}
}

func TestLinesContainingFirst(t *testing.T) {
	lines := Lines([]model.Relation{
		rel("Card", "port", model.ToOne, model.ToMany, "Port", "cards"),
		rel("Zeta", "items", model.ToManyCont, model.ToOne, "Item", "zeta"),
		rel("Alpha", "hosts", model.ToMany, model.ToMany, "Host", "alphas"),
		rel("Device", "cards", model.ToManyCont, model.ToOne, "Card", "device"),
	})

	assert.Equal(t, []string{
		"[Device]++cards -.- device[Card]",
		"[Zeta]++items -.- zeta[Item]",
		"[Alpha]*hosts -.- alphas*[Host]",
		"[Port]*cards -.- port[Card]",
	}, lines)
}

func TestRender(t *testing.T) {
	rels := []model.Relation{
		rel("Device", "cards", model.ToManyCont, model.ToOne, "Card", "device"),
	}

	assert.Equal(t, "RELATIONSHIPS_YUML = \"\"\"\n[Device]++cards -.- device[Card]\n\"\"\"", Render(rels, ""))
	assert.Equal(t, "REL = \"\"\"\n\"\"\"", Render(nil, "REL"))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rels, "REL"))
	assert.Equal(t, "REL = \"\"\"\n[Device]++cards -.- device[Card]\n\"\"\"\n", buf.String())
}

func TestMarker(t *testing.T) {
	assert.Equal(t, "++", Marker(model.ToManyCont))
	assert.Equal(t, "*", Marker(model.ToMany))
	assert.Equal(t, "", Marker(model.ToOne))
}
