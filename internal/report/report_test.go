package report

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenpack-tools/zplc/internal/model"
)

func cardModel() *model.Model {
	return &model.Model{
		Classes: []*model.ClassModel{
			{
				ID:                 "Card",
				Label:              "Card",
				PluralLabel:        "Cards",
				MonitoringTemplate: "Card",
				Properties: map[string]model.PropertyModel{
					"slot": {
						model.AttrLabel:       "Slot",
						model.AttrWidth:       int64(60),
						model.AttrGridDisplay: true,
					},
				},
			},
			{ID: "Device", Properties: map[string]model.PropertyModel{}},
		},
		Relations: []model.Relation{{
			LeftClass:  "Card",
			LeftName:   "device",
			LeftKind:   model.ToOne,
			RightKind:  model.ToManyCont,
			RightClass: "Device",
			RightName:  "cards",
		}},
	}
}

func TestDocument(t *testing.T) {
	want := map[string]ClassDocument{
		"Card": {
			Label:              "Card",
			PluralLabel:        "Cards",
			MonitoringTemplate: "Card",
			Properties: map[string]map[string]interface{}{
				"slot": {"label": "Slot", "width": int64(60), "grid_display": true},
			},
		},
		"Device": {Properties: map[string]map[string]interface{}{}},
	}

	if diff := cmp.Diff(want, Document(cardModel())); diff != "" {
		t.Errorf("Document() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cardModel(), Options{}))

	want := `RELATIONSHIPS_YUML = """
[Device]++cards -.- device[Card]
"""

Card:
  label: Card
  plural_label: Cards
  monitoring_template: Card
  properties:
    slot:
      grid_display: true
      label: Slot
      width: 60
Device:
  properties: {}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteRelationsOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cardModel(), Options{Header: "YUML", SkipModel: true}))

	assert.Equal(t, "YUML = \"\"\"\n[Device]++cards -.- device[Card]\n\"\"\"\n", buf.String())
}

func TestWriteEmptyModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &model.Model{}, Options{}))

	assert.Equal(t, "RELATIONSHIPS_YUML = \"\"\"\n\"\"\"\n\n{}\n", buf.String())
}
