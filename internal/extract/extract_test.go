package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenpack-tools/zplc/internal/model"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		diag Diagnostic
		want string
	}{
		{Diagnostic{File: "a.js", Line: 4, Subject: "ZC.CardPanel", Message: "panel has no componentType"}, "a.js:4: ZC.CardPanel: panel has no componentType"},
		{Diagnostic{File: "a.js", Message: "bad"}, "a.js: bad"},
		{Diagnostic{Subject: "Card", Message: "bad"}, "Card: bad"},
		{Diagnostic{Message: "bad"}, "bad"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.diag.String())
	}
}

func TestClassIDFromPath(t *testing.T) {
	assert.Equal(t, "Device", ClassIDFromPath("src/Device.py"))
	assert.Equal(t, "Card", ClassIDFromPath("Card.py"))
	assert.Equal(t, "README", ClassIDFromPath("README"))
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	definitions := []string{
		writeSource(t, dir, "Card.py", cardDefinition),
		writeSource(t, dir, "Device.py", deviceDefinition),
	}
	scripts := []string{writeSource(t, dir, "resources/card.js", cardScript)}

	e := newExtractor()
	require.NoError(t, e.Files(definitions, scripts))
	require.Empty(t, e.Diagnostics())

	m := e.Builder().Build()
	require.Len(t, m.Classes, 2)

	card, ok := m.Class("Card")
	require.True(t, ok)
	assert.Equal(t, "Card", card.Label)
	assert.Equal(t, "Cards", card.PluralLabel)
	assert.Equal(t, "Card", card.MonitoringTemplate)
	assert.Equal(t, []string{"name", "slot", "speed", "vendor"}, card.PropertyIDs())
	assert.Equal(t, model.PropertyModel{
		model.AttrLabel:          "Slot",
		model.AttrDetailsDisplay: true,
		model.AttrGridDisplay:    true,
		model.AttrSortable:       false,
		model.AttrWidth:          int64(60),
	}, card.Properties["slot"])

	assert.Equal(t, []model.Relation{cardDevice}, m.Relations)
}

func TestFilesErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		err := newExtractor().Files([]string{filepath.Join(dir, "Missing.py")}, nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing script", func(t *testing.T) {
		err := newExtractor().Files(nil, []string{filepath.Join(dir, "missing.js")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad definition", func(t *testing.T) {
		path := writeSource(t, dir, "Bad.py", "class Bad(object:\n")
		err := newExtractor().Files([]string{path}, nil)
		assert.Error(t, err)
	})
}
