// Package report writes the extraction result: the relationship diagram
// block followed by a YAML dump of the merged class model.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zenpack-tools/zplc/internal/diagram"
	"github.com/zenpack-tools/zplc/internal/model"
)

// Options controls report output
type Options struct {
	// Header names the diagram block assignment (diagram.DefaultHeader if empty)
	Header string

	// SkipModel omits the YAML dump
	SkipModel bool
}

// ClassDocument is the serialized form of one class
type ClassDocument struct {
	Label              string                            `yaml:"label,omitempty"`
	PluralLabel        string                            `yaml:"plural_label,omitempty"`
	MonitoringTemplate string                            `yaml:"monitoring_template,omitempty"`
	Properties         map[string]map[string]interface{} `yaml:"properties"`
}

// Write emits the diagram block, a blank line and the model dump
func Write(w io.Writer, m *model.Model, opts Options) error {
	if err := diagram.Write(w, m.Relations, opts.Header); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	if opts.SkipModel {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return WriteModel(w, m)
}

// WriteModel emits the class model as YAML keyed by class id
func WriteModel(w io.Writer, m *model.Model) error {
	doc := Document(m)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return enc.Close()
}

// Document converts a model to its serializable form
func Document(m *model.Model) map[string]ClassDocument {
	doc := make(map[string]ClassDocument, len(m.Classes))
	for _, class := range m.Classes {
		props := make(map[string]map[string]interface{}, len(class.Properties))
		for id, prop := range class.Properties {
			attrs := make(map[string]interface{}, len(prop))
			for k, v := range prop {
				attrs[k] = v
			}
			props[id] = attrs
		}

		doc[class.ID] = ClassDocument{
			Label:              class.Label,
			PluralLabel:        class.PluralLabel,
			MonitoringTemplate: class.MonitoringTemplate,
			Properties:         props,
		}
	}
	return doc
}
