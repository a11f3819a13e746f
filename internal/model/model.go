// Package model holds the merged class model assembled from every source
// pass: classes, their properties with UI metadata, and relationships.
package model

import (
	"sort"
)

// Property attribute names understood by the target framework
const (
	AttrDefault        = "default"
	AttrDetailsDisplay = "details_display"
	AttrGridDisplay    = "grid_display"
	AttrLabel          = "label"
	AttrWidth          = "width"
	AttrSortDirection  = "sort_direction"
	AttrSortable       = "sortable"
)

// Bookkeeping properties removed from first-class models
const (
	PropMetaType   = "meta_type"
	PropPortalType = "portal_type"
)

// PropertyModel maps attribute names to values. Passes merge into it key by
// key; it is never replaced wholesale.
type PropertyModel map[string]interface{}

// Set stores one attribute, overwriting any previous value
func (p PropertyModel) Set(key string, value interface{}) {
	p[key] = value
}

// Merge copies every attribute of other into p
func (p PropertyModel) Merge(other map[string]interface{}) {
	for k, v := range other {
		p[k] = v
	}
}

// Keys returns the attribute names in sorted order
func (p PropertyModel) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p PropertyModel) clone() PropertyModel {
	out := make(PropertyModel, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ClassModel is the merged description of one domain class
type ClassModel struct {
	ID                 string
	Label              string
	PluralLabel        string
	MonitoringTemplate string
	Properties         map[string]PropertyModel
}

// NewClassModel creates an empty class model
func NewClassModel(id string) *ClassModel {
	return &ClassModel{
		ID:         id,
		Properties: make(map[string]PropertyModel),
	}
}

// Property returns the property model for id, creating it on first use
func (c *ClassModel) Property(id string) PropertyModel {
	prop, ok := c.Properties[id]
	if !ok {
		prop = make(PropertyModel)
		c.Properties[id] = prop
	}
	return prop
}

// HasProperty reports whether the property exists
func (c *ClassModel) HasProperty(id string) bool {
	_, ok := c.Properties[id]
	return ok
}

// RemoveProperty deletes a property if present
func (c *ClassModel) RemoveProperty(id string) {
	delete(c.Properties, id)
}

// PropertyIDs returns the property ids in sorted order
func (c *ClassModel) PropertyIDs() []string {
	ids := make([]string, 0, len(c.Properties))
	for id := range c.Properties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *ClassModel) clone() *ClassModel {
	out := &ClassModel{
		ID:                 c.ID,
		Label:              c.Label,
		PluralLabel:        c.PluralLabel,
		MonitoringTemplate: c.MonitoringTemplate,
		Properties:         make(map[string]PropertyModel, len(c.Properties)),
	}
	for id, prop := range c.Properties {
		out.Properties[id] = prop.clone()
	}
	return out
}

// Model is an immutable snapshot of the merged classes and relationships
type Model struct {
	Classes   []*ClassModel
	Relations []Relation
}

// Class returns the class with the given id
func (m *Model) Class(id string) (*ClassModel, bool) {
	i := sort.Search(len(m.Classes), func(i int) bool { return m.Classes[i].ID >= id })
	if i < len(m.Classes) && m.Classes[i].ID == id {
		return m.Classes[i], true
	}
	return nil, false
}
