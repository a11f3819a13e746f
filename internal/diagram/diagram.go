// Package diagram renders relationships as yUML class-diagram lines.
package diagram

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zenpack-tools/zplc/internal/model"
)

// DefaultHeader names the assignment wrapping the rendered block
const DefaultHeader = "RELATIONSHIPS_YUML"

// Marker returns the yUML cardinality marker of an endpoint
func Marker(c model.Cardinality) string {
	switch c {
	case model.ToManyCont:
		return "++"
	case model.ToMany:
		return "*"
	default:
		return ""
	}
}

// Orient returns the relation in display orientation. In a one-to-many
// relation the class holding the to-many end comes first. When both ends
// have the same multiplicity the lexically smaller (class, name) end comes
// first, so the output does not depend on which side declared it.
func Orient(r model.Relation) model.Relation {
	leftMany, rightMany := r.LeftKind.IsMany(), r.RightKind.IsMany()

	switch {
	case !leftMany && rightMany:
		return r.Reverse()
	case leftMany == rightMany:
		if r.RightClass < r.LeftClass || (r.RightClass == r.LeftClass && r.RightName < r.LeftName) {
			return r.Reverse()
		}
	}
	return r
}

// Line renders one relation, e.g. "[Device]++cards -.- device[Card]"
func Line(r model.Relation) string {
	o := Orient(r)
	return fmt.Sprintf("[%s]%s%s -.- %s%s[%s]",
		o.LeftClass, Marker(o.LeftKind), o.LeftName,
		o.RightName, Marker(o.RightKind), o.RightClass)
}

// Lines renders relations sorted with containing relationships first and
// lexically within each group.
func Lines(rels []model.Relation) []string {
	type keyed struct {
		containing bool
		line       string
	}

	items := make([]keyed, 0, len(rels))
	for _, r := range rels {
		items = append(items, keyed{containing: r.IsContaining(), line: Line(r)})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].containing != items[j].containing {
			return items[i].containing
		}
		return items[i].line < items[j].line
	})

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.line)
	}
	return lines
}

// Render returns the delimited block:
//
//	HEADER = """
//	[A]++items -.- parent[B]
//	"""
func Render(rels []model.Relation, header string) string {
	if header == "" {
		header = DefaultHeader
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(" = \"\"\"\n")
	for _, line := range Lines(rels) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(`"""`)
	return b.String()
}

// Write renders the block to w followed by a newline
func Write(w io.Writer, rels []model.Relation, header string) error {
	_, err := fmt.Fprintln(w, Render(rels, header))
	return err
}
