// Package extract reads plugin package sources into a model.Builder.
//
// Three passes feed the same builder:
//   - Definition reads class definition modules (properties, defaults,
//     relations, detail-view flags).
//   - Panels reads UI grid panel configurations (columns, labels, sort
//     order, widths).
//   - Labels reads class name registrations (singular and plural labels).
//
// Problems that only affect part of a source are recorded as Diagnostics
// and extraction continues; unreadable files and definition modules that do
// not parse are returned as errors.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/zenpack-tools/zplc/internal/model"
)

// DefaultAutoColumns are grid columns the target framework provides itself
var DefaultAutoColumns = []string{"severity", "monitored", "locking"}

// Options configures an Extractor
type Options struct {
	// Classifier decides which definition classes are modelled.
	// Defaults to NamingClassifier.
	Classifier Classifier

	// AutoColumns lists column ids that are skipped.
	// Defaults to DefaultAutoColumns; use an empty non-nil slice to keep all.
	AutoColumns []string

	// Logger receives progress and tolerated-error events
	Logger *zap.Logger
}

// Diagnostic is a recoverable problem found in a source file
type Diagnostic struct {
	File    string
	Line    int
	Subject string
	Message string
}

// String formats the diagnostic as "file:line: subject: message"
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
		}
		b.WriteString(": ")
	}
	if d.Subject != "" {
		b.WriteString(d.Subject)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Extractor applies source passes to a shared builder
type Extractor struct {
	builder     *model.Builder
	classifier  Classifier
	autoColumns map[string]struct{}
	logger      *zap.Logger
	diagnostics []Diagnostic

	// confirmed holds classes that already passed the meta_type check, so a
	// later definition of the same class cannot discard them.
	confirmed map[string]struct{}
}

// New creates an Extractor writing into builder
func New(builder *model.Builder, opts Options) *Extractor {
	if opts.Classifier == nil {
		opts.Classifier = NamingClassifier{}
	}
	if opts.AutoColumns == nil {
		opts.AutoColumns = DefaultAutoColumns
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	auto := make(map[string]struct{}, len(opts.AutoColumns))
	for _, id := range opts.AutoColumns {
		auto[id] = struct{}{}
	}

	return &Extractor{
		builder:     builder,
		classifier:  opts.Classifier,
		autoColumns: auto,
		logger:      opts.Logger,
		diagnostics: make([]Diagnostic, 0),
		confirmed:   make(map[string]struct{}),
	}
}

// Builder returns the builder being populated
func (e *Extractor) Builder() *model.Builder {
	return e.builder
}

// Diagnostics returns the problems recorded so far, in discovery order
func (e *Extractor) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}

func (e *Extractor) diagnose(file string, line int, subject, format string, args ...interface{}) {
	d := Diagnostic{File: file, Line: line, Subject: subject, Message: fmt.Sprintf(format, args...)}
	e.logger.Debug("diagnostic", zap.String("file", file), zap.Int("line", line), zap.String("message", d.Message))
	e.diagnostics = append(e.diagnostics, d)
}

// Files runs the definition pass over every definition module, then the
// panel and label passes over every script. Definitions must come first:
// the meta_type filter runs as each definition class is read.
func (e *Extractor) Files(definitions, scripts []string) error {
	for _, path := range definitions {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := e.Definition(path, string(data)); err != nil {
			return err
		}
	}

	for _, path := range scripts {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		source := string(data)
		e.Panels(path, source)
		e.Labels(path, source)
	}

	e.logger.Info("extraction complete",
		zap.Int("definitions", len(definitions)),
		zap.Int("scripts", len(scripts)),
		zap.Int("classes", e.builder.Len()),
		zap.Int("relations", len(e.builder.Relations())),
		zap.Int("diagnostics", len(e.diagnostics)),
	)
	return nil
}

// ClassIDFromPath derives a class id from a module file name: the base name
// without its extension ("src/Device.py" -> "Device").
func ClassIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
