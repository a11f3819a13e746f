// Package scanner discovers the source files of a plugin package: class
// definition modules at the package root and UI scripts anywhere below it.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// Default file name patterns
const (
	DefaultDefinitionPattern = "*.py"
	DefaultScriptPattern     = "*.js"
)

// Config holds configuration for the file scanner.
type Config struct {
	// Root is the package source directory (required)
	Root string

	// DefinitionPattern matches definition module base names (non-recursive)
	DefinitionPattern string

	// ScriptPattern matches UI script base names (recursive)
	ScriptPattern string

	// Exclude holds glob patterns matched against root-relative slash paths;
	// matching files and directories are skipped by the recursive walk
	Exclude []string
}

var (
	// ErrRootPathEmpty indicates the root path was not specified.
	ErrRootPathEmpty = errors.New("root path cannot be empty")

	// ErrRootPathNotExist indicates the root path does not exist.
	ErrRootPathNotExist = errors.New("root path does not exist")

	// ErrRootPathNotDir indicates the root path is not a directory.
	ErrRootPathNotDir = errors.New("root path is not a directory")

	// ErrInvalidPattern indicates a glob pattern could not be compiled.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// Scanner lists source files under a package root
type Scanner struct {
	config     Config
	definition glob.Glob
	script     glob.Glob
	exclude    []glob.Glob
	logger     *zap.Logger
}

// New validates the configuration and compiles its patterns
func New(config Config, logger *zap.Logger) (*Scanner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.DefinitionPattern == "" {
		config.DefinitionPattern = DefaultDefinitionPattern
	}
	if config.ScriptPattern == "" {
		config.ScriptPattern = DefaultScriptPattern
	}

	if err := validateRoot(config.Root); err != nil {
		return nil, err
	}

	s := &Scanner{config: config, logger: logger}

	var err error
	if s.definition, err = compileGlob(config.DefinitionPattern); err != nil {
		return nil, err
	}
	if s.script, err = compileGlob(config.ScriptPattern); err != nil {
		return nil, err
	}
	s.exclude = make([]glob.Glob, 0, len(config.Exclude))
	for _, pattern := range config.Exclude {
		matcher, err := compileGlob(pattern)
		if err != nil {
			return nil, err
		}
		s.exclude = append(s.exclude, matcher)
	}

	return s, nil
}

// validateRoot checks that the root path names a directory.
func validateRoot(root string) error {
	if root == "" {
		return ErrRootPathEmpty
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrRootPathNotExist, root)
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootPathNotDir, root)
	}

	return nil
}

func compileGlob(pattern string) (glob.Glob, error) {
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, fmt.Errorf("%q: %w", pattern, err))
	}
	return matcher, nil
}

// Definitions lists definition modules directly inside the root, sorted by name
func (s *Scanner) Definitions() ([]string, error) {
	entries, err := os.ReadDir(s.config.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.config.Root, err)
	}

	files := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !s.definition.Match(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.config.Root, entry.Name()))
	}
	sort.Strings(files)

	s.logger.Debug("found definition modules", zap.Int("count", len(files)))
	return files, nil
}

// Scripts walks the root recursively and lists UI scripts in lexical walk order
func (s *Scanner) Scripts() ([]string, error) {
	files := make([]string, 0)

	err := filepath.WalkDir(s.config.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(s.config.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if rel != "." && s.excluded(rel) {
			s.logger.Debug("excluded", zap.String("path", rel))
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.IsDir() && s.script.Match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.config.Root, err)
	}

	s.logger.Debug("found scripts", zap.Int("count", len(files)))
	return files, nil
}

// excluded reports whether a root-relative path matches an exclude pattern
func (s *Scanner) excluded(rel string) bool {
	for _, matcher := range s.exclude {
		if matcher.Match(rel) {
			return true
		}
	}
	return false
}
