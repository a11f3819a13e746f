// Package watch re-runs extraction when plugin package sources change.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// DefaultDelay is how long changes are collected before the callback runs
const DefaultDelay = 100 * time.Millisecond

// Config holds configuration for a Watcher
type Config struct {
	// Root is the package source directory, watched recursively
	Root string

	// Patterns match the base names of files that trigger the callback.
	// No patterns (and no RootPatterns) match every file.
	Patterns []string

	// RootPatterns match base names only for files directly inside Root
	RootPatterns []string

	// Exclude holds glob patterns matched against root-relative slash paths
	Exclude []string

	// Delay is the debounce window (DefaultDelay if zero)
	Delay time.Duration
}

// FileWatcher monitors a package tree and reports changed source files
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	root      string
	patterns  []glob.Glob
	rootOnly  []glob.Glob
	exclude   []glob.Glob
	onChange  func([]string) error
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewFileWatcher creates a watcher calling onChange with the sorted list
// of files changed during each debounce window
func NewFileWatcher(cfg Config, onChange func([]string) error, logger *zap.Logger) (*FileWatcher, error) {
	if cfg.Root == "" {
		return nil, errors.New("watch root cannot be empty")
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	patterns, err := compileAll(cfg.Patterns)
	if err != nil {
		return nil, err
	}
	rootOnly, err := compileAll(cfg.RootPatterns)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(cfg.Delay),
		root:      filepath.Clean(cfg.Root),
		patterns:  patterns,
		rootOnly:  rootOnly,
		exclude:   exclude,
		onChange:  onChange,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}

	fw.debouncer.SetCallback(func(files []string) {
		if err := fw.onChange(files); err != nil {
			fw.logger.Error("error handling file changes", zap.Error(err))
		}
	})

	return fw, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid watch pattern %q: %w", pattern, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Start registers every directory under the root and begins watching
func (fw *FileWatcher) Start() error {
	if err := fw.addTree(fw.root, false); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.root, err)
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// addTree watches dir and every directory below it that is not ignored.
// With report set, matching files already present are passed to the
// debouncer, since they may have been written before the watch existed.
func (fw *FileWatcher) addTree(dir string, report bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != fw.root && fw.shouldIgnore(path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return fw.add(path)
		}
		if report && fw.matchesPattern(path) {
			fw.debouncer.Add(path)
		}
		return nil
	})
}

func (fw *FileWatcher) add(dir string) error {
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	fw.logger.Debug("watching directory", zap.String("dir", dir))
	return nil
}

// Stop stops the file watcher. Calling it twice is harmless.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	if fw.shouldIgnore(event.Name) {
		return
	}

	// New directories are watched too, along with anything created in
	// them before their watch was in place
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.addTree(event.Name, true); err != nil {
				fw.logger.Warn("cannot watch new directory", zap.Error(err))
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !fw.matchesPattern(event.Name) {
		return
	}

	fw.logger.Debug("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
	fw.debouncer.Add(event.Name)
}

// shouldIgnore reports hidden files and paths matching an exclude pattern
func (fw *FileWatcher) shouldIgnore(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}

	rel, err := filepath.Rel(fw.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range fw.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// matchesPattern checks the base name of path against the watch patterns.
// Root patterns apply only to files directly inside the root.
func (fw *FileWatcher) matchesPattern(path string) bool {
	if len(fw.patterns) == 0 && len(fw.rootOnly) == 0 {
		return true
	}

	base := filepath.Base(path)
	for _, g := range fw.patterns {
		if g.Match(base) {
			return true
		}
	}
	if filepath.Dir(path) == fw.root {
		for _, g := range fw.rootOnly {
			if g.Match(base) {
				return true
			}
		}
	}
	return false
}

// Debouncer collects file changes and triggers callbacks after a delay
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopChan chan struct{}
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
		stopChan: make(chan struct{}),
	}
}

// Add adds a file and restarts the delay
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	select {
	case <-d.stopChan:
		return
	default:
	}

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, func() {
		d.flush()
	})
}

// flush triggers the callback with the accumulated files, sorted
func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.files) == 0 {
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	sort.Strings(files)

	d.files = make(map[string]struct{})

	if d.callback != nil {
		d.callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop cancels a pending flush; later Adds are dropped
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	select {
	case <-d.stopChan:
	default:
		close(d.stopChan)
	}
}
