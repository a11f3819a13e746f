package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// recorder collects callback batches
type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) record(files []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, files)
	return nil
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0)
	for _, batch := range r.batches {
		out = append(out, batch...)
	}
	return out
}

// waitFor polls until cond holds or the deadline passes
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func contains(files []string, want string) bool {
	for _, f := range files {
		if f == want {
			return true
		}
	}
	return false
}

func TestFileWatcher_Start(t *testing.T) {
	tmpDir := t.TempDir()
	scriptsDir := filepath.Join(tmpDir, "resources", "js")
	if err := os.MkdirAll(scriptsDir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	definition := filepath.Join(tmpDir, "Card.py")
	script := filepath.Join(scriptsDir, "card.js")
	for _, f := range []string{definition, script} {
		if err := os.WriteFile(f, []byte("initial content"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	rec := &recorder{}
	watcher, err := NewFileWatcher(Config{
		Root:     tmpDir,
		Patterns: []string{"*.py", "*.js"},
		Delay:    30 * time.Millisecond,
	}, rec.record, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(script, []byte("modified content"), 0644); err != nil {
		t.Fatalf("Failed to modify file: %v", err)
	}
	if err := os.WriteFile(definition, []byte("modified content"), 0644); err != nil {
		t.Fatalf("Failed to modify file: %v", err)
	}

	ok := waitFor(t, func() bool {
		files := rec.all()
		return contains(files, script) && contains(files, definition)
	})
	if !ok {
		t.Fatalf("Expected both sources to be reported, got %v", rec.all())
	}

	if contains(rec.all(), filepath.Join(tmpDir, "notes.txt")) {
		t.Error("Expected non-matching file to be ignored")
	}
}

func TestFileWatcher_NewDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	rec := &recorder{}
	watcher, err := NewFileWatcher(Config{
		Root:     tmpDir,
		Patterns: []string{"*.js"},
		Delay:    30 * time.Millisecond,
	}, rec.record, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	// The script lands before the new directories can be watched
	dir := filepath.Join(tmpDir, "resources", "js")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	script := filepath.Join(dir, "port.js")
	if err := os.WriteFile(script, []byte("content"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !waitFor(t, func() bool { return contains(rec.all(), script) }) {
		t.Fatalf("Expected script in new directory to be reported, got %v", rec.all())
	}
}

func TestFileWatcher_NestedDirectoryStaysWatched(t *testing.T) {
	tmpDir := t.TempDir()

	rec := &recorder{}
	watcher, err := NewFileWatcher(Config{
		Root:     tmpDir,
		Patterns: []string{"*.js"},
		Delay:    30 * time.Millisecond,
	}, rec.record, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	dir := filepath.Join(tmpDir, "resources", "js")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	script := filepath.Join(dir, "port.js")
	if err := os.WriteFile(script, []byte("later edit"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !waitFor(t, func() bool { return contains(rec.all(), script) }) {
		t.Fatalf("Expected edit in nested directory to be reported, got %v", rec.all())
	}
}

func TestFileWatcher_DefinitionsOnlyAtRoot(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "migrate")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	rec := &recorder{}
	watcher, err := NewFileWatcher(Config{
		Root:         tmpDir,
		Patterns:     []string{"*.js"},
		RootPatterns: []string{"*.py"},
		Delay:        30 * time.Millisecond,
	}, rec.record, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	nested := filepath.Join(subDir, "Upgrade.py")
	definition := filepath.Join(tmpDir, "Card.py")
	for _, f := range []string{nested, definition} {
		if err := os.WriteFile(f, []byte("x = 1"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	if !waitFor(t, func() bool { return contains(rec.all(), definition) }) {
		t.Fatalf("Expected root definition to be reported, got %v", rec.all())
	}
	if contains(rec.all(), nested) {
		t.Errorf("Expected nested .py file to be ignored, got %v", rec.all())
	}
}

func TestNewFileWatcher_Errors(t *testing.T) {
	noop := func([]string) error { return nil }

	if _, err := NewFileWatcher(Config{}, noop, nil); err == nil {
		t.Error("Expected error for empty root")
	}
	if _, err := NewFileWatcher(Config{Root: ".", Patterns: []string{"[js"}}, noop, nil); err == nil {
		t.Error("Expected error for invalid pattern")
	}
	if _, err := NewFileWatcher(Config{Root: ".", Exclude: []string{"[vendor"}}, noop, nil); err == nil {
		t.Error("Expected error for invalid exclude pattern")
	}
}

func TestDebouncer_Add(t *testing.T) {
	var mu sync.Mutex
	var called bool
	var files []string

	debouncer := NewDebouncer(50 * time.Millisecond)
	debouncer.SetCallback(func(f []string) {
		mu.Lock()
		defer mu.Unlock()
		called = true
		files = f
	})

	// Add multiple files
	debouncer.Add("file2.py")
	debouncer.Add("file1.py")
	debouncer.Add("file2.py") // Duplicate

	// Wait for debounce
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if !called {
		t.Error("Expected callback to be called")
	}

	if len(files) != 2 || files[0] != "file1.py" || files[1] != "file2.py" {
		t.Errorf("Expected 2 unique sorted files, got %v", files)
	}
}

func TestDebouncer_MultipleFlushes(t *testing.T) {
	var mu sync.Mutex
	var callCount int

	debouncer := NewDebouncer(30 * time.Millisecond)
	debouncer.SetCallback(func(f []string) {
		mu.Lock()
		defer mu.Unlock()
		callCount++
	})

	// First batch
	debouncer.Add("file1.py")
	time.Sleep(100 * time.Millisecond)

	// Second batch
	debouncer.Add("file2.py")
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if callCount != 2 {
		t.Errorf("Expected 2 callback calls, got %d", callCount)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var mu sync.Mutex
	var callCount int

	debouncer := NewDebouncer(30 * time.Millisecond)
	debouncer.SetCallback(func(f []string) {
		mu.Lock()
		defer mu.Unlock()
		callCount++
	})

	debouncer.Add("file1.py")
	debouncer.Stop()
	debouncer.Add("file2.py")
	debouncer.Stop()
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if callCount != 0 {
		t.Errorf("Expected no callback after Stop, got %d", callCount)
	}
}

func TestFileWatcher_ShouldIgnore(t *testing.T) {
	watcher, err := NewFileWatcher(Config{
		Root:    "/pkg",
		Exclude: []string{"resources/vendor", "*.swp"},
	}, func([]string) error { return nil }, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/pkg/Card.py", false},
		{"/pkg/Card.py.swp", true},
		{"/pkg/resources/vendor", true},
		{"/pkg/resources/js/card.js", false},
		{"/pkg/.git", true},             // hidden directory
		{"/pkg/resources/.#a.js", true}, // hidden file
	}

	for _, tt := range tests {
		result := watcher.shouldIgnore(tt.path)
		if result != tt.expected {
			t.Errorf("shouldIgnore(%q) = %v, expected %v", tt.path, result, tt.expected)
		}
	}
}

func TestFileWatcher_MatchesPattern(t *testing.T) {
	tests := []struct {
		patterns []string
		path     string
		expected bool
	}{
		{[]string{"*.py"}, "/pkg/Card.py", true},
		{[]string{"*.py"}, "/pkg/card.js", false},
		{[]string{"*.py", "*.js"}, "/pkg/resources/js/card.js", true},
		{[]string{"[A-Z]*.py"}, "/pkg/__init__.py", false},
		{[]string{}, "/pkg/anything.txt", true}, // No patterns = match all
	}

	for _, tt := range tests {
		patterns, err := compileAll(tt.patterns)
		if err != nil {
			t.Fatalf("compileAll(%v): %v", tt.patterns, err)
		}
		watcher := &FileWatcher{root: "/pkg", patterns: patterns}
		result := watcher.matchesPattern(tt.path)
		if result != tt.expected {
			t.Errorf("matchesPattern(%v, %q) = %v, expected %v",
				tt.patterns, tt.path, result, tt.expected)
		}
	}
}

func TestFileWatcher_MatchesRootPattern(t *testing.T) {
	patterns, _ := compileAll([]string{"*.js"})
	rootOnly, _ := compileAll([]string{"*.py"})
	watcher := &FileWatcher{root: "/pkg", patterns: patterns, rootOnly: rootOnly}

	tests := []struct {
		path     string
		expected bool
	}{
		{"/pkg/Card.py", true},
		{"/pkg/migrate/Upgrade.py", false},
		{"/pkg/resources/js/card.js", true},
		{"/pkg/card.js", true},
	}

	for _, tt := range tests {
		if got := watcher.matchesPattern(tt.path); got != tt.expected {
			t.Errorf("matchesPattern(%q) = %v, expected %v", tt.path, got, tt.expected)
		}
	}
}

func TestFileWatcher_Stop(t *testing.T) {
	watcher, err := NewFileWatcher(Config{Root: t.TempDir()}, func(files []string) error { return nil }, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	// Stop should not error
	if err := watcher.Stop(); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}

	// Second stop is a no-op
	if err := watcher.Stop(); err != nil {
		t.Errorf("second Stop() returned error: %v", err)
	}
}

func BenchmarkDebouncer_Add(b *testing.B) {
	debouncer := NewDebouncer(100 * time.Millisecond)
	debouncer.SetCallback(func(files []string) {})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		debouncer.Add("file.py")
	}
}
