package config

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// chdirTemp runs the test from an empty temporary directory
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return tmpDir
}

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config to be non-nil")
	}

	// Check defaults
	if cfg.Root != "." {
		t.Errorf("expected default root '.', got %s", cfg.Root)
	}

	if cfg.Scan.Definitions != "*.py" {
		t.Errorf("expected default definitions pattern '*.py', got %s", cfg.Scan.Definitions)
	}

	if cfg.Scan.Scripts != "*.js" {
		t.Errorf("expected default scripts pattern '*.js', got %s", cfg.Scan.Scripts)
	}

	if len(cfg.Scan.Exclude) != 0 {
		t.Errorf("expected no default excludes, got %v", cfg.Scan.Exclude)
	}

	wantAuto := []string{"severity", "monitored", "locking"}
	if !reflect.DeepEqual(cfg.Panel.AutoColumns, wantAuto) {
		t.Errorf("expected default auto columns %v, got %v", wantAuto, cfg.Panel.AutoColumns)
	}

	if cfg.Diagram.Header != "RELATIONSHIPS_YUML" {
		t.Errorf("expected default header 'RELATIONSHIPS_YUML', got %s", cfg.Diagram.Header)
	}

	if cfg.LogLevel() != zapcore.WarnLevel {
		t.Errorf("expected default log level warn, got %s", cfg.LogLevel())
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	chdirTemp(t)

	// Write config file
	configContent := `
root: src/ZenPacks/acme/Widgets
scan:
  definitions: "[A-Z]*.py"
  exclude:
    - resources/vendor
panel:
  auto_columns: [severity]
diagram:
  header: YUML
log:
  level: debug
`
	os.WriteFile("zplc.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Root != "src/ZenPacks/acme/Widgets" {
		t.Errorf("expected root 'src/ZenPacks/acme/Widgets', got %s", cfg.Root)
	}

	if cfg.Scan.Definitions != "[A-Z]*.py" {
		t.Errorf("expected definitions '[A-Z]*.py', got %s", cfg.Scan.Definitions)
	}

	// Unset keys keep their defaults
	if cfg.Scan.Scripts != "*.js" {
		t.Errorf("expected default scripts pattern, got %s", cfg.Scan.Scripts)
	}

	if !reflect.DeepEqual(cfg.Scan.Exclude, []string{"resources/vendor"}) {
		t.Errorf("expected exclude [resources/vendor], got %v", cfg.Scan.Exclude)
	}

	if !reflect.DeepEqual(cfg.Panel.AutoColumns, []string{"severity"}) {
		t.Errorf("expected auto columns [severity], got %v", cfg.Panel.AutoColumns)
	}

	if cfg.Diagram.Header != "YUML" {
		t.Errorf("expected header 'YUML', got %s", cfg.Diagram.Header)
	}

	if cfg.LogLevel() != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %s", cfg.LogLevel())
	}
}

func TestLoadWithEnvironment(t *testing.T) {
	chdirTemp(t)
	os.WriteFile("zplc.yml", []byte("log:\n  level: info\n"), 0644)

	t.Setenv("ZPLC_ROOT", "/tmp/package")
	t.Setenv("ZPLC_LOG_LEVEL", "error")
	t.Setenv("ZPLC_DIAGRAM_HEADER", "DIAGRAM")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Root != "/tmp/package" {
		t.Errorf("expected root from environment, got %s", cfg.Root)
	}

	if cfg.LogLevel() != zapcore.ErrorLevel {
		t.Errorf("expected environment to override the file, got %s", cfg.LogLevel())
	}

	if cfg.Diagram.Header != "DIAGRAM" {
		t.Errorf("expected header from environment, got %s", cfg.Diagram.Header)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	chdirTemp(t)
	os.WriteFile("zplc.yml", []byte("scan: [unterminated\n"), 0644)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Root:    ".",
			Scan:    ScanConfig{Definitions: "*.py", Scripts: "*.js"},
			Diagram: DiagramConfig{Header: "RELATIONSHIPS_YUML"},
			Log:     LogConfig{Level: "warn"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty definitions pattern",
			mutate:  func(c *Config) { c.Scan.Definitions = " " },
			wantErr: "scan.definitions",
		},
		{
			name:    "empty scripts pattern",
			mutate:  func(c *Config) { c.Scan.Scripts = "" },
			wantErr: "scan.scripts",
		},
		{
			name:    "empty header",
			mutate:  func(c *Config) { c.Diagram.Header = "" },
			wantErr: "diagram.header",
		},
		{
			name:    "unknown level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLogLevelFallback(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "loud"}}
	if cfg.LogLevel() != zapcore.WarnLevel {
		t.Errorf("expected fallback to warn, got %s", cfg.LogLevel())
	}
}
