package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Scan.Extensions) != 4 {
		t.Errorf("expected 4 default extensions, got %d", len(cfg.Scan.Extensions))
	}
	if cfg.Scan.Extensions[0] != ".c" {
		t.Errorf("expected first extension .c, got %s", cfg.Scan.Extensions[0])
	}
	if len(cfg.Scan.OOPExtensions) != 2 {
		t.Errorf("expected 2 default OOP extensions, got %d", len(cfg.Scan.OOPExtensions))
	}
	if cfg.Gate.SpecsDir != "specs" {
		t.Errorf("expected default specs dir specs, got %s", cfg.Gate.SpecsDir)
	}
	if cfg.Gate.ReportPath != ".archgate-gate-report.json" {
		t.Errorf("expected default gate report path, got %s", cfg.Gate.ReportPath)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing extensions",
			modify:  func(c *Config) { c.Scan.Extensions = nil },
			wantErr: true,
		},
		{
			name:    "missing oop extensions",
			modify:  func(c *Config) { c.Scan.OOPExtensions = nil },
			wantErr: true,
		},
		{
			name:    "missing specs dir",
			modify:  func(c *Config) { c.Gate.SpecsDir = "" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "archgate.yaml")

	content := `
root: "/test/tree"
scan:
  extensions:
    - .c
    - .h
  excludes:
    - "**/build/**"
report:
  path: "out/report.json"
gate:
  specs_dir: "docs/specs"
  skip_spec: true
watch:
  debounce: 2s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Root != "/test/tree" {
		t.Errorf("expected root /test/tree, got %s", cfg.Root)
	}
	if len(cfg.Scan.Extensions) != 2 {
		t.Errorf("expected 2 extensions, got %d", len(cfg.Scan.Extensions))
	}
	if len(cfg.Scan.Excludes) != 1 || cfg.Scan.Excludes[0] != "**/build/**" {
		t.Errorf("unexpected excludes: %v", cfg.Scan.Excludes)
	}
	if cfg.Report.Path != "out/report.json" {
		t.Errorf("expected report path out/report.json, got %s", cfg.Report.Path)
	}
	if cfg.Gate.SpecsDir != "docs/specs" {
		t.Errorf("expected specs dir docs/specs, got %s", cfg.Gate.SpecsDir)
	}
	if !cfg.Gate.SkipSpec {
		t.Error("expected skip_spec true")
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Root: "/override/tree",
		Scan: ScanConfig{
			Excludes: []string{"**/gen/**"},
		},
	}

	base.Merge(override)

	if base.Root != "/override/tree" {
		t.Errorf("expected root /override/tree, got %s", base.Root)
	}
	if len(base.Scan.Excludes) != 1 {
		t.Errorf("expected 1 exclude, got %d", len(base.Scan.Excludes))
	}
	// Extensions should remain from base since override didn't set them
	if len(base.Scan.Extensions) != 4 {
		t.Errorf("expected extensions to remain default, got %v", base.Scan.Extensions)
	}
	if base.Gate.SpecsDir != "specs" {
		t.Errorf("expected specs dir to remain default, got %s", base.Gate.SpecsDir)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "archgate.yaml")

	cfg := DefaultConfig()
	cfg.Root = "/saved/tree"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Root != "/saved/tree" {
		t.Errorf("expected root /saved/tree, got %s", loaded.Root)
	}
}
