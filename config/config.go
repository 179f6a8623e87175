// Package config provides configuration loading and management for archgate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete archgate configuration.
type Config struct {
	Root   string       `yaml:"root"`
	Scan   ScanConfig   `yaml:"scan"`
	Report ReportConfig `yaml:"report"`
	Gate   GateConfig   `yaml:"gate"`
	Watch  WatchConfig  `yaml:"watch"`
}

// ScanConfig configures source discovery.
type ScanConfig struct {
	// Extensions scanned by the include binding (default: .c .h .cpp .hpp).
	Extensions []string `yaml:"extensions"`
	// OOPExtensions scanned by the identifier binding (default: .vb .cs).
	OOPExtensions []string `yaml:"oop_extensions"`
	// Excludes are doublestar glob patterns relative to the root,
	// e.g. "**/build/**".
	Excludes []string `yaml:"excludes"`
}

// ReportConfig configures structured report output.
type ReportConfig struct {
	// Path is where the JSON report is written (empty = console only).
	Path string `yaml:"path"`
}

// GateConfig configures the multi-stage gate driver.
type GateConfig struct {
	// SpecsDir holds the specification documents checked by the spec stage.
	SpecsDir string `yaml:"specs_dir"`
	// CodeRoot is the source tree verified by the code stage
	// (empty = the scan root).
	CodeRoot string `yaml:"code_root"`
	// OOPRoot is the tree verified by the identifier-binding stage
	// (empty = the code root).
	OOPRoot string `yaml:"oop_root"`
	// ReportPath is where the combined gate report is written.
	ReportPath string `yaml:"report_path"`
	SkipSpec   bool   `yaml:"skip_spec"`
	SkipCode   bool   `yaml:"skip_code"`
	SkipOOP    bool   `yaml:"skip_oop"`
}

// WatchConfig configures the watch-mode re-run loop.
type WatchConfig struct {
	// Debounce is how long to wait for changes to settle before re-running.
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Root: "", // Auto-detect
		Scan: ScanConfig{
			Extensions:    []string{".c", ".h", ".cpp", ".hpp"},
			OOPExtensions: []string{".vb", ".cs"},
			Excludes:      nil,
		},
		Report: ReportConfig{
			Path: "",
		},
		Gate: GateConfig{
			SpecsDir:   "specs",
			ReportPath: ".archgate-gate-report.json",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions is required")
	}
	if len(c.Scan.OOPExtensions) == 0 {
		return fmt.Errorf("scan.oop_extensions is required")
	}
	if c.Gate.SpecsDir == "" {
		return fmt.Errorf("gate.specs_dir is required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Root != "" {
		c.Root = other.Root
	}

	if len(other.Scan.Extensions) > 0 {
		c.Scan.Extensions = other.Scan.Extensions
	}
	if len(other.Scan.OOPExtensions) > 0 {
		c.Scan.OOPExtensions = other.Scan.OOPExtensions
	}
	if len(other.Scan.Excludes) > 0 {
		c.Scan.Excludes = other.Scan.Excludes
	}

	if other.Report.Path != "" {
		c.Report.Path = other.Report.Path
	}

	if other.Gate.SpecsDir != "" {
		c.Gate.SpecsDir = other.Gate.SpecsDir
	}
	if other.Gate.CodeRoot != "" {
		c.Gate.CodeRoot = other.Gate.CodeRoot
	}
	if other.Gate.OOPRoot != "" {
		c.Gate.OOPRoot = other.Gate.OOPRoot
	}
	if other.Gate.ReportPath != "" {
		c.Gate.ReportPath = other.Gate.ReportPath
	}
	if other.Gate.SkipSpec {
		c.Gate.SkipSpec = true
	}
	if other.Gate.SkipCode {
		c.Gate.SkipCode = true
	}
	if other.Gate.SkipOOP {
		c.Gate.SkipOOP = true
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
