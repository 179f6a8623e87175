// Package scaffold creates the directory layout and template headers the
// conformance engine expects, so a fresh project starts gate-clean.
package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// managedDirs is the full directory convention, created idempotently.
var managedDirs = []string{
	"project",
	"project/config",
	"project/datastreams",
	"project/features",
	"infra",
	"infra/bootstrap",
	"infra/service",
	"infra/platform",
	"infra/platform/hal",
	"infra/platform/bsp",
	"deps",
	"deps/extern",
	"deps/middleware",
}

const coreContractTemplate = `#ifndef CFG_CORE_H
#define CFG_CORE_H

/* Core Contract header (shared types/interfaces). */

#endif /* CFG_CORE_H */
`

const projectConfigTemplate = `#ifndef CFG_PROJECT_H
#define CFG_PROJECT_H

/* Project target interface header (customize per project).
 * Praxis and Poiesis may include this header; Idea must not. */

#endif /* CFG_PROJECT_H */
`

const projectDataTemplate = `#ifndef DB_PROJECT_H
#define DB_PROJECT_H

/* Project data-resource header (persisted tables/records).
 * Resource headers never include feature-layer headers. */

#endif /* DB_PROJECT_H */
`

// Summary reports what a scaffold run did.
type Summary struct {
	Root         string
	DirsCreated  int
	FilesCreated int
	FilesSkipped int
	Features     []string
}

// Generator creates scaffold layouts.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger}
}

// Create builds the layout under root and optional feature folders with
// starter layer stubs. Existing files are never overwritten.
func (g *Generator) Create(root string, features []string) (*Summary, error) {
	names, err := NormalizeFeatureNames(features...)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scaffold root: %w", err)
	}

	sum := &Summary{Root: absRoot, Features: names}

	for _, rel := range managedDirs {
		dir := filepath.Join(absRoot, rel)
		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			sum.DirsCreated++
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := g.writeIfMissing(sum, filepath.Join(absRoot, "infra", "bootstrap", "cfg_core.h"), coreContractTemplate); err != nil {
		return nil, err
	}
	if err := g.writeIfMissing(sum, filepath.Join(absRoot, "project", "config", "cfg_project.h"), projectConfigTemplate); err != nil {
		return nil, err
	}
	if err := g.writeIfMissing(sum, filepath.Join(absRoot, "project", "config", "db_project.h"), projectDataTemplate); err != nil {
		return nil, err
	}

	for _, name := range names {
		featureDir := filepath.Join(absRoot, "project", "features", name)
		if err := os.MkdirAll(featureDir, 0o755); err != nil {
			return nil, fmt.Errorf("create feature %s: %w", name, err)
		}
		for _, stub := range featureStubs(name) {
			if err := g.writeIfMissing(sum, filepath.Join(featureDir, stub.name), stub.content); err != nil {
				return nil, err
			}
		}
	}

	return sum, nil
}

type stub struct {
	name    string
	content string
}

// featureStubs returns the starter layer files for a feature: a header and
// an implementation file per layer, named to classify correctly.
func featureStubs(feature string) []stub {
	var stubs []stub
	for _, tag := range []string{"ida", "prx", "poi"} {
		base := tag + "_" + feature
		guard := strings.ToUpper(regexp.MustCompile(`[^A-Za-z0-9]`).ReplaceAllString(base, "_")) + "_H"
		stubs = append(stubs,
			stub{base + ".h", fmt.Sprintf("#ifndef %s\n#define %s\n\n#endif /* %s */\n", guard, guard, guard)},
			stub{base + ".c", fmt.Sprintf("#include \"%s.h\"\n", base)},
		)
	}
	return stubs
}

func (g *Generator) writeIfMissing(sum *Summary, path, content string) error {
	if _, err := os.Stat(path); err == nil {
		sum.FilesSkipped++
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	g.logger.Debug("scaffold file created", slog.String("path", path))
	sum.FilesCreated++
	return nil
}

const invalidNameChars = `<>:"/\|?*`

// NormalizeFeatureNames splits comma-separated values, validates each name
// as a plain folder name, dedupes and sorts.
func NormalizeFeatureNames(values ...string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			name := strings.TrimSpace(item)
			if name == "" {
				continue
			}
			if err := validateFeatureName(name); err != nil {
				return nil, err
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func validateFeatureName(name string) error {
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid feature name %q: must be a folder name, not a path", name)
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid feature name %q: must not start with a dot", name)
	}
	if strings.ContainsAny(name, invalidNameChars) {
		return fmt.Errorf("invalid feature name %q: contains invalid path characters", name)
	}
	for _, r := range name {
		if r < 32 {
			return fmt.Errorf("invalid feature name %q: contains control characters", name)
		}
	}
	return nil
}
