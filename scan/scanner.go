// Package scan discovers source files under a root and derives the
// read-only per-run snapshots the rule engine evaluates against.
package scan

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/archgate/arch"
)

// DefaultExcludeDirs are directory names skipped by every scan.
var DefaultExcludeDirs = []string{".git", "node_modules", "vendor"}

// File is a discovered source file. It is immutable for the run's duration.
type File struct {
	Path string // absolute
	Rel  string // slash-separated, relative to the scan root
	Name string // leaf name
	Stem string // leaf name without extension
	Ext  string // lowercase extension including the dot

	Role arch.Role
	// Feature is the resolved feature scope: the path-derived feature when
	// present, otherwise the filename-derived one. Empty for non-feature
	// roles and files outside any feature folder.
	Feature string
}

// Scanner walks a directory tree collecting source files by extension.
type Scanner struct {
	extensions map[string]bool
	excludes   []string // doublestar patterns matched against Rel
	logger     *slog.Logger
}

// New creates a Scanner for the given extensions (normalized to a leading
// dot, lowercase) and exclude glob patterns.
func New(extensions, excludes []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &Scanner{extensions: exts, excludes: excludes, logger: logger}
}

// Scan walks root and returns every matching source file, sorted by path.
// Unreadable subdirectories are skipped, not fatal; only a missing root is
// an error for the caller to surface.
func (s *Scanner) Scan(root string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			s.logger.Warn("skipping unreadable path", slog.String("path", path), slog.String("error", walkErr.Error()))
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && s.excludedDir(d.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !s.extensions[ext] {
			return nil
		}
		if s.excludedFile(rel) {
			return nil
		}

		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		role, implied := arch.Classify(stem)
		feature := implied
		if fromPath := arch.FeatureFromPath(path); fromPath != "" {
			feature = fromPath
		}

		files = append(files, File{
			Path:    path,
			Rel:     rel,
			Name:    d.Name(),
			Stem:    stem,
			Ext:     ext,
			Role:    role,
			Feature: feature,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *Scanner) excludedDir(name, rel string) bool {
	for _, d := range DefaultExcludeDirs {
		if name == d {
			return true
		}
	}
	for _, pattern := range s.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		// A directory is also excluded when the pattern can only match
		// paths below it, e.g. pattern "build/**" and rel "build".
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
	}
	return false
}

func (s *Scanner) excludedFile(rel string) bool {
	for _, pattern := range s.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
