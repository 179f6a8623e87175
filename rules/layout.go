// Package rules implements the conformance decision logic: required-layout
// checks, per-file placement validation, the directed role dependency
// graph, cross-feature isolation, and the advisory red-flag heuristics.
package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/c360studio/archgate/arch"
	"github.com/c360studio/archgate/finding"
)

// CheckLayout validates the tree-level layout requirements: the required
// infra and dependency roots, the Core contract header, the project config
// directory with its target interface header, and the absence of legacy
// top-level directories. Layout errors are recorded but never stop per-file
// scanning.
func CheckLayout(tree arch.Tree) []finding.Finding {
	var set finding.Set

	if !isDir(tree.Bootstrap) {
		set.Error(tree.Root, 1, "layout.required",
			fmt.Sprintf("Missing required infra bootstrap path: %s", tree.Bootstrap))
	}
	if !isDir(tree.DepsRoot) {
		set.Error(tree.Root, 1, "layout.required",
			fmt.Sprintf("Missing required dependency repository path: %s", tree.DepsRoot))
	}

	contract := filepath.Join(tree.Bootstrap, arch.CoreContractHeader)
	if !isFile(contract) {
		set.Error(tree.Root, 1, "layout.required",
			fmt.Sprintf("Missing required Core Contract header: %s", contract))
	}

	if isDir(tree.Config) {
		target := filepath.Join(tree.Config, arch.ProjectConfigHeader)
		if !isFile(target) {
			set.Error(tree.Config, 1, "layout.required",
				fmt.Sprintf("Missing required project target interface header: %s", target))
		}
	} else {
		set.Error(tree.Root, 1, "layout.required",
			fmt.Sprintf("Missing required project config folder: %s", tree.Config))
	}

	for _, legacy := range tree.LegacyDirs() {
		if isDir(legacy.Path) {
			set.Error(tree.Root, 1, "layout.legacy",
				fmt.Sprintf("%s: %s", legacy.Message, legacy.Path))
		}
	}

	return set.Sorted()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
