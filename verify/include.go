package verify

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/archgate/arch"
	"github.com/c360studio/archgate/extract"
	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/rules"
	"github.com/c360studio/archgate/scan"
)

// Run executes the textual-include binding over a C-family tree: layout
// checks, per-file placement, include-graph rules, red flags.
func Run(opts Options) (*Result, error) {
	root, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	logger := opts.logger()

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = CExtensions
	}

	tree := arch.NewTree(root)
	var set finding.Set
	set.Add(rules.CheckLayout(tree)...)

	files, err := scan.New(exts, opts.Excludes, logger).Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	res := &Result{Root: root, FilesScanned: len(files)}
	if len(files) == 0 {
		res.NoSources = true
		set.Error(root, 1, "layout.required", fmt.Sprintf("No source files found under: %s", root))
		return finalize(res, &set), nil
	}

	ctx := &rules.IncludeContext{
		Tree:                   tree,
		HeaderOwners:           scan.HeaderOwners(files),
		ProjectResourceHeaders: scan.ProjectResourceHeaders(files, tree),
		ProjectSharedHeaders:   scan.ProjectConfigHeaders(files, tree),
	}

	forEachFile(files, opts.workers(), &set, func(f scan.File) []finding.Finding {
		return checkCFile(f, ctx, logger)
	})

	return finalize(res, &set), nil
}

// checkCFile runs the full include-binding pipeline for one file. A read
// failure is isolated into a file-level finding; it never aborts the run.
func checkCFile(f scan.File, ctx *rules.IncludeContext, logger *slog.Logger) []finding.Finding {
	var set finding.Set

	locFindings, skip := rules.CheckLocation(f, ctx.Tree)
	set.Add(locFindings...)
	if skip {
		return set.Sorted()
	}

	refs, err := extract.Includes(f.Path)
	if err != nil {
		set.Error(f.Path, 1, "read", fmt.Sprintf("Failed to read file: %v", err))
		return set.Sorted()
	}
	set.Add(rules.CheckIncludes(f, refs, ctx)...)

	// Red-flag heuristics apply to implementation files only.
	if f.Ext == ".c" {
		lines, err := extract.ReadLines(f.Path)
		if err != nil {
			logger.Warn("red-flag scan skipped", slog.String("path", f.Path), slog.String("error", err.Error()))
			return set.Sorted()
		}
		switch f.Role {
		case arch.RoleIdea:
			count := extract.CodeLines(lines, extract.CodeLineOptions{
				LineComments:   extract.CCodeLineComments,
				SkipDirectives: true,
			})
			if w := rules.EmptyIdea(f.Path, count); w != nil {
				set.Add(*w)
			}
		case arch.RolePoiesis:
			if w := rules.FatPoiesisWholeFile(f.Path, lines); w != nil {
				set.Add(*w)
			}
		}
	}

	return set.Sorted()
}
