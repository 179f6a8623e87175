package verify

import (
	"fmt"

	"github.com/c360studio/archgate/arch"
	"github.com/c360studio/archgate/extract"
	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/rules"
	"github.com/c360studio/archgate/scan"
)

// RunOOP executes the identifier-reference binding over an OOP tree
// (VB.NET / C#): forbidden imports and API calls in the Idea layer,
// reverse-dependency and cross-feature symbol checks, red flags.
//
// A tree with no layer files at all is a no-op, not a pass/fail: the
// Result carries NoSources and exits 0.
func RunOOP(opts Options) (*Result, error) {
	root, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	logger := opts.logger()

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = OOPExtensions
	}

	files, err := scan.New(exts, opts.Excludes, logger).Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var layerFiles []scan.File
	for _, f := range files {
		if _, ok := arch.LayerPrefix(f.Name); ok {
			layerFiles = append(layerFiles, f)
		}
	}

	res := &Result{Root: root, FilesScanned: len(files), LayerFiles: len(layerFiles)}
	if len(layerFiles) == 0 {
		res.NoSources = true
		return res, nil
	}

	classes := rules.ClassesByRole(layerFiles)

	var set finding.Set
	forEachFile(layerFiles, opts.workers(), &set, func(f scan.File) []finding.Finding {
		return checkOOPFile(f, classes, layerFiles)
	})

	return finalize(res, &set), nil
}

// checkOOPFile runs every identifier-binding stage for one layer file.
func checkOOPFile(f scan.File, classes map[arch.Role][]rules.Class, layerFiles []scan.File) []finding.Finding {
	var set finding.Set

	lines, err := extract.ReadLines(f.Path)
	if err != nil {
		set.Error(f.Path, 0, "file-read-error", err.Error())
		return set.Sorted()
	}

	prefix, _ := arch.LayerPrefix(f.Name)
	switch prefix {
	case "ida_":
		set.Add(rules.CheckForbiddenAPIs(f, lines)...)
		count := extract.CodeLines(lines, extract.CodeLineOptions{
			LineComments: extract.OOPCodeLineComments,
		})
		if w := rules.EmptyIdeaOOP(f.Path, count); w != nil {
			set.Add(*w)
		}
	case "prx_":
		set.Add(rules.CheckReverseRefs(f, lines, classes)...)
	case "poi_":
		set.Add(rules.CheckReverseRefs(f, lines, classes)...)
		if w := rules.FatPoiesisFirstLine(f.Path, lines); w != nil {
			set.Add(*w)
		}
	}

	set.Add(rules.CheckCrossFeature(f, lines, layerFiles)...)

	return set.Sorted()
}
