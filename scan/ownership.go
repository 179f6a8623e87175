package scan

import (
	"path/filepath"

	"github.com/c360studio/archgate/arch"
)

// headerExts are the extensions that participate in header ownership.
var headerExts = map[string]bool{".h": true, ".hpp": true}

// HeaderOwners maps a header leaf name to the set of features that define
// a copy of it under their own feature folder. When several features
// legitimately carry a header with the same leaf name (fractal or vendored
// structure), the map decides which references count as same-feature.
func HeaderOwners(files []File) map[string]map[string]bool {
	owners := make(map[string]map[string]bool)
	for _, f := range files {
		if !headerExts[f.Ext] {
			continue
		}
		feature := arch.FeatureFromPath(f.Path)
		if feature == "" {
			continue
		}
		set, ok := owners[f.Name]
		if !ok {
			set = make(map[string]bool)
			owners[f.Name] = set
		}
		set[feature] = true
	}
	return owners
}

// ProjectConfigHeaders collects the leaf names of headers sitting directly
// in the project config directory. Feature-scoped roles may reference these
// project-level shared headers from any feature.
func ProjectConfigHeaders(files []File, tree arch.Tree) map[string]bool {
	names := make(map[string]bool)
	for _, f := range files {
		if f.Ext != ".h" {
			continue
		}
		if filepath.Dir(f.Path) == tree.Config {
			names[f.Name] = true
		}
	}
	return names
}

// ProjectResourceHeaders collects the leaf names of resource-role headers
// (config, data, stream) that live under a project-managed root, including
// roots replicated inside a nested dependency unit. Modules and platform
// layers must not include these directly.
func ProjectResourceHeaders(files []File, tree arch.Tree) map[string]bool {
	names := make(map[string]bool)
	for _, f := range files {
		if !headerExts[f.Ext] {
			continue
		}
		if !f.Role.IsResource() {
			continue
		}
		p := tree.Place(f.Path)
		if p.AnyFeatures || p.AnyConfig || p.AnyDatastreams {
			names[f.Name] = true
		}
	}
	return names
}
