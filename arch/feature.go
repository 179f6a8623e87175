package arch

import (
	"path/filepath"
	"regexp"
	"strings"
)

var featurePathRe = regexp.MustCompile(`(?i)(?:^|[\\/])project[\\/]features[\\/]([^\\/]+)`)

// FeatureFromPath extracts the feature name implied by a file's location:
// the nearest "project/features/<name>" ancestor segment. Returns "" when
// the path does not cross the features directory. A path-derived feature
// always overrides the filename-derived one.
func FeatureFromPath(path string) string {
	if m := featurePathRe.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return ""
}

// SameFeatureHeader reports whether a referenced leaf name matches the
// source file's feature for the given role prefix, purely by naming:
// the leaf stem must be <prefix>_<feature> or <prefix>_<feature>_<suffix>.
func SameFeatureHeader(leaf, prefix, feature string) bool {
	if feature == "" {
		return false
	}
	stem := strings.ToLower(strings.TrimSuffix(leaf, filepath.Ext(leaf)))
	base := strings.ToLower(prefix + "_" + feature)
	return stem == base || strings.HasPrefix(stem, base+"_")
}

// SameFeatureInclude resolves the same-feature exception for an include.
// When multiple features legitimately define a header with an identical
// leaf name (fractal/vendored structure), the ownership map decides; the
// naming convention is the fallback.
func SameFeatureInclude(leaf, prefix, feature string, owners map[string]map[string]bool) bool {
	if feature == "" {
		return false
	}
	if features, ok := owners[leaf]; ok {
		return features[feature]
	}
	return SameFeatureHeader(leaf, prefix, feature)
}
