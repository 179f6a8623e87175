package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/archgate/arch"
	"github.com/c360studio/archgate/extract"
	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/scan"
)

// Class is a layer class derived from a filename: the stem is the class
// name in both OOP sub-dialects.
type Class struct {
	Name    string
	Feature string
	Role    arch.Role
}

// ClassesByRole indexes the layer classes of a file set by role. Only
// feature-layer files (ida_/prx_/poi_) participate.
func ClassesByRole(files []scan.File) map[arch.Role][]Class {
	out := make(map[arch.Role][]Class)
	for _, f := range files {
		prefix, ok := arch.LayerPrefix(f.Name)
		if !ok {
			continue
		}
		role := layerRoleForPrefix(prefix)
		out[role] = append(out[role], Class{
			Name:    f.Stem,
			Feature: arch.FeatureName(f.Stem),
			Role:    role,
		})
	}
	return out
}

func layerRoleForPrefix(prefix string) arch.Role {
	switch prefix {
	case "ida_":
		return arch.RoleIdea
	case "prx_":
		return arch.RolePraxis
	default:
		return arch.RolePoiesis
	}
}

// CheckForbiddenAPIs scans an Idea-role file for forbidden namespace
// imports (per sub-dialect) and forbidden API call fragments. Idea is the
// domain-logic-only layer: no UI, no I/O, no platform access.
func CheckForbiddenAPIs(f scan.File, lines []string) []finding.Finding {
	var set finding.Set

	for _, hit := range extract.MatchLineRules(lines, extract.ImportRulesFor(f.Ext)) {
		set.Error(f.Path, hit.Line, hit.Rule.ID, "Forbidden in ida_: "+hit.Rule.Message)
	}
	for _, hit := range extract.MatchLineRules(lines, extract.CallRules()) {
		set.Error(f.Path, hit.Line, hit.Rule.ID, "Forbidden in ida_: "+hit.Rule.Message)
	}

	return set.Sorted()
}

// CheckReverseRefs flags dependency-direction violations expressed as bare
// symbol usage: Praxis referencing any Idea class, Poiesis referencing any
// Idea or Praxis class. The identifier binding has no import graph to walk,
// so whole-word class-name matching stands in for one.
func CheckReverseRefs(f scan.File, lines []string, classes map[arch.Role][]Class) []finding.Finding {
	prefix, ok := arch.LayerPrefix(f.Name)
	if !ok {
		return nil
	}

	var forbidden []arch.Role
	switch layerRoleForPrefix(prefix) {
	case arch.RolePraxis:
		forbidden = []arch.Role{arch.RoleIdea}
	case arch.RolePoiesis:
		forbidden = []arch.Role{arch.RoleIdea, arch.RolePraxis}
	default:
		return nil
	}

	type target struct {
		pattern *regexp.Regexp
		name    string
		label   string
	}
	var targets []target
	for _, role := range forbidden {
		for _, c := range classes[role] {
			if c.Name == f.Stem {
				continue // never self-match
			}
			targets = append(targets, target{extract.SymbolPattern(c.Name), c.Name, role.String()})
		}
	}
	if len(targets) == 0 {
		return nil
	}

	var set finding.Set
	for i, line := range lines {
		if extract.IsCommentLine(line) {
			continue
		}
		for _, t := range targets {
			if t.pattern.MatchString(line) {
				rule := fmt.Sprintf("%sno-%s-ref", prefix, t.label)
				set.Error(f.Path, i+1, rule,
					fmt.Sprintf("Reverse dependency: %s references %s (%s layer)", prefix, t.name, t.label))
			}
		}
	}
	return set.Sorted()
}

// CheckCrossFeature flags lateral feature coupling: whole-word occurrences
// of another feature's layer class names. Shared-resource-prefixed files
// are exempt on both sides; they belong to the capability or data plane,
// not to any feature.
func CheckCrossFeature(f scan.File, lines []string, layerFiles []scan.File) []finding.Finding {
	if arch.IsSharedResource(f.Name) {
		return nil
	}
	ownFeature := arch.FeatureName(f.Stem)
	if ownFeature == "" {
		return nil
	}

	type target struct {
		pattern *regexp.Regexp
		name    string
		feature string
	}
	var targets []target
	for _, other := range layerFiles {
		if arch.IsSharedResource(other.Name) {
			continue
		}
		otherFeature := arch.FeatureName(other.Stem)
		if otherFeature == "" {
			continue
		}
		if strings.EqualFold(otherFeature, ownFeature) {
			continue
		}
		if _, ok := arch.LayerPrefix(other.Name); !ok {
			continue
		}
		targets = append(targets, target{extract.SymbolPattern(other.Stem), other.Stem, otherFeature})
	}
	if len(targets) == 0 {
		return nil
	}

	var set finding.Set
	for i, line := range lines {
		if extract.IsCommentLine(line) {
			continue
		}
		for _, t := range targets {
			if t.pattern.MatchString(line) {
				set.Error(f.Path, i+1, "cross-feature-layer-ref",
					fmt.Sprintf("Cross-feature reference: references %s from feature '%s' (use stm_ data plane)", t.name, t.feature))
			}
		}
	}
	return set.Sorted()
}
