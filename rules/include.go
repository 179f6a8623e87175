package rules

import (
	"fmt"
	"regexp"

	"github.com/c360studio/archgate/arch"
	"github.com/c360studio/archgate/extract"
	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/scan"
)

// IncludeContext carries the read-only per-run snapshots the include rules
// evaluate against. Built once before evaluation; never mutated.
type IncludeContext struct {
	Tree arch.Tree

	// HeaderOwners maps header leaf names to owning features, resolving
	// same-feature exceptions when several features define a header with
	// an identical leaf name.
	HeaderOwners map[string]map[string]bool

	// ProjectResourceHeaders is the set of cfg_/db_/stm_ leaf names found
	// under project-managed roots.
	ProjectResourceHeaders map[string]bool

	// ProjectSharedHeaders are the project-level (non-feature) headers a
	// feature-scoped role may always reference.
	ProjectSharedHeaders map[string]bool
}

// edge is one forbidden transition in the directed role graph, with its
// escape hatches. A reference violates the edge when the leaf matches the
// pattern (or the resource set) and no exception applies.
type edge struct {
	pattern     *regexp.Regexp // leaf prefix pattern; nil when resourceSet is set
	resourceSet bool           // match leaves in ProjectResourceHeaders instead

	rule    string
	message string // prefix; the include target is appended

	allowLeaves     map[string]bool // exact leaf names always allowed
	allowContract   bool            // shared-contract exception (cfg_core.h)
	sameFeature     string          // role tag for the same-feature exception, "" = none
	allowProjectCfg bool            // project-level-shared exception
}

func (e edge) violated(leaf, feature string, ctx *IncludeContext) bool {
	if e.resourceSet {
		if !ctx.ProjectResourceHeaders[leaf] {
			return false
		}
	} else if !e.pattern.MatchString(leaf) {
		return false
	}
	if e.allowContract && leaf == arch.CoreContractHeader {
		return false
	}
	if e.allowLeaves[leaf] {
		return false
	}
	if e.allowProjectCfg && ctx.ProjectSharedHeaders[leaf] {
		return false
	}
	if e.sameFeature != "" && arch.SameFeatureInclude(leaf, e.sameFeature, feature, ctx.HeaderOwners) {
		return false
	}
	return true
}

func leaves(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var (
	prxPat      = regexp.MustCompile(`^prx_`)
	poiPat      = regexp.MustCompile(`^poi_`)
	idaPat      = regexp.MustCompile(`^ida_`)
	cfgPat      = regexp.MustCompile(`^cfg_`)
	dbPat       = regexp.MustCompile(`^db_`)
	halPat      = regexp.MustCompile(`^hal_`)
	lowerPat    = regexp.MustCompile(`^(db_|stm_|mdw_|svc_|hal_|bsp_)`)
	layerPat    = regexp.MustCompile(`^(ida_|prx_|poi_)`)
	prxPoiPat   = regexp.MustCompile(`^(prx_|poi_)`)
	platformPat = regexp.MustCompile(`^(hal_|bsp_)`)
	upperModPat = regexp.MustCompile(`^(ida_|prx_|poi_|mdw_|svc_)`)
)

// includeEdges is the directed role graph: source role → forbidden target
// patterns with their exceptions. The rule engine is one generic walk over
// this table.
var includeEdges = map[arch.Role][]edge{
	arch.RoleCoreIdea: {
		{pattern: prxPat, rule: "ida_core.include", message: "ida_core must not include feature praxis", allowLeaves: leaves("prx_core.h")},
		{pattern: poiPat, rule: "ida_core.include", message: "ida_core must not include feature poiesis", allowLeaves: leaves("poi_core.h")},
		{pattern: cfgPat, rule: "ida_core.include", message: "ida_core may include only core contract headers", allowContract: true},
		{pattern: lowerPat, rule: "ida_core.include", message: "ida_core must not include lower layer/resource headers directly"},
	},
	arch.RoleIdea: {
		{pattern: prxPat, rule: "ida.include", message: "Idea must include only its own feature Praxis headers", sameFeature: "prx"},
		{pattern: poiPat, rule: "ida.include", message: "Idea must include only its own feature Poiesis headers", sameFeature: "poi"},
		{pattern: idaPat, rule: "ida.include", message: "Idea must not include other features' Idea headers", sameFeature: "ida"},
		{pattern: cfgPat, rule: "ida.include", message: "Idea must not include cfg_ directly (except core contract)", allowContract: true},
		{pattern: lowerPat, rule: "ida.include", message: "Idea must not include lower layer/resource headers directly"},
	},
	arch.RoleCorePoiesis: {
		{pattern: idaPat, rule: "poi_core.include", message: "poi_core must not include feature ideas", allowLeaves: leaves("ida_core.h")},
		{pattern: prxPoiPat, rule: "poi_core.include", message: "poi_core must not include feature PRX/POI headers", allowLeaves: leaves("poi_core.h")},
		{pattern: platformPat, rule: "poi_core.include", message: "poi_core must not include platform headers directly"},
		{pattern: cfgPat, rule: "poi_core.include", message: "poi_core may include only core contract headers", allowContract: true},
	},
	arch.RoleCorePraxis: {
		{pattern: idaPat, rule: "prx_core.include", message: "prx_core must not include feature ideas", allowLeaves: leaves("ida_core.h")},
		{pattern: prxPoiPat, rule: "prx_core.include", message: "prx_core must not include feature PRX/POI headers", allowLeaves: leaves("prx_core.h", "poi_core.h")},
		{pattern: platformPat, rule: "prx_core.include", message: "prx_core must not include platform headers directly"},
		{pattern: cfgPat, rule: "prx_core.include", message: "prx_core may include only core contract headers", allowContract: true},
	},
	arch.RolePraxis: {
		{pattern: idaPat, rule: "prx.include", message: "Praxis must not include Idea headers"},
		{pattern: prxPat, rule: "prx.include", message: "Praxis must not include other features' Praxis", sameFeature: "prx"},
		{pattern: poiPat, rule: "prx.include", message: "Praxis must not include other features' Poiesis", sameFeature: "poi"},
		{pattern: cfgPat, rule: "prx.include", message: "Praxis must not include other features' config", allowContract: true, allowProjectCfg: true, sameFeature: "cfg"},
		{pattern: dbPat, rule: "prx.include", message: "Praxis must not include other features' database headers", allowProjectCfg: true, sameFeature: "db"},
	},
	arch.RolePoiesis: {
		{pattern: idaPat, rule: "poi.include", message: "Poiesis must not include Idea headers"},
		{pattern: prxPat, rule: "poi.include", message: "Poiesis must not include Praxis headers (no reverse dependency)"},
		{pattern: poiPat, rule: "poi.include", message: "Poiesis must not include other features' Poiesis", sameFeature: "poi"},
		{pattern: cfgPat, rule: "poi.include", message: "Poiesis must not include other features' config", allowContract: true, allowProjectCfg: true, sameFeature: "cfg"},
		{pattern: dbPat, rule: "poi.include", message: "Poiesis must not include other features' database headers", allowProjectCfg: true, sameFeature: "db"},
	},
	arch.RoleFeatureConfig: {
		{pattern: layerPat, rule: "resource.include", message: "Resources must not include upper-layer headers"},
	},
	arch.RoleFeatureData: {
		{pattern: layerPat, rule: "resource.include", message: "Resources must not include upper-layer headers"},
	},
	arch.RoleDataStream: {
		{pattern: layerPat, rule: "resource.include", message: "Resources must not include upper-layer headers"},
	},
	arch.RoleService: {
		{pattern: layerPat, rule: "module.include", message: "Modules must not include upper-layer headers"},
		{resourceSet: true, rule: "module.resource", message: "Modules must not include resources (cfg_/db_/stm_) directly", allowContract: true},
	},
	arch.RoleMiddleware: {
		{pattern: layerPat, rule: "module.include", message: "Modules must not include upper-layer headers"},
		{resourceSet: true, rule: "module.resource", message: "Modules must not include resources (cfg_/db_/stm_) directly", allowContract: true},
	},
	arch.RoleHAL: {
		{pattern: upperModPat, rule: "platform.include", message: "Platform must not include upper-layer/resource/module headers"},
		{resourceSet: true, rule: "platform.include", message: "Platform must not include upper-layer/resource/module headers", allowContract: true},
	},
	arch.RoleBSP: {
		{pattern: halPat, rule: "platform.direction", message: "BSP must not include HAL headers (direction is HAL -> BSP)"},
		{pattern: upperModPat, rule: "platform.include", message: "Platform must not include upper-layer/resource/module headers"},
		{resourceSet: true, rule: "platform.include", message: "Platform must not include upper-layer/resource/module headers", allowContract: true},
	},
}

// CheckIncludes evaluates a file's extracted references against the role
// graph. Every violation yields one error finding naming the forbidden
// edge.
func CheckIncludes(f scan.File, refs []extract.Reference, ctx *IncludeContext) []finding.Finding {
	var set finding.Set

	directDepsForbidden := f.Role.IsCore() || f.Role.IsFeatureLayer()

	for _, ref := range refs {
		if directDepsForbidden && extract.TargetsDepsPath(ref.Path) {
			set.Error(f.Path, ref.Line, "include.deps_path",
				fmt.Sprintf("Do not include dependency repository paths directly from core/project layers: %s", ref.Path))
		}

		for _, e := range includeEdges[f.Role] {
			if e.violated(ref.Leaf, f.Feature, ctx) {
				set.Error(f.Path, ref.Line, e.rule, fmt.Sprintf("%s: %s", e.message, ref.Path))
			}
		}
	}

	return set.Sorted()
}
