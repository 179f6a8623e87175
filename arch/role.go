// Package arch defines the architectural role taxonomy and the directory
// convention the conformance engine enforces. Roles are assigned purely
// from filename stems; the package never touches the filesystem.
package arch

import (
	"regexp"
	"strings"
)

// Role is the architectural role a source file plays, derived from its
// filename prefix. The enumeration is closed: Classify is total and every
// stem maps to exactly one role.
type Role int

// Role values. RoleUnknown covers files outside the naming convention;
// RoleInvalidPrefix covers the reserved prefix that is rejected outright.
const (
	RoleUnknown Role = iota
	RoleInvalidPrefix
	RoleCoreIdea
	RoleCorePraxis
	RoleCorePoiesis
	RoleIdea
	RolePraxis
	RolePoiesis
	RoleFeatureConfig
	RoleFeatureData
	RoleDataStream
	RoleService
	RoleMiddleware
	RoleHAL
	RoleBSP
)

var roleNames = map[Role]string{
	RoleUnknown:       "unknown",
	RoleInvalidPrefix: "invalid_prefix",
	RoleCoreIdea:      "core_idea",
	RoleCorePraxis:    "core_praxis",
	RoleCorePoiesis:   "core_poiesis",
	RoleIdea:          "idea",
	RolePraxis:        "praxis",
	RolePoiesis:       "poiesis",
	RoleFeatureConfig: "feature_cfg",
	RoleFeatureData:   "feature_db",
	RoleDataStream:    "datastream",
	RoleService:       "service",
	RoleMiddleware:    "middleware",
	RoleHAL:           "hal",
	RoleBSP:           "bsp",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsCore reports whether the role is one of the three cross-cutting
// Core contract roles.
func (r Role) IsCore() bool {
	return r == RoleCoreIdea || r == RoleCorePraxis || r == RoleCorePoiesis
}

// IsFeatureLayer reports whether the role is a feature-scoped layer
// (Idea, Praxis, Poiesis).
func (r Role) IsFeatureLayer() bool {
	return r == RoleIdea || r == RolePraxis || r == RolePoiesis
}

// IsResource reports whether the role is a leaf resource in the dependency
// graph (feature config, feature data, data stream).
func (r Role) IsResource() bool {
	return r == RoleFeatureConfig || r == RoleFeatureData || r == RoleDataStream
}

// IsModule reports whether the role is an infrastructure module
// (service or middleware).
func (r Role) IsModule() bool {
	return r == RoleService || r == RoleMiddleware
}

// IsPlatform reports whether the role is a platform layer (HAL or BSP).
func (r Role) IsPlatform() bool {
	return r == RoleHAL || r == RoleBSP
}

// Well-known header names. CoreContractHeader is the shared Core contract
// every role may reference; the project headers are the two project-level
// singletons that live under the project config directory.
const (
	CoreContractHeader  = "cfg_core.h"
	ProjectConfigHeader = "cfg_project.h"
	ProjectDataHeader   = "db_project.h"
)

// reservedPrefix is rejected outright regardless of suffix.
const reservedPrefix = "inf_"

var coreStems = map[string]Role{
	"ida_core": RoleCoreIdea,
	"prx_core": RoleCorePraxis,
	"poi_core": RoleCorePoiesis,
}

var featureRoleTags = map[string]Role{
	"ida": RoleIdea,
	"prx": RolePraxis,
	"poi": RolePoiesis,
	"cfg": RoleFeatureConfig,
	"db":  RoleFeatureData,
}

var infraPrefixes = map[string]Role{
	"svc_": RoleService,
	"mdw_": RoleMiddleware,
	"hal_": RoleHAL,
	"bsp_": RoleBSP,
	"stm_": RoleDataStream,
}

var featureStemRe = regexp.MustCompile(`^(ida|prx|poi|cfg|db)_(.+)$`)

// Classify assigns a role to a filename stem and returns the feature name
// implied by the stem, if any. Matching order, first hit wins: reserved
// prefix, exact core names, <tag>_<feature> pattern, infra prefixes,
// otherwise unknown. The function is pure and total.
func Classify(stem string) (Role, string) {
	if strings.HasPrefix(stem, reservedPrefix) {
		return RoleInvalidPrefix, ""
	}
	if role, ok := coreStems[stem]; ok {
		return role, "core"
	}
	if m := featureStemRe.FindStringSubmatch(stem); m != nil {
		return featureRoleTags[m[1]], m[2]
	}
	for prefix, role := range infraPrefixes {
		if strings.HasPrefix(stem, prefix) {
			return role, ""
		}
	}
	return RoleUnknown, ""
}

// layerPrefixes are the feature-layer filename prefixes used by the
// identifier-reference binding.
var layerPrefixes = []string{"ida_", "prx_", "poi_"}

// sharedResourcePrefixes mark files that belong to the capability or data
// plane rather than to any feature; they are exempt from cross-feature
// isolation.
var sharedResourcePrefixes = []string{"cfg_", "db_", "stm_", "svc_", "mdw_", "hal_", "bsp_"}

// LayerPrefix returns the feature-layer prefix of a filename (ida_, prx_
// or poi_) if it has one.
func LayerPrefix(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, p := range layerPrefixes {
		if strings.HasPrefix(lower, p) {
			return p, true
		}
	}
	return "", false
}

// IsSharedResource reports whether a filename carries a shared-resource
// prefix (config, data, stream, service, middleware, platform).
func IsSharedResource(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range sharedResourcePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// FeatureName extracts the feature name from a layer-prefixed stem:
// ida_ColorConversion -> ColorConversion. Returns "" when the stem has no
// layer prefix.
func FeatureName(stem string) string {
	if prefix, ok := LayerPrefix(stem); ok {
		return stem[len(prefix):]
	}
	return ""
}
