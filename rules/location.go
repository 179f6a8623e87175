package rules

import (
	"fmt"
	"strings"

	"github.com/c360studio/archgate/arch"
	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/scan"
)

// CheckLocation validates that a file's path satisfies its role's required
// directory. Role-correct files vendored inside a dependency copy that
// replicates the required segment are exempt (nested architecture unit).
// The returned skip flag tells the caller to stop processing the file
// (reserved or unrecognized names carry no further rules).
func CheckLocation(f scan.File, tree arch.Tree) (findings []finding.Finding, skip bool) {
	var set finding.Set
	p := tree.Place(f.Path)

	switch f.Role {
	case arch.RoleInvalidPrefix:
		set.Error(f.Path, 1, "naming.prefix",
			"Invalid role prefix 'inf_'. Keep role prefixes (ida_/prx_/poi_/mdw_/svc_/hal_/bsp_/stm_/cfg_/db_).")
		return set.Sorted(), true

	case arch.RoleUnknown:
		// Incidental non-convention files outside managed zones never
		// break the gate.
		managed := p.UnderFeatures || p.UnderConfig || p.UnderDatastreams || p.UnderBootstrap
		if managed {
			set.Error(f.Path, 1, "naming.prefix",
				fmt.Sprintf("Unknown architecture file role prefix: %s", f.Name))
		}
		return set.Sorted(), true
	}

	if strings.EqualFold(f.Name, arch.CoreContractHeader) && !p.AnyBootstrap {
		set.Error(f.Path, 1, "path.bootstrap",
			arch.CoreContractHeader+" must be located under /infra/bootstrap (root or nested architecture unit).")
	}

	switch f.Role {
	case arch.RoleCoreIdea:
		if !p.AnyBootstrap {
			set.Error(f.Path, 1, "path.bootstrap",
				"ida_core must be located under /infra/bootstrap (root or nested architecture unit).")
		}
	case arch.RoleCorePoiesis:
		if !p.AnyBootstrap {
			set.Error(f.Path, 1, "path.bootstrap",
				"poi_core must be located under /infra/bootstrap (root or nested architecture unit).")
		}
	case arch.RoleCorePraxis:
		if !p.AnyBootstrap {
			set.Error(f.Path, 1, "path.bootstrap",
				"prx_core must be located under /infra/bootstrap (root or nested architecture unit).")
		}
	case arch.RoleService:
		if !p.AnyService {
			set.Error(f.Path, 1, "path.infra_service",
				"svc_* files must be located under /infra/service (root or nested architecture unit).")
		}
	case arch.RoleHAL:
		if !p.AnyHAL {
			set.Error(f.Path, 1, "path.infra_hal",
				"hal_* files must be located under /infra/platform/hal (root or nested architecture unit).")
		}
	case arch.RoleBSP:
		if !p.AnyBSP {
			set.Error(f.Path, 1, "path.infra_bsp",
				"bsp_* files must be located under /infra/platform/bsp (root or nested architecture unit).")
		}
	case arch.RoleMiddleware:
		if !p.UnderDepsMiddle && !p.UnderDepsExtern {
			set.Error(f.Path, 1, "path.deps_middleware",
				"mdw_* files must be located under /deps/middleware or /deps/extern.")
		}
	case arch.RoleIdea:
		if !p.AnyFeatures {
			set.Error(f.Path, 1, "path.project_feature",
				"ida_* feature files must be located under /project/features (root or nested architecture unit).")
		}
	case arch.RolePraxis:
		if !p.AnyFeatures {
			set.Error(f.Path, 1, "path.project_feature",
				"prx_* feature files must be located under /project/features (root or nested architecture unit).")
		}
	case arch.RolePoiesis:
		if !p.AnyFeatures {
			set.Error(f.Path, 1, "path.project_feature",
				"poi_* feature files must be located under /project/features (root or nested architecture unit).")
		}
	case arch.RoleFeatureConfig:
		checkResourceLocation(&set, f, p, arch.ProjectConfigHeader, "cfg_*", "path.project_config")
	case arch.RoleFeatureData:
		checkResourceLocation(&set, f, p, arch.ProjectDataHeader, "db_*", "path.project_config")
	case arch.RoleDataStream:
		if !p.AnyDatastreams && !p.UnderDepsMiddle && !p.UnderDepsExtern {
			set.Error(f.Path, 1, "path.datastream",
				fmt.Sprintf("stm_* files must be located under /project/datastreams/, /deps/middleware/, or /deps/extern/: %s", f.Name))
		}
	}

	return set.Sorted(), false
}

// checkResourceLocation validates cfg_/db_ placement. Resource files inside
// a dependency copy that does not replicate the project layout belong to
// the vendored library itself and are exempt; the Core contract header and
// the project-level singleton each carry their own rule.
func checkResourceLocation(set *finding.Set, f scan.File, p arch.Placement, singleton, prefixLabel, singletonRule string) {
	externalNonFractal := p.NestedDepsUnit && !p.FeaturesSegment && !p.ConfigSegment
	if externalNonFractal {
		return
	}
	if f.Role == arch.RoleFeatureConfig && strings.EqualFold(f.Name, arch.CoreContractHeader) {
		return // placement covered by the path.bootstrap rule
	}
	if strings.EqualFold(f.Name, singleton) {
		if !p.AnyConfig {
			set.Error(f.Path, 1, singletonRule,
				fmt.Sprintf("%s must be located under /project/config (root or nested architecture unit).", singleton))
		}
		return
	}
	if !p.AnyFeatures && !p.AnyConfig {
		set.Error(f.Path, 1, "path.feature_resource",
			fmt.Sprintf("%s feature files must be located under /project/features/ or /project/config/ (root or nested architecture unit): %s", prefixLabel, f.Name))
	}
}
