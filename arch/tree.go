package arch

import (
	"path/filepath"
	"strings"
)

// Tree holds the resolved directory convention rooted at a scan root.
// All paths are absolute.
type Tree struct {
	Root           string
	Bootstrap      string
	Service        string
	HAL            string
	BSP            string
	DepsRoot       string
	DepsExtern     string
	DepsMiddleware string
	Features       string
	Config         string
	Datastreams    string
}

// NewTree builds the directory convention for a root.
func NewTree(root string) Tree {
	return Tree{
		Root:           root,
		Bootstrap:      filepath.Join(root, "infra", "bootstrap"),
		Service:        filepath.Join(root, "infra", "service"),
		HAL:            filepath.Join(root, "infra", "platform", "hal"),
		BSP:            filepath.Join(root, "infra", "platform", "bsp"),
		DepsRoot:       filepath.Join(root, "deps"),
		DepsExtern:     filepath.Join(root, "deps", "extern"),
		DepsMiddleware: filepath.Join(root, "deps", "middleware"),
		Features:       filepath.Join(root, "project", "features"),
		Config:         filepath.Join(root, "project", "config"),
		Datastreams:    filepath.Join(root, "project", "datastreams"),
	}
}

// LegacyDir is a pre-convention top-level directory that must not exist.
type LegacyDir struct {
	Path    string
	Message string
}

// LegacyDirs lists the legacy roots that are flagged unconditionally as
// migration errors when present.
func (t Tree) LegacyDirs() []LegacyDir {
	return []LegacyDir{
		{filepath.Join(t.Root, "core", "config"), "Legacy core config folder detected. Migrate to /infra/bootstrap/" + CoreContractHeader},
		{filepath.Join(t.Root, "features"), "Legacy features folder detected. Migrate to /project/features/"},
		{filepath.Join(t.Root, "modules"), "Legacy modules folder detected. Migrate to /infra/ and /deps/"},
		{filepath.Join(t.Root, "platform"), "Legacy platform folder detected. Migrate to /infra/platform/"},
	}
}

// Under reports whether path resides below base. Comparison is
// case-insensitive to match filesystems where the convention originated.
func Under(path, base string) bool {
	p := strings.ToLower(filepath.ToSlash(path))
	b := strings.ToLower(filepath.ToSlash(base))
	if !strings.HasSuffix(b, "/") {
		b += "/"
	}
	return strings.HasPrefix(p, b)
}

// HasSegment reports whether path contains the given directory segments
// consecutively, e.g. HasSegment(p, "infra", "bootstrap").
func HasSegment(path string, segments ...string) bool {
	p := strings.ToLower(filepath.ToSlash(path))
	needle := "/" + strings.ToLower(strings.Join(segments, "/")) + "/"
	return strings.Contains(p, needle)
}

// Placement captures where a file sits relative to the managed directories,
// including the nested-architecture-unit exemption: a file inside a
// dependency-vendored subtree counts as correctly placed when that subtree
// itself replicates the required directory segment.
type Placement struct {
	UnderBootstrap   bool
	UnderService     bool
	UnderHAL         bool
	UnderBSP         bool
	UnderDepsExtern  bool
	UnderDepsMiddle  bool
	UnderFeatures    bool
	UnderConfig      bool
	UnderDatastreams bool

	NestedDepsUnit bool

	FeaturesSegment    bool
	ConfigSegment      bool
	DatastreamsSegment bool

	AnyBootstrap   bool
	AnyService     bool
	AnyHAL         bool
	AnyBSP         bool
	AnyFeatures    bool
	AnyConfig      bool
	AnyDatastreams bool
}

// Place computes the placement of an absolute path within the tree.
func (t Tree) Place(path string) Placement {
	p := Placement{
		UnderBootstrap:   Under(path, t.Bootstrap),
		UnderService:     Under(path, t.Service),
		UnderHAL:         Under(path, t.HAL),
		UnderBSP:         Under(path, t.BSP),
		UnderDepsExtern:  Under(path, t.DepsExtern),
		UnderDepsMiddle:  Under(path, t.DepsMiddleware),
		UnderFeatures:    Under(path, t.Features),
		UnderConfig:      Under(path, t.Config),
		UnderDatastreams: Under(path, t.Datastreams),
	}
	p.NestedDepsUnit = p.UnderDepsExtern || p.UnderDepsMiddle

	p.FeaturesSegment = HasSegment(path, "project", "features")
	p.ConfigSegment = HasSegment(path, "project", "config")
	p.DatastreamsSegment = HasSegment(path, "project", "datastreams")

	p.AnyBootstrap = p.UnderBootstrap || (p.NestedDepsUnit && HasSegment(path, "infra", "bootstrap"))
	p.AnyService = p.UnderService || (p.NestedDepsUnit && HasSegment(path, "infra", "service"))
	p.AnyHAL = p.UnderHAL || (p.NestedDepsUnit && HasSegment(path, "infra", "platform", "hal"))
	p.AnyBSP = p.UnderBSP || (p.NestedDepsUnit && HasSegment(path, "infra", "platform", "bsp"))
	p.AnyFeatures = p.UnderFeatures || (p.NestedDepsUnit && p.FeaturesSegment)
	p.AnyConfig = p.UnderConfig || (p.NestedDepsUnit && p.ConfigSegment)
	p.AnyDatastreams = p.UnderDatastreams || (p.NestedDepsUnit && p.DatastreamsSegment)

	return p
}
