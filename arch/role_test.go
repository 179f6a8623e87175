package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		stem    string
		role    Role
		feature string
	}{
		// Reserved prefix wins over everything else.
		{"inf_anything", RoleInvalidPrefix, ""},
		{"inf_core", RoleInvalidPrefix, ""},

		// Exact core names.
		{"ida_core", RoleCoreIdea, "core"},
		{"prx_core", RoleCorePraxis, "core"},
		{"poi_core", RoleCorePoiesis, "core"},

		// Feature layers: <tag>_<feature>.
		{"ida_motor", RoleIdea, "motor"},
		{"prx_motor", RolePraxis, "motor"},
		{"poi_motor", RolePoiesis, "motor"},
		{"ida_core_utils", RoleIdea, "core_utils"},
		{"cfg_motor", RoleFeatureConfig, "motor"},
		{"db_motor", RoleFeatureData, "motor"},
		{"cfg_core", RoleFeatureConfig, "core"},
		{"db_project", RoleFeatureData, "project"},

		// Infra prefixes carry no feature.
		{"stm_telemetry", RoleDataStream, ""},
		{"svc_logger", RoleService, ""},
		{"mdw_canopen", RoleMiddleware, ""},
		{"hal_gpio", RoleHAL, ""},
		{"bsp_stm32f4", RoleBSP, ""},

		// Outside the convention.
		{"main", RoleUnknown, ""},
		{"utils", RoleUnknown, ""},
		{"idamotor", RoleUnknown, ""},
		{"ida_", RoleUnknown, ""},
		{"", RoleUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			role, feature := Classify(tt.stem)
			assert.Equal(t, tt.role, role, "role for %q", tt.stem)
			assert.Equal(t, tt.feature, feature, "feature for %q", tt.stem)
		})
	}
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, RoleCoreIdea.IsCore())
	assert.True(t, RoleCorePoiesis.IsCore())
	assert.False(t, RoleIdea.IsCore())

	assert.True(t, RoleIdea.IsFeatureLayer())
	assert.True(t, RolePoiesis.IsFeatureLayer())
	assert.False(t, RoleFeatureConfig.IsFeatureLayer())

	assert.True(t, RoleFeatureConfig.IsResource())
	assert.True(t, RoleDataStream.IsResource())
	assert.False(t, RoleService.IsResource())

	assert.True(t, RoleService.IsModule())
	assert.True(t, RoleMiddleware.IsModule())
	assert.False(t, RoleHAL.IsModule())

	assert.True(t, RoleHAL.IsPlatform())
	assert.True(t, RoleBSP.IsPlatform())
	assert.False(t, RoleMiddleware.IsPlatform())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "core_idea", RoleCoreIdea.String())
	assert.Equal(t, "invalid_prefix", RoleInvalidPrefix.String())
	assert.Equal(t, "feature_cfg", RoleFeatureConfig.String())
	assert.Equal(t, "unknown", Role(999).String())
}

func TestLayerPrefix(t *testing.T) {
	prefix, ok := LayerPrefix("ida_ColorConversion.vb")
	assert.True(t, ok)
	assert.Equal(t, "ida_", prefix)

	prefix, ok = LayerPrefix("POI_Display.cs")
	assert.True(t, ok, "prefix match is case-insensitive")
	assert.Equal(t, "poi_", prefix)

	_, ok = LayerPrefix("Form1.vb")
	assert.False(t, ok)
}

func TestIsSharedResource(t *testing.T) {
	assert.True(t, IsSharedResource("cfg_app.vb"))
	assert.True(t, IsSharedResource("stm_frames.cs"))
	assert.True(t, IsSharedResource("HAL_Timer.cs"))
	assert.False(t, IsSharedResource("ida_motor.vb"))
	assert.False(t, IsSharedResource("Program.cs"))
}

func TestFeatureName(t *testing.T) {
	assert.Equal(t, "ColorConversion", FeatureName("ida_ColorConversion"))
	assert.Equal(t, "Display", FeatureName("prx_Display"))
	assert.Equal(t, "", FeatureName("Form1"))
}
