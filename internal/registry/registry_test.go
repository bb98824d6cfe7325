package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableOrder(t *testing.T) {
	modules := Default()
	require.Len(t, modules, 12)

	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		"blinky",
		"bme280-embassy",
		"wifi-embassy",
		"wifi-synchronous",
		"serial-console-embassy",
		"mqtt-embassy",
		"main-app",
		"iot-common",
		"iot-container",
		"iot-hal",
		"iot-performance",
		"bme280-tests",
	}, names)
}

func TestExampleFeaturesOverride(t *testing.T) {
	m := Module{
		Name:             "serial-console-embassy",
		Features:         "",
		FeatureOverrides: map[string]string{"system_console": "full"},
	}
	assert.Equal(t, "full", m.ExampleFeatures("system_console"))
	assert.Equal(t, "", m.ExampleFeatures("basic_console"))

	withDefault := Module{Name: "mqtt-embassy", Features: "examples"}
	assert.Equal(t, "examples", withDefault.ExampleFeatures("basic_mqtt"))
}

func TestPlanLibraryModule(t *testing.T) {
	steps := Plan(Module{Name: "blinky"})
	require.Len(t, steps, 2)
	assert.Equal(t, "Workspace build: blinky", steps[0].Description)
	assert.False(t, steps[0].ModuleDir)
	assert.Equal(t, "Module build: blinky", steps[1].Description)
	assert.True(t, steps[1].ModuleDir)
}

func TestPlanExamplesBuildFromBothContexts(t *testing.T) {
	m := Module{Name: "bme280-embassy", Examples: []string{"basic_reading", "full_system", "hal_integration"}}
	steps := Plan(m)
	require.Len(t, steps, 6)

	for i, step := range steps[:3] {
		assert.False(t, step.ModuleDir)
		assert.Equal(t, m.Examples[i], step.Example)
	}
	for i, step := range steps[3:] {
		assert.True(t, step.ModuleDir)
		assert.Equal(t, m.Examples[i], step.Example)
	}
}

func TestPlanAppliesFeatureOverrides(t *testing.T) {
	m := Module{
		Name:             "serial-console-embassy",
		Examples:         []string{"basic_console", "system_console"},
		FeatureOverrides: map[string]string{"system_console": "full"},
	}
	steps := Plan(m)
	require.Len(t, steps, 4)
	assert.Equal(t, "", steps[0].Features)
	assert.Equal(t, "full", steps[1].Features)
	assert.Equal(t, "full", steps[3].Features)
}

func TestPlanBinariesSkipKnownBroken(t *testing.T) {
	steps := Plan(Module{Name: "main-app", Binaries: []string{"main", "main_container"}})
	require.Len(t, steps, 2)
	assert.Equal(t, "main", steps[0].Bin)
	assert.Empty(t, steps[0].Skip)
	assert.Equal(t, "main_container", steps[1].Bin)
	assert.NotEmpty(t, steps[1].Skip)
}

func TestPlanTestOnlyModule(t *testing.T) {
	steps := Plan(Module{Name: "iot-hal", TestOnly: true})
	require.Len(t, steps, 1)
	assert.NotEmpty(t, steps[0].Skip)
}

func TestProbeTargets(t *testing.T) {
	assert.Len(t, ProbeModules(), 11)
	assert.NotContains(t, ProbeModules(), "bme280-tests")
	assert.Equal(t, []string{"main", "main_container"}, ProbeBinaries())
}
