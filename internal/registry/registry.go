// Package registry declares the workspace modules exercised by the build
// checks. The table is read-only configuration; declaration order determines
// execution and report ordering.
package registry

import "fmt"

// Module describes one buildable unit of the workspace.
type Module struct {
	Name     string   `yaml:"name" json:"name"`
	Examples []string `yaml:"examples,omitempty" json:"examples,omitempty"`
	Features string   `yaml:"features,omitempty" json:"features,omitempty"`
	Binaries []string `yaml:"binaries,omitempty" json:"binaries,omitempty"`

	// FeatureOverrides substitutes an alternate feature set for examples
	// that cannot build with the module default.
	FeatureOverrides map[string]string `yaml:"feature_overrides,omitempty" json:"feature_overrides,omitempty"`

	// TestOnly marks a module with known compilation issues; it is listed
	// but excluded from build verification.
	TestOnly bool `yaml:"test_only,omitempty" json:"test_only,omitempty"`
}

// ExampleFeatures resolves the feature flags for one example, applying the
// per-example override when present.
func (m Module) ExampleFeatures(example string) string {
	if features, ok := m.FeatureOverrides[example]; ok {
		return features
	}
	return m.Features
}

// brokenBinaries lists binary targets excluded from the full run.
var brokenBinaries = map[string]bool{
	"main_container": true,
}

// DeployBinary is the binary whose buildability decides the probe's
// deployment recommendation.
const DeployBinary = "main"

// Default returns the built-in module table for the firmware workspace.
func Default() []Module {
	return []Module{
		{Name: "blinky"},
		{Name: "bme280-embassy", Examples: []string{"basic_reading", "full_system", "hal_integration"}},
		{Name: "wifi-embassy", Examples: []string{"simple_connect", "wifi_test", "wifi_test_new", "wifi_mqtt_test"}},
		{Name: "wifi-synchronous", Examples: []string{"simple_wifi_sync", "wifi_manager_sync"}},
		{
			Name:             "serial-console-embassy",
			Examples:         []string{"basic_console", "simple_working_console", "direct_usb_console", "usb_bridge_console", "system_console"},
			FeatureOverrides: map[string]string{"system_console": "full"},
		},
		{Name: "mqtt-embassy", Examples: []string{"basic_mqtt", "mqtt_test", "mqtt_test_working"}, Features: "examples"},
		{Name: "main-app", Binaries: []string{"main", "main_container"}},
		{Name: "iot-common", Examples: []string{"error_conversion", "error_handling"}},
		{Name: "iot-container", TestOnly: true},
		{Name: "iot-hal", TestOnly: true},
		{Name: "iot-performance", TestOnly: true},
		{Name: "bme280-tests", TestOnly: true},
	}
}

// ProbeModules lists the modules the quick probe builds, in order.
func ProbeModules() []string {
	return []string{
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
	}
}

// ProbeBinaries lists the binary targets the quick probe builds.
func ProbeBinaries() []string {
	return []string{"main", "main_container"}
}

// Step is one planned build invocation derived from a module descriptor.
// Steps with a non-empty Skip reason are listed but never executed.
type Step struct {
	Module      string `json:"module"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
	Bin         string `json:"bin,omitempty"`
	Features    string `json:"features,omitempty"`
	ModuleDir   bool   `json:"module_dir,omitempty"`
	Skip        string `json:"skip,omitempty"`
}

// Plan expands a module descriptor into its ordered build steps: the bare
// library from both contexts, binaries from the workspace, then every example
// from the workspace followed by every example from the module folder. The
// workspace/module-folder duplication is intentional: it validates that the
// module builds outside the umbrella workspace.
func Plan(m Module) []Step {
	if m.TestOnly {
		return []Step{{Module: m.Name, Description: fmt.Sprintf("Module check: %s", m.Name), Skip: "test-only module with known compilation issues"}}
	}

	var steps []Step
	if len(m.Examples) == 0 && len(m.Binaries) == 0 {
		steps = append(steps,
			Step{Module: m.Name, Description: fmt.Sprintf("Workspace build: %s", m.Name), Features: m.Features},
			Step{Module: m.Name, Description: fmt.Sprintf("Module build: %s", m.Name), Features: m.Features, ModuleDir: true},
		)
	}
	for _, bin := range m.Binaries {
		step := Step{
			Module:      m.Name,
			Description: fmt.Sprintf("Workspace build: %s (binary: %s)", m.Name, bin),
			Bin:         bin,
		}
		if brokenBinaries[bin] {
			step.Skip = "binary with known issues"
		}
		steps = append(steps, step)
	}
	for _, example := range m.Examples {
		steps = append(steps, Step{
			Module:      m.Name,
			Description: fmt.Sprintf("Workspace build: %s (example: %s)", m.Name, example),
			Example:     example,
			Features:    m.ExampleFeatures(example),
		})
	}
	for _, example := range m.Examples {
		steps = append(steps, Step{
			Module:      m.Name,
			Description: fmt.Sprintf("Module build: %s (example: %s)", m.Name, example),
			Example:     example,
			Features:    m.ExampleFeatures(example),
			ModuleDir:   true,
		})
	}
	return steps
}
