package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgricker/cargocheck/internal/output"
)

// fakeTool writes an executable shell script standing in for the toolchain.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fakecargo")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

// newTestWorkspace creates a cargo workspace root with a config file that
// pins a two-module registry and disables host toolchain advisories.
func newTestWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	manifest := "[workspace]\nmembers = [\"blinky\", \"iot-common\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(manifest), 0o644))

	cfgFile := `
warn:
  toolchain: false
registry:
  - name: blinky
  - name: iot-common
    examples: [error_handling]
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cargocheck.yml"), []byte(cfgFile), 0o644))

	for _, dir := range []string{"blinky", "iot-common"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errBuf)
	err := cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestRunCommandAllPassing(t *testing.T) {
	root := newTestWorkspace(t)
	tool := fakeTool(t, `exit 0`)

	stdout, _, err := execute(t, "run", root, "--tool", tool)
	require.NoError(t, err)

	assert.Contains(t, stdout, "TESTING MODULE: blinky")
	assert.Contains(t, stdout, "Total Builds: 4")
	assert.Contains(t, stdout, "Success Rate: 100.0%")
	assert.Contains(t, stdout, "PILOT READY")
}

func TestRunCommandFailureExitsNonZero(t *testing.T) {
	root := newTestWorkspace(t)
	tool := fakeTool(t, `case "$1" in clean) exit 0;; esac; echo "error: build broke" >&2; exit 101`)

	stdout, _, err := execute(t, "run", root, "--tool", tool, "--continue-on-fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one or more builds failed")
	assert.Contains(t, stdout, "SYSTEM HAS BUILD ISSUES")
	assert.Contains(t, stdout, "error: build broke")
}

func TestRunCommandJSONFormat(t *testing.T) {
	root := newTestWorkspace(t)
	tool := fakeTool(t, `exit 0`)

	stdout, _, err := execute(t, "run", root, "--tool", tool, "--format", "json")
	require.NoError(t, err)

	var decoded output.RunReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, 4, decoded.Summary.Total)
	assert.Equal(t, 4, decoded.Summary.Passed)
	assert.Len(t, decoded.Attempts, 4)
}

func TestRunCommandModuleFilter(t *testing.T) {
	root := newTestWorkspace(t)
	tool := fakeTool(t, `exit 0`)

	stdout, _, err := execute(t, "run", root, "--tool", tool, "--module", "blinky")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total Builds: 2")
	assert.NotContains(t, stdout, "iot-common")
}

func TestRunCommandRejectsNonWorkspaceRoot(t *testing.T) {
	root := t.TempDir()

	_, _, err := execute(t, "run", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Cargo.toml found")
}

func TestProbeCommandReportsBrokenModule(t *testing.T) {
	tool := fakeTool(t, `case "$*" in *iot-hal*) echo "error: esp-hal api conflict" >&2; exit 1;; esac; exit 0`)

	stdout, _, err := execute(t, "probe", "--tool", tool)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 modules or binaries broken")
	assert.Contains(t, stdout, "Broken targets (1)")
	assert.Contains(t, stdout, "• iot-hal")
	assert.Contains(t, stdout, "Deploy with: cargo build --release --bin main")
}

func TestProbeCommandAllWorking(t *testing.T) {
	tool := fakeTool(t, `exit 0`)

	stdout, _, err := execute(t, "probe", "--tool", tool)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Working targets (13)")
	assert.Contains(t, stdout, "Broken targets (0)")
}

func TestListCommandShowsPlan(t *testing.T) {
	root := newTestWorkspace(t)

	stdout, _, err := execute(t, "list", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Module blinky")
	assert.Contains(t, stdout, "• Workspace build: iot-common (example: error_handling)")
	assert.Contains(t, stdout, "• Module build: iot-common (example: error_handling)")
}

func TestListCommandUnsupportedFormat(t *testing.T) {
	root := newTestWorkspace(t)

	_, _, err := execute(t, "list", root, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}
