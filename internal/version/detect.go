// Package version inspects the host Rust toolchain and reports advisory
// warnings for missing pieces. Nothing here is fatal; a broken toolchain will
// surface as build failures anyway.
package version

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// EmbeddedTarget is the cross-compile target the firmware workspace needs.
const EmbeddedTarget = "riscv32imc-unknown-none-elf"

// Info captures a toolchain component version installed on the system.
type Info struct {
	Name    string
	Version string
}

var (
	cargoRegex = regexp.MustCompile(`(?i)cargo\s+(\d+\.\d+(?:\.\d+)?)`)
	rustcRegex = regexp.MustCompile(`(?i)rustc\s+(\d+\.\d+(?:\.\d+)?)`)
)

// DetectCargo returns the system cargo version by calling `cargo --version`.
func DetectCargo() (Info, error) {
	out, err := runCommand("cargo", "--version")
	if err != nil {
		return Info{}, err
	}
	match := cargoRegex.FindStringSubmatch(out)
	if len(match) < 2 {
		return Info{}, fmt.Errorf("unable to parse cargo version from %q", out)
	}
	return Info{Name: "cargo", Version: match[1]}, nil
}

// DetectRustc returns the system rustc version by calling `rustc --version`.
func DetectRustc() (Info, error) {
	out, err := runCommand("rustc", "--version")
	if err != nil {
		return Info{}, err
	}
	match := rustcRegex.FindStringSubmatch(out)
	if len(match) < 2 {
		return Info{}, fmt.Errorf("unable to parse rustc version from %q", out)
	}
	return Info{Name: "rustc", Version: match[1]}, nil
}

// HasTarget reports whether rustup lists the target as installed.
func HasTarget(target string) (bool, error) {
	out, err := runCommand("rustup", "target", "list", "--installed")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == target {
			return true, nil
		}
	}
	return false, nil
}

// Missing reports whether executing the command returned a not-found error.
func Missing(cmdErr error) bool {
	return errors.Is(cmdErr, exec.ErrNotFound)
}

// Advisories collects toolchain warnings worth printing before a run.
func Advisories() []string {
	var advisories []string

	if _, err := DetectCargo(); err != nil {
		if Missing(err) {
			advisories = append(advisories, "cargo executable not found")
		} else {
			advisories = append(advisories, fmt.Sprintf("unable to detect cargo version: %v", err))
		}
	}
	if _, err := DetectRustc(); err != nil {
		if Missing(err) {
			advisories = append(advisories, "rustc executable not found")
		} else {
			advisories = append(advisories, fmt.Sprintf("unable to detect rustc version: %v", err))
		}
	}

	installed, err := HasTarget(EmbeddedTarget)
	switch {
	case err != nil && Missing(err):
		advisories = append(advisories, fmt.Sprintf("rustup executable not found; unable to verify target %s", EmbeddedTarget))
	case err != nil:
		advisories = append(advisories, fmt.Sprintf("unable to list installed targets: %v", err))
	case !installed:
		advisories = append(advisories, fmt.Sprintf("target %s not installed; run `rustup target add %s`", EmbeddedTarget, EmbeddedTarget))
	}

	return advisories
}

func runCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
