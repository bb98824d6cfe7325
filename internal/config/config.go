package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bgricker/cargocheck/internal/registry"
)

// FileName is the optional per-workspace config file.
const FileName = ".cargocheck.yml"

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Config captures CLI options sourced from the config file or flags.
type Config struct {
	Tool   string `yaml:"tool"`
	Format string `yaml:"format"`

	HideWarnings   bool `yaml:"hide_warnings"`
	ContinueOnFail bool `yaml:"continue_on_fail"`
	Verbose        bool `yaml:"verbose"`

	Modules []string `yaml:"modules"`

	BuildTimeoutSeconds int `yaml:"build_timeout_seconds"`
	ProbeTimeoutSeconds int `yaml:"probe_timeout_seconds"`

	// Registry replaces the built-in module table when set.
	Registry []registry.Module `yaml:"registry"`

	Warn WarnConfig `yaml:"warn"`
}

// WarnConfig controls advisory behaviour. Toolchain is a pointer so a config
// file can explicitly disable the check.
type WarnConfig struct {
	Toolchain *bool `yaml:"toolchain"`
}

// ToolchainWarnings reports whether pre-run toolchain advisories are enabled.
func (c Config) ToolchainWarnings() bool {
	return c.Warn.Toolchain == nil || *c.Warn.Toolchain
}

// Default returns the baseline configuration used when no flags or config
// file specify values.
func Default() Config {
	return Config{
		Tool:                "cargo",
		Format:              FormatPretty,
		BuildTimeoutSeconds: 300,
		ProbeTimeoutSeconds: 120,
	}
}

// Load reads .cargocheck.yml from the workspace root when present. Missing
// files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return merge(cfg, fileCfg), nil
}

func merge(base, override Config) Config {
	out := base

	if override.Tool != "" {
		out.Tool = override.Tool
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if len(override.Modules) > 0 {
		out.Modules = append([]string{}, override.Modules...)
	}
	if len(override.Registry) > 0 {
		out.Registry = append([]registry.Module{}, override.Registry...)
	}
	if override.BuildTimeoutSeconds > 0 {
		out.BuildTimeoutSeconds = override.BuildTimeoutSeconds
	}
	if override.ProbeTimeoutSeconds > 0 {
		out.ProbeTimeoutSeconds = override.ProbeTimeoutSeconds
	}
	if override.HideWarnings {
		out.HideWarnings = true
	}
	if override.ContinueOnFail {
		out.ContinueOnFail = true
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.Warn.Toolchain != nil {
		out.Warn.Toolchain = override.Warn.Toolchain
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Tool.Set {
		cfg.Tool = flags.Tool.Value
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if len(flags.Modules.Values) > 0 {
		cfg.Modules = append([]string{}, flags.Modules.Values...)
	}
	if flags.Timeout.Set {
		cfg.BuildTimeoutSeconds = flags.Timeout.Value
		cfg.ProbeTimeoutSeconds = flags.Timeout.Value
	}
	if flags.HideWarnings.Set {
		cfg.HideWarnings = flags.HideWarnings.Value
	}
	if flags.ContinueOnFail.Set {
		cfg.ContinueOnFail = flags.ContinueOnFail.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was
// set explicitly.
type FlagValues struct {
	Tool           StringFlag
	Format         StringFlag
	Modules        SliceFlag
	Timeout        IntFlag
	HideWarnings   BoolFlag
	ContinueOnFail BoolFlag
	Verbose        BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}

// IntFlag represents an int flag and whether it was set.
type IntFlag struct {
	Value int
	Set   bool
}
