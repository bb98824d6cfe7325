package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bgricker/cargocheck/internal/cargo"
	"github.com/bgricker/cargocheck/internal/config"
	"github.com/bgricker/cargocheck/internal/output"
	"github.com/bgricker/cargocheck/internal/registry"
	"github.com/bgricker/cargocheck/internal/runner"
	"github.com/bgricker/cargocheck/internal/version"
	"github.com/bgricker/cargocheck/internal/workspace"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [workspace_root]",
		Short: "Build every module, binary and example from workspace and module folders",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExecute,
	}
}

func runExecute(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	if err := workspace.Check(root); err != nil {
		return err
	}

	var advisories []string
	if cfg.ToolchainWarnings() {
		advisories = version.Advisories()
	}

	modules, err := selectModules(cfg)
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching modules")
		return nil
	}

	logger := newLogger(cmd, cfg.Verbose)
	tools := cargo.New(cargo.Options{
		Tool:    cfg.Tool,
		Root:    root,
		Timeout: time.Duration(cfg.BuildTimeoutSeconds) * time.Second,
		Logger:  logger,
	})

	// JSON output owns stdout; progress moves to stderr.
	progress := cmd.OutOrStdout()
	if strings.ToLower(cfg.Format) == config.FormatJSON {
		progress = cmd.ErrOrStderr()
	}

	log := runner.New(runner.Options{
		Workspace:      root,
		Registry:       modules,
		Cargo:          tools,
		Out:            progress,
		HideWarnings:   cfg.HideWarnings,
		ContinueOnFail: cfg.ContinueOnFail,
		Logger:         logger,
	}).Run()

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		for _, msg := range advisories {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
		}
		if err := output.NewPretty(cmd.OutOrStdout()).RenderReport(log); err != nil {
			return err
		}
	case config.FormatJSON:
		if err := output.NewJSON(cmd.OutOrStdout()).Render(output.RunReport{
			Workspace:  root,
			Attempts:   log.Attempts,
			Summary:    log.Summary,
			Advisories: advisories,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if log.Summary.Failed > 0 {
		return fmt.Errorf("one or more builds failed")
	}
	return nil
}

func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve workspace root %q: %w", root, err)
	}
	return abs, nil
}

func loadConfig(cmd *cobra.Command, root string) (config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, err
	}
	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyFlags(&cfg, flags)
	return cfg, nil
}

func selectModules(cfg config.Config) ([]registry.Module, error) {
	table := cfg.Registry
	if len(table) == 0 {
		table = registry.Default()
	}
	patterns, err := registry.Compile(cfg.Modules)
	if err != nil {
		return nil, err
	}
	return registry.Filter(table, patterns), nil
}

func workingDirectory() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return cwd, nil
}
