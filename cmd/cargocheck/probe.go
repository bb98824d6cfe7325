package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bgricker/cargocheck/internal/cargo"
	"github.com/bgricker/cargocheck/internal/config"
	"github.com/bgricker/cargocheck/internal/output"
	"github.com/bgricker/cargocheck/internal/registry"
	"github.com/bgricker/cargocheck/internal/runner"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Quickly identify working vs broken modules with one release build each",
		Args:  cobra.NoArgs,
		RunE:  probeExecute,
	}
}

func probeExecute(cmd *cobra.Command, args []string) error {
	root, err := workingDirectory()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg.Verbose)
	tools := cargo.New(cargo.Options{
		Tool:    cfg.Tool,
		Root:    root,
		Timeout: time.Duration(cfg.ProbeTimeoutSeconds) * time.Second,
		Logger:  logger,
	})

	progress := cmd.OutOrStdout()
	if strings.ToLower(cfg.Format) == config.FormatJSON {
		progress = cmd.ErrOrStderr()
	}

	fmt.Fprintln(progress, "🔍 Quick Module Build Test")
	fmt.Fprintln(progress, strings.Repeat("=", 50))

	probe := runner.Probe(runner.ProbeOptions{
		Modules:  registry.ProbeModules(),
		Binaries: registry.ProbeBinaries(),
		Cargo:    tools,
		Out:      progress,
	})

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		if err := output.NewPretty(cmd.OutOrStdout()).RenderProbe(probe); err != nil {
			return err
		}
	case config.FormatJSON:
		if err := output.NewJSON(cmd.OutOrStdout()).Render(probe); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if len(probe.Broken) > 0 {
		return fmt.Errorf("%d modules or binaries broken", len(probe.Broken))
	}
	return nil
}
