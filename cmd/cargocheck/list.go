package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgricker/cargocheck/internal/config"
	"github.com/bgricker/cargocheck/internal/output"
	"github.com/bgricker/cargocheck/internal/registry"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [workspace_root]",
		Short: "List the build steps a full run would execute",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listExecute,
	}
}

func listExecute(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	modules, err := selectModules(cfg)
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching modules")
		return nil
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		return output.NewPretty(cmd.OutOrStdout()).RenderPlan(modules)
	case config.FormatJSON:
		var steps []registry.Step
		for _, m := range modules {
			steps = append(steps, registry.Plan(m)...)
		}
		return output.NewJSON(cmd.OutOrStdout()).Render(output.PlanReport{
			Modules: modules,
			Steps:   steps,
		})
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}
