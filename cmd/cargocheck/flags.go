package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/cargocheck/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("tool") {
		v, err := flags.GetString("tool")
		if err != nil {
			return values, fmt.Errorf("parse --tool: %w", err)
		}
		values.Tool = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("module") {
		v, err := flags.GetStringArray("module")
		if err != nil {
			return values, fmt.Errorf("parse --module: %w", err)
		}
		values.Modules = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("timeout") {
		v, err := flags.GetInt("timeout")
		if err != nil {
			return values, fmt.Errorf("parse --timeout: %w", err)
		}
		values.Timeout = config.IntFlag{Value: v, Set: true}
	}

	if flags.Changed("hide-warnings") {
		v, err := flags.GetBool("hide-warnings")
		if err != nil {
			return values, fmt.Errorf("parse --hide-warnings: %w", err)
		}
		values.HideWarnings = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("continue-on-fail") {
		v, err := flags.GetBool("continue-on-fail")
		if err != nil {
			return values, fmt.Errorf("parse --continue-on-fail: %w", err)
		}
		values.ContinueOnFail = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
