package main

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cargocheck",
		Short:         "Cargocheck verifies that every workspace module and example builds cleanly",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("tool", "", "build toolchain executable (default cargo)")
	persistent.String("format", "", "output format (pretty|json)")
	persistent.StringArray("module", nil, "module filter, substring or /regex/ (repeatable)")
	persistent.Int("timeout", 0, "per-invocation timeout in seconds")
	persistent.Bool("hide-warnings", false, "suppress per-build warning previews")
	persistent.Bool("continue-on-fail", false, "keep testing remaining modules after a failure")
	persistent.BoolP("verbose", "v", false, "log every toolchain invocation")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newProbeCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func newLogger(cmd *cobra.Command, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
