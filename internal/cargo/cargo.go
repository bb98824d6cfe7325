// Package cargo invokes the external build toolchain. Every failure mode,
// including timeouts and a missing executable, is converted to a Result; no
// error crosses this boundary.
package cargo

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTool is the build toolchain executable.
const DefaultTool = "cargo"

// Options configure the toolchain runner.
type Options struct {
	// Tool is the build executable; defaults to cargo.
	Tool string
	// Root is the workspace root and the default working directory.
	Root string
	// Timeout is the wall-clock bound per invocation.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Runner executes toolchain subcommands synchronously.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Tool == "" {
		opts.Tool = DefaultTool
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 300 * time.Second
	}
	return &Runner{opts: opts}
}

// Result is the only shape toolchain outcomes take.
type Result struct {
	OK     bool
	Stdout string
	Stderr string
}

// BuildSpec selects a build target. At most one of Example, Bin and Package
// should be set; Dir overrides the working directory for module-folder builds.
type BuildSpec struct {
	Package  string
	Example  string
	Bin      string
	Features string
	Dir      string
}

// Clean invokes the toolchain clean subcommand in the workspace root.
func (r *Runner) Clean() Result {
	return r.run([]string{"clean"}, r.opts.Root)
}

// Build invokes a release build for the given target.
func (r *Runner) Build(spec BuildSpec) Result {
	var args []string
	switch {
	case spec.Bin != "":
		args = []string{"build", "--release", "--bin", spec.Bin}
	default:
		args = []string{"build"}
		if spec.Example != "" {
			args = append(args, "--example", spec.Example)
		} else if spec.Package != "" {
			args = append(args, "-p", spec.Package)
		}
		if spec.Features != "" {
			args = append(args, "--features", spec.Features)
		}
		args = append(args, "--release")
	}

	dir := spec.Dir
	if dir == "" {
		dir = r.opts.Root
	}
	return r.run(args, dir)
}

func (r *Runner) run(args []string, dir string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
	defer cancel()

	r.opts.Logger.Debug().Str("tool", r.opts.Tool).Strs("args", args).Str("dir", dir).Msg("invoking toolchain")

	cmd := exec.CommandContext(ctx, r.opts.Tool, args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{Stderr: fmt.Sprintf("command timed out after %s", r.opts.Timeout)}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				Stdout: strings.TrimSpace(stdout.String()),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		// Missing executable, permission error and friends.
		return Result{Stderr: fmt.Sprintf("command failed: %v", err)}
	}

	return Result{
		OK:     true,
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
}
