// Package runner drives the build toolchain across the module registry,
// strictly sequentially. The shared build cache is cleaned between attempts,
// so concurrent builds would invalidate the pass/fail signal.
package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bgricker/cargocheck/internal/cargo"
	"github.com/bgricker/cargocheck/internal/registry"
	"github.com/bgricker/cargocheck/internal/report"
	"github.com/bgricker/cargocheck/internal/warnscan"
)

// warningPreview caps the per-attempt warning lines echoed during the run.
const warningPreview = 3

// Options configure the full test run.
type Options struct {
	Workspace string
	Registry  []registry.Module
	Cargo     *cargo.Runner
	Out       io.Writer

	// HideWarnings suppresses the per-attempt warning preview.
	HideWarnings bool
	// ContinueOnFail keeps testing remaining modules after a module records
	// a failure. Without it the run stops before the next module starts.
	ContinueOnFail bool

	Logger zerolog.Logger
}

// Runner executes the full module test sequence.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Runner{opts: opts}
}

// Run tests every registry module and returns the ordered attempt log.
func (r *Runner) Run() *report.Log {
	log := &report.Log{}

	fmt.Fprintf(r.opts.Out, "Workspace: %s\n", r.opts.Workspace)
	names := make([]string, 0, len(r.opts.Registry))
	for _, m := range r.opts.Registry {
		names = append(names, m.Name)
	}
	fmt.Fprintf(r.opts.Out, "Modules: %s\n", strings.Join(names, ", "))

	for _, m := range r.opts.Registry {
		if log.Summary.Failed > 0 && !r.opts.ContinueOnFail {
			fmt.Fprintf(r.opts.Out, "\n🛑 Stopping before %s: earlier module failed (use --continue-on-fail to keep going)\n", m.Name)
			break
		}
		r.runModule(m, log)
	}
	return log
}

func (r *Runner) runModule(m registry.Module, log *report.Log) {
	fmt.Fprintf(r.opts.Out, "\n==================== TESTING MODULE: %s ====================\n", m.Name)

	fmt.Fprintln(r.opts.Out, "🧹 Cleaning workspace...")
	if res := r.opts.Cargo.Clean(); !res.OK {
		// A poisoned cache would invalidate this module's measurements;
		// skip its steps and move on rather than aborting the whole run.
		fmt.Fprintf(r.opts.Out, "❌ Failed to clean before testing %s: %s\n", m.Name, res.Stderr)
		r.opts.Logger.Warn().Str("module", m.Name).Msg("clean failed, skipping module")
		return
	}

	cleaned := true
	for _, step := range registry.Plan(m) {
		if step.Skip != "" {
			fmt.Fprintf(r.opts.Out, "⏭️  Skipping %s (%s)\n", skipLabel(step), step.Skip)
			continue
		}
		if !cleaned {
			r.opts.Cargo.Clean()
		}
		cleaned = false
		r.execute(step, log)
	}
}

func skipLabel(step registry.Step) string {
	if step.Bin != "" {
		return step.Bin
	}
	return step.Module
}

func (r *Runner) execute(step registry.Step, log *report.Log) {
	fmt.Fprintf(r.opts.Out, "\n🔨 %s\n", step.Description)

	var res cargo.Result
	if step.ModuleDir {
		dir := filepath.Join(r.opts.Workspace, step.Module)
		if _, err := os.Stat(dir); err != nil {
			res = cargo.Result{Stderr: fmt.Sprintf("module directory does not exist: %s", dir)}
		} else {
			res = r.opts.Cargo.Build(cargo.BuildSpec{
				Example:  step.Example,
				Features: step.Features,
				Dir:      dir,
			})
		}
	} else {
		spec := cargo.BuildSpec{
			Example:  step.Example,
			Bin:      step.Bin,
			Features: step.Features,
		}
		if step.Example == "" && step.Bin == "" {
			spec.Package = step.Module
		}
		res = r.opts.Cargo.Build(spec)
	}

	attempt := report.Attempt{
		Description: step.Description,
		OK:          res.OK,
		Stdout:      res.Stdout,
		Stderr:      res.Stderr,
		Warnings:    warnscan.Scan(res.Stdout, res.Stderr),
	}
	log.Record(attempt)
	r.echo(attempt)
}

func (r *Runner) echo(a report.Attempt) {
	switch {
	case a.OK && len(a.Warnings) > 0:
		fmt.Fprintf(r.opts.Out, "⚠️  %s - SUCCESS (with %d warnings)\n", a.Description, len(a.Warnings))
		if !r.opts.HideWarnings {
			for i, w := range a.Warnings {
				if i == warningPreview {
					fmt.Fprintf(r.opts.Out, "   ... and %d more warnings\n", len(a.Warnings)-warningPreview)
					break
				}
				fmt.Fprintf(r.opts.Out, "   ⚠️  %s\n", w)
			}
		}
	case a.OK:
		fmt.Fprintf(r.opts.Out, "✅ %s - SUCCESS\n", a.Description)
	default:
		fmt.Fprintf(r.opts.Out, "❌ %s - FAILED\n", a.Description)
		if a.Stderr != "" {
			fmt.Fprintf(r.opts.Out, "   Error: %s\n", truncate(a.Stderr, 200))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
