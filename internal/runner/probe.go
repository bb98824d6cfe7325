package runner

import (
	"fmt"
	"io"

	"github.com/bgricker/cargocheck/internal/cargo"
	"github.com/bgricker/cargocheck/internal/registry"
	"github.com/bgricker/cargocheck/internal/report"
)

// probeErrorLimit truncates broken-target error messages in probe output.
const probeErrorLimit = 100

// ProbeOptions configure the quick probe.
type ProbeOptions struct {
	Modules  []string
	Binaries []string
	Cargo    *cargo.Runner
	Out      io.Writer
}

// Probe attempts one release build per module and per binary target, without
// cleaning, and classifies each into working or broken.
func Probe(opts ProbeOptions) report.ProbeReport {
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	var probe report.ProbeReport

	for _, module := range opts.Modules {
		fmt.Fprintf(opts.Out, "Testing %s... ", module)
		res := opts.Cargo.Build(cargo.BuildSpec{Package: module})
		if res.OK {
			fmt.Fprintln(opts.Out, "✅ WORKS")
			probe.Working = append(probe.Working, module)
			continue
		}
		fmt.Fprintln(opts.Out, "❌ BROKEN")
		probe.Broken = append(probe.Broken, report.BrokenTarget{
			Name:  module,
			Error: probeError(res.Stderr),
		})
	}

	fmt.Fprintf(opts.Out, "\n🎯 Testing Binary Targets\n")
	fmt.Fprintln(opts.Out, "------------------------------")
	for _, bin := range opts.Binaries {
		fmt.Fprintf(opts.Out, "Testing %s... ", bin)
		res := opts.Cargo.Build(cargo.BuildSpec{Bin: bin})
		if res.OK {
			fmt.Fprintln(opts.Out, "✅ WORKS")
			probe.Working = append(probe.Working, bin+" (binary)")
			if bin == registry.DeployBinary {
				probe.Deployable = true
			}
			continue
		}
		fmt.Fprintln(opts.Out, "❌ BROKEN")
		probe.Broken = append(probe.Broken, report.BrokenTarget{
			Name:  bin + " (binary)",
			Error: probeError(res.Stderr),
		})
	}

	return probe
}

func probeError(stderr string) string {
	if stderr == "" {
		return "Unknown error"
	}
	return truncate(stderr, probeErrorLimit)
}
