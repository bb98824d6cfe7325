package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bgricker/cargocheck/internal/registry"
	"github.com/bgricker/cargocheck/internal/report"
)

// warningTestPreview caps the number of attempts listed in the warnings summary.
const warningTestPreview = 5

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	verdictStyle = lipgloss.NewStyle().Bold(true)
)

// PrettyRenderer renders reports in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

func (p *PrettyRenderer) banner() {
	fmt.Fprintln(p.out, strings.Repeat("=", 80))
}

func (p *PrettyRenderer) rule() {
	fmt.Fprintln(p.out, strings.Repeat("-", 40))
}

// RenderReport prints the final test report for a full run.
func (p *PrettyRenderer) RenderReport(log *report.Log) error {
	s := log.Summary

	fmt.Fprintln(p.out)
	p.banner()
	fmt.Fprintln(p.out, headerStyle.Render("📊 FINAL TEST REPORT"))
	p.banner()

	fmt.Fprintf(p.out, "Total Builds: %d\n", s.Total)
	fmt.Fprintf(p.out, "✅ Passed: %d\n", s.Passed)
	fmt.Fprintf(p.out, "❌ Failed: %d\n", s.Failed)
	fmt.Fprintf(p.out, "⚠️  Total Warnings: %d\n", s.Warnings)
	if rate, ok := s.SuccessRate(); ok {
		fmt.Fprintf(p.out, "Success Rate: %s\n", rate)
	} else {
		fmt.Fprintln(p.out, "Success Rate: n/a (no builds attempted)")
	}

	if s.Failed > 0 {
		fmt.Fprintf(p.out, "\n%s\n", failStyle.Render("❌ FAILED BUILDS:"))
		p.rule()
		for _, a := range log.Attempts {
			if a.OK {
				continue
			}
			fmt.Fprintf(p.out, "• %s\n", a.Description)
			if a.Stderr != "" {
				fmt.Fprintf(p.out, "  Error: %s\n", truncate(a.Stderr, 100))
			}
		}
	}

	if s.Warnings > 0 {
		fmt.Fprintf(p.out, "\n%s\n", warnStyle.Render("⚠️  WARNINGS SUMMARY:"))
		p.rule()
		withWarnings := attemptsWithWarnings(log.Attempts)
		for i, a := range withWarnings {
			if i == warningTestPreview {
				fmt.Fprintf(p.out, "• ... and %d more builds with warnings\n", len(withWarnings)-warningTestPreview)
				break
			}
			fmt.Fprintf(p.out, "• %s: %d warnings\n", a.Description, len(a.Warnings))
		}
	}

	fmt.Fprintf(p.out, "\n%s\n", passStyle.Render("✅ PASSED BUILDS:"))
	p.rule()
	for _, a := range log.Attempts {
		if a.OK && len(a.Warnings) == 0 {
			fmt.Fprintf(p.out, "• %s (clean)\n", a.Description)
		}
	}
	for _, a := range log.Attempts {
		if a.OK && len(a.Warnings) > 0 {
			fmt.Fprintf(p.out, "• %s (⚠️  %d warnings)\n", a.Description, len(a.Warnings))
		}
	}

	fmt.Fprintln(p.out)
	p.banner()
	switch {
	case s.Failed == 0 && s.Warnings == 0:
		fmt.Fprintln(p.out, verdictStyle.Render("🎉 ALL BUILDS PASSED - SYSTEM IS PILOT READY!"))
		fmt.Fprintln(p.out, "✅ All modules build from workspace and module folders")
		fmt.Fprintln(p.out, "✅ Zero warnings detected")
	case s.Failed == 0:
		fmt.Fprintln(p.out, verdictStyle.Render("⚠️  ALL BUILDS PASSED BUT WITH WARNINGS"))
		fmt.Fprintln(p.out, "✅ All modules build from workspace and module folders")
		fmt.Fprintf(p.out, "⚠️  %d warnings detected - review recommended\n", s.Warnings)
	default:
		fmt.Fprintln(p.out, verdictStyle.Render("⚠️  SYSTEM HAS BUILD ISSUES - REQUIRES ATTENTION"))
	}
	p.banner()

	return nil
}

// RenderProbe prints quick probe results and the deployment recommendation.
func (p *PrettyRenderer) RenderProbe(probe report.ProbeReport) error {
	fmt.Fprintf(p.out, "\n%s\n", headerStyle.Render("📊 RESULTS"))
	fmt.Fprintln(p.out, strings.Repeat("=", 50))

	fmt.Fprintf(p.out, "%s\n", passStyle.Render(fmt.Sprintf("✅ Working targets (%d):", len(probe.Working))))
	for _, name := range probe.Working {
		fmt.Fprintf(p.out, "  • %s\n", name)
	}

	fmt.Fprintf(p.out, "\n%s\n", failStyle.Render(fmt.Sprintf("❌ Broken targets (%d):", len(probe.Broken))))
	for _, broken := range probe.Broken {
		fmt.Fprintf(p.out, "  • %s\n", broken.Name)
		if broken.Error != "" {
			fmt.Fprintf(p.out, "    Error: %s\n", broken.Error)
		}
	}

	fmt.Fprintf(p.out, "\n%s\n", headerStyle.Render("🎯 DEPLOYMENT RECOMMENDATION:"))
	if probe.Deployable {
		fmt.Fprintf(p.out, "✅ Deploy with: cargo build --release --bin %s\n", registry.DeployBinary)
	} else {
		fmt.Fprintln(p.out, "❌ No working deployment target found")
	}

	return nil
}

// RenderPlan lists the build steps the full run would execute per module.
func (p *PrettyRenderer) RenderPlan(modules []registry.Module) error {
	for _, m := range modules {
		fmt.Fprintf(p.out, "Module %s\n", m.Name)
		for _, step := range registry.Plan(m) {
			if step.Skip != "" {
				fmt.Fprintf(p.out, "  - %s (skipped: %s)\n", step.Description, step.Skip)
				continue
			}
			fmt.Fprintf(p.out, "  • %s\n", step.Description)
		}
	}
	return nil
}

func attemptsWithWarnings(attempts []report.Attempt) []report.Attempt {
	var result []report.Attempt
	for _, a := range attempts {
		if len(a.Warnings) > 0 {
			result = append(result, a)
		}
	}
	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
