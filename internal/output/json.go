package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/cargocheck/internal/registry"
	"github.com/bgricker/cargocheck/internal/report"
)

// JSONRenderer emits structured execution data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// RunReport captures the JSON schema for a full run.
type RunReport struct {
	Workspace  string           `json:"workspace"`
	Attempts   []report.Attempt `json:"attempts"`
	Summary    report.Summary   `json:"summary"`
	Advisories []string         `json:"advisories,omitempty"`
}

// PlanReport captures the JSON schema for the list command.
type PlanReport struct {
	Modules []registry.Module `json:"modules"`
	Steps   []registry.Step   `json:"steps"`
}

// Render encodes any report shape as indented JSON.
func (j *JSONRenderer) Render(v any) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
