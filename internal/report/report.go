package report

import "fmt"

// Attempt captures the outcome of a single build invocation. Records are
// immutable once appended to the log.
type Attempt struct {
	Description string   `json:"description"`
	OK          bool     `json:"ok"`
	Stdout      string   `json:"stdout,omitempty"`
	Stderr      string   `json:"stderr,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Summary aggregates build attempt results. The counters always equal the
// corresponding folds over the attempt log; Recount reproduces them.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
	ExitCode int `json:"exit_code"`
}

// Log is the ordered attempt log with its running summary.
type Log struct {
	Attempts []Attempt `json:"attempts"`
	Summary  Summary   `json:"summary"`
}

// Record appends an attempt and updates the summary counters.
func (l *Log) Record(a Attempt) {
	l.Attempts = append(l.Attempts, a)
	l.Summary.Total++
	l.Summary.Warnings += len(a.Warnings)
	if a.OK {
		l.Summary.Passed++
	} else {
		l.Summary.Failed++
		l.Summary.ExitCode = 1
	}
}

// Recount folds over the attempts, rebuilding the summary from scratch.
func Recount(attempts []Attempt) Summary {
	var s Summary
	for _, a := range attempts {
		s.Total++
		s.Warnings += len(a.Warnings)
		if a.OK {
			s.Passed++
		} else {
			s.Failed++
			s.ExitCode = 1
		}
	}
	return s
}

// SuccessRate returns the pass percentage with one decimal place. The second
// value is false when no attempts were recorded and the rate is undefined.
func (s Summary) SuccessRate() (string, bool) {
	if s.Total == 0 {
		return "", false
	}
	return fmt.Sprintf("%.1f%%", float64(s.Passed)/float64(s.Total)*100), true
}

// BrokenTarget names a module or binary the quick probe failed to build.
type BrokenTarget struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// ProbeReport captures quick probe results.
type ProbeReport struct {
	Working    []string       `json:"working"`
	Broken     []BrokenTarget `json:"broken,omitempty"`
	Deployable bool           `json:"deployable"`
}
