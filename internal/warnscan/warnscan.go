// Package warnscan classifies compiler output lines as warnings by substring
// matching. It is a textual heuristic, not a diagnostic parser; false
// positives and negatives are accepted.
package warnscan

import "strings"

// markers flag a line as a warning when any of them appears, case-insensitively.
var markers = []string{
	"warning:",
	"unused",
	"dead_code",
	"deprecated",
	"unreachable_code",
	"non_snake_case",
}

// Scan returns the warning lines found in the combined stdout and stderr of a
// build, in output order. A line matching several markers is collected once.
func Scan(stdout, stderr string) []string {
	var warnings []string
	combined := stdout + "\n" + stderr
	for _, line := range strings.Split(combined, "\n") {
		lower := strings.ToLower(line)
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				warnings = append(warnings, strings.TrimSpace(line))
				break
			}
		}
	}
	return warnings
}
