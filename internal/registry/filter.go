package registry

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern represents a compiled module filter supporting substring and regex
// matching. A raw value wrapped in slashes compiles as a regular expression.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// Match reports whether the pattern matches the supplied module name.
func (p Pattern) Match(name string) bool {
	if name == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(name)
	}
	return strings.Contains(strings.ToLower(name), p.lower)
}

// Filter returns the modules matching any pattern, preserving declaration
// order. With no patterns the input is returned unchanged.
func Filter(modules []Module, patterns []Pattern) []Module {
	if len(patterns) == 0 {
		return modules
	}
	result := make([]Module, 0, len(modules))
	for _, m := range modules {
		for _, pattern := range patterns {
			if pattern.Match(m.Name) {
				result = append(result, m)
				break
			}
		}
	}
	return result
}
