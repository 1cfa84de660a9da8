package shared

import (
	"maps"
	"slices"
	"strings"
)

// ValidationErrors maps input field names to messages. Empty means valid.
type ValidationErrors map[string]string

// Add keeps the first message reported for field
func (v ValidationErrors) Add(field, message string) {
	if _, ok := v[field]; !ok {
		v[field] = message
	}
}

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Fields returns the failing field names, sorted
func (v ValidationErrors) Fields() []string {
	return slices.Sorted(maps.Keys(v))
}

func (v ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for i, f := range v.Fields() {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f + ": " + v[f])
	}
	return b.String()
}

// OrNil returns v as an error, or nil when there is nothing to report
func (v ValidationErrors) OrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}
