// Package diag defines the structured diagnostics emitted by the resolver
// and validator passes. A diagnostic pins a message to a resource and,
// where applicable, a field path within it.
package diag

import (
	"fmt"
	"strings"
)

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	// SeverityError marks a violation that makes the plan unusable.
	SeverityError Severity = iota
	// SeverityWarning marks a finding the plan can proceed past.
	SeverityWarning
)

// String returns the canonical upper-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is a single finding against a resource or output.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Resource string   `json:"resource"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

// String renders the diagnostic in a single line suitable for logs.
func (d *Diagnostic) String() string {
	if d.Field == "" {
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Resource, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s: %s", d.Severity, d.Resource, d.Field, d.Message)
}

// Diagnostics is an ordered collection of findings.
type Diagnostics []*Diagnostic

// Append adds findings to the collection, returning the extended slice.
func (ds Diagnostics) Append(more ...*Diagnostic) Diagnostics {
	return append(ds, more...)
}

// HasErrors reports whether any finding carries error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errs returns only the error-severity findings.
func (ds Diagnostics) Errs() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// String joins every finding with newlines.
func (ds Diagnostics) String() string {
	lines := make([]string, 0, len(ds))
	for _, d := range ds {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
