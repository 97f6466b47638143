// Package planerr defines the typed error kinds produced by the planning
// pipeline. Parse errors are fatal and fail fast; resolution and
// validation errors are collected per pass and surfaced in aggregate.
package planerr

import (
	"fmt"
	"strings"

	"github.com/vk/botplan/internal/diag"
)

// ParseError reports a malformed document. No partial model survives a
// parse failure, so the loader halts on the first one.
type ParseError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %s", e.Message, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap exposes the underlying cause, typically hcl.Diagnostics.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnresolvedReferenceError reports a reference whose target does not exist
// in the document. Resource is the referrer's ID and Field the property
// path the reference appeared in.
type UnresolvedReferenceError struct {
	Resource string
	Field    string
	Target   string
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: field %q: reference to undeclared target %q", e.Resource, e.Field, e.Target)
}

// ResolutionError aggregates every failure found during the resolution
// pass so a user can fix them all in one edit cycle.
type ResolutionError struct {
	Errs []error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("reference resolution failed:\n- %s", strings.Join(msgs, "\n- "))
}

// Unwrap lets errors.As reach the individual member errors.
func (e *ResolutionError) Unwrap() []error {
	return e.Errs
}

// CyclicDependencyError reports that no valid apply order exists. Cycle is
// a genuine walk along declared edges, closed on the starting node, e.g.
// [a, b, a].
type CyclicDependencyError struct {
	Cycle []string
}

// Error implements the error interface.
func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Cycle, " -> "))
}

// SchemaViolationError aggregates every error-severity diagnostic produced
// by a validation pass.
type SchemaViolationError struct {
	Violations diag.Diagnostics
}

// Error implements the error interface.
func (e *SchemaViolationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return fmt.Sprintf("schema validation failed:\n- %s", strings.Join(msgs, "\n- "))
}
