// Package plan assembles the apply plan: the deterministic order in which
// the document's resources must be provisioned, the resolved output
// bindings, and every diagnostic collected along the way.
package plan

import (
	"context"
	"errors"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/ctxlog"
	"github.com/vk/botplan/internal/dag"
	"github.com/vk/botplan/internal/diag"
	"github.com/vk/botplan/internal/planerr"
	"github.com/vk/botplan/internal/registry"
	"github.com/vk/botplan/internal/resolver"
	"github.com/vk/botplan/internal/validator"
)

// OutputBinding is a document-level output bound to a resource attribute.
type OutputBinding struct {
	Name        string `json:"name"`
	Target      string `json:"target,omitempty"`
	Attr        string `json:"attr,omitempty"`
	Description string `json:"description,omitempty"`
}

// Plan is the planner's result. On failure the plan still carries every
// diagnostic and the per-resource states reached, so callers can render a
// useful report alongside the error.
type Plan struct {
	Order       []string         `json:"order"`
	Outputs     []OutputBinding  `json:"outputs,omitempty"`
	Diagnostics diag.Diagnostics `json:"diagnostics,omitempty"`
	States      map[string]State `json:"states"`
}

// Planner runs the full pipeline over a parsed document.
type Planner struct {
	catalog   registry.Catalog
	validator *validator.Validator
}

// NewPlanner creates a Planner backed by the given schema catalog.
func NewPlanner(catalog registry.Catalog) *Planner {
	return &Planner{
		catalog:   catalog,
		validator: validator.New(catalog),
	}
}

// Plan runs structural validation, reference resolution, semantic
// validation, and dependency ordering, in that order. Each stage gates the
// next. The returned plan is non-nil even when err is non-nil.
func (p *Planner) Plan(ctx context.Context, doc *config.Document) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	out := &Plan{States: make(map[string]State, len(doc.Resources))}
	for _, r := range doc.Resources {
		out.States[r.ID()] = StateDeclared
	}

	// Stage 1: structural validation against the catalog.
	structural := p.validator.ValidateStructure(ctx, doc)
	out.Diagnostics = out.Diagnostics.Append(structural...)
	if structural.HasErrors() {
		p.markAll(out, StateValidationFailed)
		return out, &planerr.SchemaViolationError{Violations: structural.Errs()}
	}

	// Stage 2: reference resolution.
	res, err := resolver.Resolve(ctx, doc)
	if err != nil {
		p.markAll(out, StateResolutionFailed)
		out.Diagnostics = out.Diagnostics.Append(resolutionDiagnostics(err)...)
		return out, err
	}
	p.markAll(out, StateResolved)

	// Stage 3: semantic validation over the resolved document.
	semantic := p.validator.ValidateSemantics(ctx, doc, res)
	out.Diagnostics = out.Diagnostics.Append(semantic...)
	if semantic.HasErrors() {
		p.markAll(out, StateValidationFailed)
		return out, &planerr.SchemaViolationError{Violations: semantic.Errs()}
	}
	p.markAll(out, StateValidated)

	// Stage 4: dependency ordering.
	graph, err := dag.Build(ctx, doc, res)
	if err != nil {
		return out, err
	}
	order, err := graph.TopoSort()
	if err != nil {
		var cycleErr *planerr.CyclicDependencyError
		if errors.As(err, &cycleErr) && len(cycleErr.Cycle) > 0 {
			for _, id := range cycleErr.Cycle {
				out.States[id] = StateCycleDetected
			}
			out.Diagnostics = out.Diagnostics.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: cycleErr.Cycle[0],
				Message:  cycleErr.Error(),
			})
		}
		return out, err
	}

	out.Order = order
	p.markAll(out, StateOrdered)
	out.Outputs = bindOutputs(doc, res)

	logger.Info("Plan assembled.",
		"resources", len(out.Order), "outputs", len(out.Outputs), "diagnostics", len(out.Diagnostics))
	return out, nil
}

// markAll moves every non-terminal resource to the given state.
func (p *Planner) markAll(out *Plan, s State) {
	for id, prev := range out.States {
		if !prev.Terminal() {
			out.States[id] = s
		}
	}
}

// bindOutputs attaches each output to the first resource reference in its
// value expression. Outputs whose value holds no reference stay unbound;
// the semantic pass already warned about them.
func bindOutputs(doc *config.Document, res *resolver.Resolution) []OutputBinding {
	bindings := make([]OutputBinding, 0, len(doc.Outputs))
	for _, out := range doc.Outputs {
		binding := OutputBinding{Name: out.Name, Description: out.Description}
		if refs := res.ByOutput[out.Name]; len(refs) > 0 {
			binding.Target = refs[0].Target
			binding.Attr = refs[0].Attr
		}
		bindings = append(bindings, binding)
	}
	return bindings
}

// resolutionDiagnostics flattens a resolution aggregate into structured
// diagnostics so failed plans still render a complete report.
func resolutionDiagnostics(err error) diag.Diagnostics {
	var resErr *planerr.ResolutionError
	if !errors.As(err, &resErr) {
		return nil
	}

	var diags diag.Diagnostics
	for _, member := range resErr.Errs {
		var unresolved *planerr.UnresolvedReferenceError
		var cycle *planerr.CyclicDependencyError
		switch {
		case errors.As(member, &unresolved):
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: unresolved.Resource,
				Field:    unresolved.Field,
				Message:  "reference to undeclared target " + unresolved.Target,
			})
		case errors.As(member, &cycle):
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: cycle.Cycle[0],
				Message:  member.Error(),
			})
		}
	}
	return diags
}
