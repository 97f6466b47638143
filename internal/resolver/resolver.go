package resolver

import (
	"context"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/ctxlog"
	"github.com/vk/botplan/internal/hclutil"
	"github.com/vk/botplan/internal/planerr"
)

// Reference is a resolved symbolic pointer from a referrer's field to a
// target resource, optionally narrowed to one of its attributes.
type Reference struct {
	// Referrer is the resource ID (or "output.<name>") the reference
	// appeared in.
	Referrer string
	// Field is the property path within the referrer.
	Field string
	// Target is the "type.name" identity of the referenced resource.
	Target string
	// Attr is the attribute path on the target, empty when the reference
	// is to the resource's identity.
	Attr string
	// SourceRange points at the expression in the source file.
	SourceRange hcl.Range
}

// Resolution is the result of a full resolution pass over a document.
type Resolution struct {
	// ByResource maps a resource ID to the references its properties hold,
	// in deterministic (field-sorted) order.
	ByResource map[string][]*Reference
	// ByOutput maps an output name to the references in its value.
	ByOutput map[string][]*Reference
	// fieldRefs marks referrer "id\x00field" pairs that contain at least
	// one reference, so the validator can skip literal checks for them.
	fieldRefs map[string]bool
}

// FieldHasReference reports whether the given resource field contains at
// least one resolved reference.
func (r *Resolution) FieldHasReference(resourceID, field string) bool {
	return r.fieldRefs[resourceID+"\x00"+field]
}

// Resolve walks every property value of every resource, and every output
// value, binding references to their targets. It returns a non-nil
// *planerr.ResolutionError aggregating every unresolved reference and
// trivial self-cycle found.
func Resolve(ctx context.Context, doc *config.Document) (*Resolution, error) {
	logger := ctxlog.FromContext(ctx)

	res := &Resolution{
		ByResource: make(map[string][]*Reference),
		ByOutput:   make(map[string][]*Reference),
		fieldRefs:  make(map[string]bool),
	}
	var errs []error

	for _, r := range doc.Resources {
		id := r.ID()

		// Explicit depends_on targets resolve through the same pass so a
		// bad entry surfaces alongside bad property references.
		for _, dep := range r.DependsOn {
			if dep == id {
				errs = append(errs, &planerr.CyclicDependencyError{Cycle: []string{id, id}})
				continue
			}
			if _, ok := doc.Resource(dep); !ok {
				errs = append(errs, &planerr.UnresolvedReferenceError{
					Resource: id, Field: "depends_on", Target: dep,
				})
			}
		}

		for _, field := range sortedFields(r.Properties) {
			refs, fieldErrs := resolveExpression(doc, id, field, r.Properties[field])
			errs = append(errs, fieldErrs...)
			if len(refs) > 0 {
				res.ByResource[id] = append(res.ByResource[id], refs...)
				res.fieldRefs[id+"\x00"+field] = true
			}
		}
	}

	for _, out := range doc.Outputs {
		referrer := "output." + out.Name
		refs, fieldErrs := resolveExpression(doc, referrer, "value", out.Value)
		errs = append(errs, fieldErrs...)
		if len(refs) > 0 {
			res.ByOutput[out.Name] = refs
		}
	}

	if len(errs) > 0 {
		logger.Debug("Resolution pass failed.", "error_count", len(errs))
		return nil, &planerr.ResolutionError{Errs: errs}
	}

	logger.Debug("Resolution pass complete.",
		"resources_with_refs", len(res.ByResource), "outputs_with_refs", len(res.ByOutput))
	return res, nil
}

// resolveExpression extracts every reference from one expression. Any
// traversal rooted outside the reference namespace, or pointing at a
// nonexistent or self target, produces an error.
func resolveExpression(doc *config.Document, referrer, field string, expr hcl.Expression) ([]*Reference, []error) {
	var refs []*Reference
	var errs []error

	for _, traversal := range expr.Variables() {
		key := hclutil.TraversalKey(traversal)

		if traversal.RootName() != "resource" {
			errs = append(errs, &planerr.UnresolvedReferenceError{
				Resource: referrer, Field: field, Target: key,
			})
			continue
		}

		target, attr, ok := splitTraversal(traversal)
		if !ok {
			errs = append(errs, &planerr.UnresolvedReferenceError{
				Resource: referrer, Field: field, Target: key,
			})
			continue
		}

		if target == referrer {
			errs = append(errs, &planerr.CyclicDependencyError{Cycle: []string{referrer, referrer}})
			continue
		}

		if _, exists := doc.Resource(target); !exists {
			errs = append(errs, &planerr.UnresolvedReferenceError{
				Resource: referrer, Field: field, Target: target,
			})
			continue
		}

		refs = append(refs, &Reference{
			Referrer:    referrer,
			Field:       field,
			Target:      target,
			Attr:        attr,
			SourceRange: traversal.SourceRange(),
		})
	}

	return refs, errs
}

// splitTraversal breaks resource.<type>.<name>[.<attr>...] into a target
// ID and an optional dotted attribute path.
func splitTraversal(traversal hcl.Traversal) (target, attr string, ok bool) {
	if len(traversal) < 3 {
		return "", "", false
	}

	typeStep, typeOk := traversal[1].(hcl.TraverseAttr)
	nameStep, nameOk := traversal[2].(hcl.TraverseAttr)
	if !typeOk || !nameOk {
		return "", "", false
	}

	var attrParts []string
	for _, step := range traversal[3:] {
		attrStep, isAttr := step.(hcl.TraverseAttr)
		if !isAttr {
			// Index steps inside an attribute path are opaque to the
			// planner; the reference still binds to the resource.
			break
		}
		attrParts = append(attrParts, attrStep.Name)
	}

	return typeStep.Name + "." + nameStep.Name, strings.Join(attrParts, "."), true
}

// sortedFields returns property names in lexical order so error and
// reference ordering is stable across runs.
func sortedFields(props map[string]hcl.Expression) []string {
	fields := make([]string, 0, len(props))
	for name := range props {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}
