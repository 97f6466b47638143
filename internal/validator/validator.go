package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/ctxlog"
	"github.com/vk/botplan/internal/diag"
	"github.com/vk/botplan/internal/registry"
	"github.com/vk/botplan/internal/resolver"
)

// Validator checks resources against an injected schema catalog.
type Validator struct {
	catalog registry.Catalog
}

// New creates a Validator backed by the given catalog.
func New(catalog registry.Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// ValidateStructure is the pre-resolution pass: every resource type must
// be known to the catalog and every required property must be present.
// Properties the schema does not declare are flagged as warnings.
func (v *Validator) ValidateStructure(ctx context.Context, doc *config.Document) diag.Diagnostics {
	logger := ctxlog.FromContext(ctx)
	var diags diag.Diagnostics

	for _, r := range doc.Resources {
		id := r.ID()

		schema, known := v.catalog.Lookup(r.Type)
		if !known {
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: id,
				Message:  fmt.Sprintf("unknown resource type %q", r.Type),
			})
			continue
		}

		for _, field := range sortedSchemaFields(schema) {
			fs := schema.Fields[field]
			if !fs.Required {
				continue
			}
			if _, present := r.Properties[field]; !present {
				diags = diags.Append(&diag.Diagnostic{
					Severity: diag.SeverityError,
					Resource: id,
					Field:    field,
					Message:  "required property is missing",
				})
			}
		}

		for _, field := range sortedProps(r.Properties) {
			if _, declared := schema.Fields[field]; !declared {
				diags = diags.Append(&diag.Diagnostic{
					Severity: diag.SeverityWarning,
					Resource: id,
					Field:    field,
					Message:  fmt.Sprintf("property is not declared in the schema for %q", r.Type),
				})
			}
		}
	}

	logger.Debug("Structural validation complete.", "findings", len(diags))
	return diags
}

// ValidateSemantics is the post-resolution pass: literal property values
// must conform to their field schemas, and every referenced attribute must
// exist on its target's schema. Reference-valued fields skip literal
// checks since their values only exist after provisioning.
func (v *Validator) ValidateSemantics(ctx context.Context, doc *config.Document, res *resolver.Resolution) diag.Diagnostics {
	logger := ctxlog.FromContext(ctx)
	var diags diag.Diagnostics

	for _, r := range doc.Resources {
		id := r.ID()

		schema, known := v.catalog.Lookup(r.Type)
		if !known {
			// Already reported by the structural pass.
			continue
		}

		for _, field := range sortedProps(r.Properties) {
			fs, declared := schema.Fields[field]
			if !declared {
				continue
			}
			if res.FieldHasReference(id, field) {
				continue
			}
			diags = diags.Append(v.checkLiteral(id, field, r.Properties[field], fs)...)
		}

		diags = diags.Append(v.checkReferenceAttrs(res.ByResource[id])...)
	}

	for _, out := range doc.Outputs {
		refs := res.ByOutput[out.Name]
		if len(refs) == 0 {
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Resource: "output." + out.Name,
				Field:    "value",
				Message:  "output does not reference any resource",
			})
			continue
		}
		diags = diags.Append(v.checkReferenceAttrs(refs)...)
	}

	logger.Debug("Semantic validation complete.", "findings", len(diags))
	return diags
}

// checkLiteral evaluates a literal property value and checks it against
// the field schema: type conformance, enum membership, numeric range.
func (v *Validator) checkLiteral(id, field string, expr hcl.Expression, fs *registry.FieldSchema) diag.Diagnostics {
	var diags diag.Diagnostics

	val, evalDiags := expr.Value(nil)
	if evalDiags.HasErrors() {
		return diags.Append(&diag.Diagnostic{
			Severity: diag.SeverityError,
			Resource: id,
			Field:    field,
			Message:  fmt.Sprintf("cannot evaluate value: %s", evalDiags.Error()),
		})
	}
	if val.IsNull() {
		if fs.Required {
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: id,
				Field:    field,
				Message:  "required property must not be null",
			})
		}
		return diags
	}

	converted, err := convert.Convert(val, fs.Type)
	if err != nil {
		return diags.Append(&diag.Diagnostic{
			Severity: diag.SeverityError,
			Resource: id,
			Field:    field,
			Message:  fmt.Sprintf("value is not a valid %s: %s", fs.Type.FriendlyName(), err),
		})
	}

	if len(fs.Enum) > 0 && converted.Type() == cty.String {
		got := converted.AsString()
		if !contains(fs.Enum, got) {
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: id,
				Field:    field,
				Message:  fmt.Sprintf("value %q is not one of: %s", got, strings.Join(fs.Enum, ", ")),
			})
		}
	}

	if converted.Type() == cty.Number && (fs.Min != nil || fs.Max != nil) {
		f, _ := converted.AsBigFloat().Float64()
		if fs.Min != nil && f < *fs.Min {
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: id,
				Field:    field,
				Message:  fmt.Sprintf("value %v is below the minimum of %v", f, *fs.Min),
			})
		}
		if fs.Max != nil && f > *fs.Max {
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: id,
				Field:    field,
				Message:  fmt.Sprintf("value %v is above the maximum of %v", f, *fs.Max),
			})
		}
	}

	return diags
}

// checkReferenceAttrs verifies each reference's attribute against the
// target type's declared runtime attributes.
func (v *Validator) checkReferenceAttrs(refs []*resolver.Reference) diag.Diagnostics {
	var diags diag.Diagnostics

	for _, ref := range refs {
		if ref.Attr == "" {
			continue
		}
		targetType := strings.SplitN(ref.Target, ".", 2)[0]
		schema, known := v.catalog.Lookup(targetType)
		if !known {
			continue
		}
		// Only the first path segment is schema-checked; deeper segments
		// index into provider-shaped values the catalog does not model.
		attr := strings.SplitN(ref.Attr, ".", 2)[0]
		if _, ok := schema.Attributes[attr]; !ok {
			diags = diags.Append(&diag.Diagnostic{
				Severity: diag.SeverityError,
				Resource: ref.Referrer,
				Field:    ref.Field,
				Message:  fmt.Sprintf("resource type %q has no attribute %q", targetType, attr),
			})
		}
	}

	return diags
}

func sortedProps(props map[string]hcl.Expression) []string {
	fields := make([]string, 0, len(props))
	for name := range props {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

func sortedSchemaFields(s *registry.ResourceSchema) []string {
	fields := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
