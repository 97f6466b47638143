package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/planerr"
	"github.com/vk/botplan/internal/schema"
)

// translateResource converts a `resource` block into the agnostic model.
// The reserved depends_on attribute is split off; everything else in the
// body becomes the property bag, expressions kept unevaluated.
func (l *Loader) translateResource(block *hcl.Block) (*config.Resource, error) {
	resType, name := block.Labels[0], block.Labels[1]
	id := resType + "." + name

	content, remain, diags := block.Body.PartialContent(schema.ResourceBodySchema)
	if diags.HasErrors() {
		return nil, &planerr.ParseError{Message: fmt.Sprintf("invalid body for resource %q", id), Err: diags}
	}

	var dependsOn []string
	if attr, ok := content.Attributes["depends_on"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &dependsOn); diags.HasErrors() {
			return nil, &planerr.ParseError{Message: fmt.Sprintf(
				"resource %q: depends_on must be a list of \"type.name\" strings", id), Err: diags}
		}
	}

	// Nested blocks inside a property bag are rejected here: JustAttributes
	// errors on any block it encounters.
	attrs, diags := remain.JustAttributes()
	if diags.HasErrors() {
		return nil, &planerr.ParseError{Message: fmt.Sprintf("invalid property bag for resource %q", id), Err: diags}
	}

	props := make(map[string]hcl.Expression, len(attrs))
	for attrName, attr := range attrs {
		props[attrName] = attr.Expr
	}

	return &config.Resource{
		Type:       resType,
		Name:       name,
		Properties: props,
		DependsOn:  dependsOn,
		DeclRange:  block.DefRange,
	}, nil
}

// translateOutput converts an `output` block into the agnostic model. The
// value expression stays raw so the resolver can bind it later.
func (l *Loader) translateOutput(block *hcl.Block) (*config.Output, error) {
	name := block.Labels[0]

	content, diags := block.Body.Content(schema.OutputBodySchema)
	if diags.HasErrors() {
		return nil, &planerr.ParseError{Message: fmt.Sprintf("invalid body for output %q", name), Err: diags}
	}

	out := &config.Output{
		Name:      name,
		Value:     content.Attributes["value"].Expr,
		DeclRange: block.DefRange,
	}

	if attr, ok := content.Attributes["description"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &out.Description); diags.HasErrors() {
			return nil, &planerr.ParseError{Message: fmt.Sprintf(
				"output %q: description must be a string literal", name), Err: diags}
		}
	}

	return out, nil
}
