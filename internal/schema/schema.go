// Package schema declares the HCL surface of a template file. These
// structs exist only for decoding; the loader translates them into the
// format-agnostic config model immediately after.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// DocumentSchema describes the allowed top-level blocks of a template
// file. Anything else is a parse error.
var DocumentSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "resource", LabelNames: []string{"type", "name"}},
		{Type: "output", LabelNames: []string{"name"}},
	},
}

// ResourceBodySchema splits a resource body into the reserved depends_on
// attribute and the free-form property bag that remains.
var ResourceBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "depends_on", Required: false},
	},
}

// OutputBodySchema describes the attributes of an `output` block.
var OutputBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "value", Required: true},
		{Name: "description", Required: false},
	},
}
