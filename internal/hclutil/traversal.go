// Package hclutil provides small helpers over the HCL API.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key or in error messages.
func TraversalKey(t hcl.Traversal) string {
	// e.g. resource.lex_bot.order_bot.arn
	return string(hclwrite.TokensForTraversal(t).Bytes())
}
