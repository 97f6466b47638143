package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Document is the unified representation of one parsed template: every
// resource and output declared across the loaded files, in declaration
// order. Declaration order is load-bearing: it is the tie-break for the
// deterministic apply order.
type Document struct {
	Resources []*Resource
	Outputs   []*Output

	// byID indexes resources by their "type.name" identity. Built once by
	// the loader; lookups after that are read-only.
	byID map[string]*Resource
}

// NewDocument builds a Document and its identity index from translated
// blocks. The loader guarantees IDs are unique before calling this.
func NewDocument(resources []*Resource, outputs []*Output) *Document {
	doc := &Document{
		Resources: resources,
		Outputs:   outputs,
		byID:      make(map[string]*Resource, len(resources)),
	}
	for _, r := range resources {
		doc.byID[r.ID()] = r
	}
	return doc
}

// Resource returns the resource with the given "type.name" identity.
func (d *Document) Resource(id string) (*Resource, bool) {
	r, ok := d.byID[id]
	return r, ok
}

// Resource is one `resource "<type>" "<name>"` block. Properties keep
// their raw HCL expressions so the resolver can inspect traversals before
// anything is evaluated.
type Resource struct {
	Type string
	Name string

	// Properties is the resource's property bag, keyed by attribute name.
	Properties map[string]hcl.Expression

	// DependsOn lists explicit dependency targets as "type.name" strings.
	DependsOn []string

	// DeclRange points at the block header in the source file.
	DeclRange hcl.Range
}

// ID returns the resource's document-unique identity.
func (r *Resource) ID() string {
	return r.Type + "." + r.Name
}

// Output is one document-level exported value, bound to a resource
// attribute via its value expression.
type Output struct {
	Name        string
	Value       hcl.Expression
	Description string
	DeclRange   hcl.Range
}
