// Package registry holds the resource-type schema catalog. The engine
// never hardcodes type knowledge; the validator receives a Catalog and
// asks it for the shape of each resource type it meets.
package registry

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// FieldSchema constrains a single property of a resource type.
type FieldSchema struct {
	Name string
	// Type is the value constraint literals must convert to.
	Type cty.Type
	// Required marks the property as mandatory.
	Required bool
	// Enum, when non-empty, lists the only accepted string values.
	Enum []string
	// Min and Max bound numeric values when set.
	Min *float64
	Max *float64
}

// ResourceSchema is the full shape of one resource type: its settable
// properties and the runtime-produced attributes other resources may
// reference.
type ResourceSchema struct {
	Type       string
	Fields     map[string]*FieldSchema
	Attributes map[string]cty.Type
}

// Catalog is the lookup capability injected into the validator. A lookup
// miss means the resource type is unknown to the provider catalog.
type Catalog interface {
	Lookup(resourceType string) (*ResourceSchema, bool)
}

// Registry is the in-memory Catalog implementation.
type Registry struct {
	schemas map[string]*ResourceSchema
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{schemas: make(map[string]*ResourceSchema)}
}

// Register adds a resource-type schema. Registering the same type twice is
// a programmer error and is rejected.
func (r *Registry) Register(s *ResourceSchema) error {
	if _, exists := r.schemas[s.Type]; exists {
		return fmt.Errorf("resource type %q is already registered", s.Type)
	}
	r.schemas[s.Type] = s
	return nil
}

// Lookup implements Catalog.
func (r *Registry) Lookup(resourceType string) (*ResourceSchema, bool) {
	s, ok := r.schemas[resourceType]
	return s, ok
}

// Types returns every registered type name in lexical order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.schemas))
	for t := range r.schemas {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
