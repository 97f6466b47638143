// Package dag builds the resource dependency graph and computes the
// deterministic apply order.
//
// Edges come from two places: explicit depends_on declarations and
// implicit reference-derived links found by the resolver. Both feed the
// same graph. The topological sort is stable: among ready nodes, original
// declaration order wins, so the same document always plans the same way.
package dag
