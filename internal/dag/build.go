package dag

import (
	"context"
	"fmt"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/ctxlog"
	"github.com/vk/botplan/internal/resolver"
)

// Build constructs the dependency graph for a resolved document. Nodes are
// created in declaration order; edges come from explicit depends_on
// declarations and from the resolver's reference links.
//
// Build assumes the resolution pass already rejected dangling targets and
// self-references, so an edge failure here is an internal inconsistency.
func Build(ctx context.Context, doc *config.Document, res *resolver.Resolution) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	graph := New()
	for _, r := range doc.Resources {
		graph.AddNode(r.ID())
	}
	logger.Debug("Graph nodes created.", "node_count", graph.Len())

	for _, r := range doc.Resources {
		id := r.ID()
		for _, dep := range r.DependsOn {
			if err := graph.AddEdge(dep, id); err != nil {
				return nil, fmt.Errorf("linking explicit dependency of %s: %w", id, err)
			}
		}
		for _, ref := range res.ByResource[id] {
			if err := graph.AddEdge(ref.Target, id); err != nil {
				return nil, fmt.Errorf("linking reference dependency of %s: %w", id, err)
			}
		}
	}
	logger.Debug("Graph edges linked.")

	return graph, nil
}
