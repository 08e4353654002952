package config

import (
	"context"
	"fmt"
)

// MultiLoader runs several loaders over the same paths and concatenates their
// models in loader order. Each loader picks up only the files of its own
// format.
type MultiLoader []Loader

// Load implements Loader. Query names must be unique across all loaders.
func (m MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	merged := &Model{}
	for _, l := range m {
		model, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		merged.Nodes = append(merged.Nodes, model.Nodes...)
		merged.Edges = append(merged.Edges, model.Edges...)
		for _, q := range model.Queries {
			if _, dup := merged.QueryByName(q.Name); dup {
				return nil, fmt.Errorf("query %q is defined more than once", q.Name)
			}
			merged.Queries = append(merged.Queries, q)
		}
	}
	return merged, nil
}
