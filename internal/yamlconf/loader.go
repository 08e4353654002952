// Package yamlconf loads evacuation areas written as YAML documents. It is
// the YAML counterpart of the HCL loader and fills in the same config.Model.
//
//	nodes:
//	  - id: Route_3
//	    kind: evacuation_route
//	    links:
//	      - {to: RiskArea_1, distance: 4}
//	edges:
//	  - {from: Route_3, to: RescueCenter_1, distance: 9}
//	queries:
//	  - name: north
//	    start: RiskArea_1
//	    destinations: [RescueCenter_1]
package yamlconf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

type document struct {
	Nodes   []nodeDoc  `yaml:"nodes"`
	Edges   []edgeDoc  `yaml:"edges"`
	Queries []queryDoc `yaml:"queries"`
}

type nodeDoc struct {
	ID    string    `yaml:"id"`
	Kind  string    `yaml:"kind"`
	Links []linkDoc `yaml:"links"`
}

type linkDoc struct {
	To       string   `yaml:"to"`
	Distance *float64 `yaml:"distance"`
}

type edgeDoc struct {
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	Distance *float64 `yaml:"distance"`
}

type queryDoc struct {
	Name         string   `yaml:"name"`
	Start        string   `yaml:"start"`
	Destinations []string `yaml:"destinations"`
}

// Loader implements config.Loader for .yaml and .yml files.
type Loader struct{}

// NewLoader creates a new YAML area loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML file under paths. A file may hold several documents
// separated by "---"; they are applied in order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		for {
			var doc document
			err := dec.Decode(&doc)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
			}
			if err := translate(file, &doc, model); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("YAML loading complete.", "nodes", len(model.Nodes), "edges", len(model.Edges), "queries", len(model.Queries))
	return model, nil
}

func translate(path string, doc *document, model *config.Model) error {
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%s: node without id", path)
		}
		kind, err := area.ParseKind(n.Kind)
		if err != nil {
			return fmt.Errorf("%s: node %q: %w", path, n.ID, err)
		}
		node := &config.Node{ID: n.ID, Kind: kind, Source: path}
		for _, l := range n.Links {
			if l.Distance == nil {
				return fmt.Errorf("%s: node %q link %q: distance is required", path, n.ID, l.To)
			}
			node.Links = append(node.Links, &config.Link{To: l.To, Distance: *l.Distance})
		}
		model.Nodes = append(model.Nodes, node)
	}

	for _, e := range doc.Edges {
		if e.Distance == nil {
			return fmt.Errorf("%s: edge %q %q: distance is required", path, e.From, e.To)
		}
		model.Edges = append(model.Edges, &config.Edge{From: e.From, To: e.To, Distance: *e.Distance, Source: path})
	}

	for _, q := range doc.Queries {
		if _, dup := model.QueryByName(q.Name); dup {
			return fmt.Errorf("%s: query %q is defined more than once", path, q.Name)
		}
		model.Queries = append(model.Queries, &config.Query{Name: q.Name, Start: q.Start, Destinations: q.Destinations})
	}
	return nil
}
