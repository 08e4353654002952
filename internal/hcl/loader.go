package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL area loader.
func NewLoader() *Loader {
	return &Loader{}
}

// parsedFile pairs a decoded file with its path for error messages.
type parsedFile struct {
	path string
	root fileRoot
}

// Load parses every .hcl file under paths. Locals from all files are merged
// before any expression is evaluated, so a file may use a local declared in
// another one.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	parsed := make([]parsedFile, 0, len(files))
	var localBodies []hcl.Body

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		for _, lb := range root.Locals {
			localBodies = append(localBodies, lb.Body)
		}
		parsed = append(parsed, parsedFile{path: file, root: root})
	}

	locals, err := resolveLocals(localBodies)
	if err != nil {
		return nil, err
	}
	evalCtx := newEvalContext(locals)

	model := &config.Model{}
	for _, pf := range parsed {
		if err := l.translate(pf, evalCtx, model); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(model.Nodes), "edges", len(model.Edges), "queries", len(model.Queries), "locals", len(locals))
	return model, nil
}

// translate evaluates one file's blocks and appends them to model.
func (l *Loader) translate(pf parsedFile, evalCtx *hcl.EvalContext, model *config.Model) error {
	for _, nb := range pf.root.Nodes {
		kind, err := area.ParseKind(nb.Kind)
		if err != nil {
			return fmt.Errorf("%s: node %q: %w", pf.path, nb.ID, err)
		}
		node := &config.Node{ID: nb.ID, Kind: kind, Source: pf.path}
		for _, lb := range nb.Links {
			d, err := decodeNumber(lb.Distance, evalCtx)
			if err != nil {
				return fmt.Errorf("%s: node %q link %q: distance: %w", pf.path, nb.ID, lb.To, err)
			}
			node.Links = append(node.Links, &config.Link{To: lb.To, Distance: d})
		}
		model.Nodes = append(model.Nodes, node)
	}

	for _, eb := range pf.root.Edges {
		d, err := decodeNumber(eb.Distance, evalCtx)
		if err != nil {
			return fmt.Errorf("%s: edge %q %q: distance: %w", pf.path, eb.From, eb.To, err)
		}
		model.Edges = append(model.Edges, &config.Edge{From: eb.From, To: eb.To, Distance: d, Source: pf.path})
	}

	for _, qb := range pf.root.Queries {
		if _, dup := model.QueryByName(qb.Name); dup {
			return fmt.Errorf("%s: query %q is defined more than once", pf.path, qb.Name)
		}
		start, err := decodeString(qb.Start, evalCtx)
		if err != nil {
			return fmt.Errorf("%s: query %q: start: %w", pf.path, qb.Name, err)
		}
		dests, err := decodeStringList(qb.Destinations, evalCtx)
		if err != nil {
			return fmt.Errorf("%s: query %q: destinations: %w", pf.path, qb.Name, err)
		}
		model.Queries = append(model.Queries, &config.Query{Name: qb.Name, Start: start, Destinations: dests})
	}
	return nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	return fsutil.CollectFiles(paths, ".hcl")
}
