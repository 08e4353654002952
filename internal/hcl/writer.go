package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders g as an area file. Every node is written without links and
// every edge as an explicit edge block, so loading the output rebuilds the
// same graph regardless of the insertion policy in effect.
func Encode(g *area.Graph, queries ...*config.Query) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, n := range g.Nodes() {
		block := body.AppendNewBlock("node", []string{n.ID})
		block.Body().SetAttributeValue("kind", cty.StringVal(n.Kind.String()))
	}

	edges := g.Edges()
	if len(edges) > 0 {
		body.AppendNewline()
	}
	for _, e := range edges {
		block := body.AppendNewBlock("edge", []string{e.From, e.To})
		block.Body().SetAttributeValue("distance", cty.NumberFloatVal(e.Weight))
	}

	for _, q := range queries {
		body.AppendNewline()
		block := body.AppendNewBlock("query", []string{q.Name})
		block.Body().SetAttributeValue("start", cty.StringVal(q.Start))
		block.Body().SetAttributeValue("destinations", stringList(q.Destinations))
	}

	return hclwrite.Format(f.Bytes())
}

// WriteFile encodes g and writes it to path.
func WriteFile(path string, g *area.Graph, queries ...*config.Query) error {
	if err := os.WriteFile(path, Encode(g, queries...), 0o644); err != nil {
		return fmt.Errorf("failed to write area file %s: %w", path, err)
	}
	return nil
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(items))
	for _, s := range items {
		vals = append(vals, cty.StringVal(s))
	}
	return cty.ListVal(vals)
}
