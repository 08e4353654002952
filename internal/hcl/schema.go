package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block an area file may contain.
type fileRoot struct {
	Locals  []*localsBlock `hcl:"locals,block"`
	Nodes   []*nodeBlock   `hcl:"node,block"`
	Edges   []*edgeBlock   `hcl:"edge,block"`
	Queries []*queryBlock  `hcl:"query,block"`
}

// localsBlock keeps its body raw; attributes are evaluated once every file
// has been read so locals can be shared across files.
type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type nodeBlock struct {
	ID    string       `hcl:"id,label"`
	Kind  string       `hcl:"kind,optional"`
	Links []*linkBlock `hcl:"link,block"`
}

type linkBlock struct {
	To       string         `hcl:"to,label"`
	Distance hcl.Expression `hcl:"distance"`
}

type edgeBlock struct {
	From     string         `hcl:"from,label"`
	To       string         `hcl:"to,label"`
	Distance hcl.Expression `hcl:"distance"`
}

type queryBlock struct {
	Name         string         `hcl:"name,label"`
	Start        hcl.Expression `hcl:"start"`
	Destinations hcl.Expression `hcl:"destinations"`
}
