// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "github.com/specialistvlad/evacgrid/internal/area"

// Model is the merged content of all loaded area files. Slices keep the order
// in which declarations were read, which is the order they are applied in.
type Model struct {
	Nodes   []*Node
	Edges   []*Edge
	Queries []*Query
}

// Node declares a node and the distances it should be linked with when it is
// inserted.
type Node struct {
	ID     string
	Kind   area.Kind
	Links  []*Link
	Source string // file the declaration came from
}

// Link is one entry of a node's distance list.
type Link struct {
	To       string
	Distance float64
}

// Edge sets a distance between two declared nodes directly, bypassing the
// insertion policy.
type Edge struct {
	From     string
	To       string
	Distance float64
	Source   string
}

// Query is a saved route query.
type Query struct {
	Name         string
	Start        string
	Destinations []string
}

// QueryByName finds a saved query.
func (m *Model) QueryByName(name string) (*Query, bool) {
	for _, q := range m.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return nil, false
}
