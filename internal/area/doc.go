// Package area holds the evacuation area graph: hazard zones, evacuation
// routes and rescue centers joined by undirected, weighted edges.
//
// The Graph is the single store every other component reads from. It keeps
// nodes in insertion order so that anything iterating over the area (avoid-set
// derivation, rendering, search tie-breaks) behaves the same way on every run.
// Queries never work on the live Graph directly; they take a Snapshot and
// filter that instead.
package area
