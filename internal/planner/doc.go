// Package planner owns the evacuation area for the lifetime of a run and
// answers route queries against it.
//
// A Session is the explicit context object every command and query goes
// through. Insertions are serialised because they both read and write the
// store; queries only hold the lock long enough to resolve exclusions and
// take a snapshot, then search on that private copy.
//
// A query flows through the stages in a fixed order:
//
//	avoid-set   every hazard zone except the start
//	  -> constraint.Resolve   edges incident to the avoid-set, from the live graph
//	  -> pathfinder.Find      per-destination Dijkstra on filtered copies
//	  -> selector.Select      the single highlighted route
package planner
