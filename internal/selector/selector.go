// Package selector picks the one route to highlight out of a multi-destination
// route query.
package selector

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/evacgrid/internal/pathfinder"
)

// Mode chooses the ranking used to pick the highlight.
type Mode int

const (
	// ByNodeCount picks the path with the fewest nodes, regardless of its
	// total distance. This is the long-standing behaviour and the default.
	ByNodeCount Mode = iota
	// ByWeight picks the path with the lowest total distance.
	ByWeight
)

func (m Mode) String() string {
	switch m {
	case ByNodeCount:
		return "nodes"
	case ByWeight:
		return "weight"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "nodes" or "weight".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nodes", "node-count", "":
		return ByNodeCount, nil
	case "weight", "distance":
		return ByWeight, nil
	default:
		return ByNodeCount, fmt.Errorf("unknown selection mode %q: must be 'nodes' or 'weight'", s)
	}
}

// Select returns the highlighted result. Results are considered in the order
// given and ties go to the earliest one. The boolean is false when no result
// is reachable.
func Select(results []pathfinder.Result, mode Mode) (pathfinder.Result, bool) {
	var best pathfinder.Result
	found := false

	for _, r := range results {
		if !r.Reachable() {
			continue
		}
		if !found || better(r, best, mode) {
			best = r
			found = true
		}
	}
	return best, found
}

// better reports whether a strictly beats b under mode.
func better(a, b pathfinder.Result, mode Mode) bool {
	if mode == ByWeight {
		return a.Weight < b.Weight
	}
	return len(a.Path) < len(b.Path)
}
