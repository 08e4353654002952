package pathfinder

import (
	"container/heap"
	"context"

	"github.com/specialistvlad/evacgrid/internal/area"
)

// shortestPath runs Dijkstra from start and stops as soon as goal is settled.
// Equal-distance candidates are settled in node insertion order, which makes
// the chosen path deterministic when several minimal paths exist. The only
// error it returns is the context's.
func shortestPath(ctx context.Context, g *area.Graph, start, goal string) ([]string, float64, bool, error) {
	dist := map[string]float64{start: 0}
	prev := make(map[string]string)
	settled := make(map[string]bool)

	pq := &queue{}
	heap.Init(pq)
	heap.Push(pq, &item{id: start, dist: 0, pos: g.Position(start)})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, 0, false, err
		}

		cur := heap.Pop(pq).(*item)
		if settled[cur.id] {
			continue // stale entry
		}
		settled[cur.id] = true

		if cur.id == goal {
			return reconstructPath(prev, start, goal), cur.dist, true, nil
		}

		nbrs, err := g.Neighbors(cur.id)
		if err != nil {
			continue
		}
		for _, n := range nbrs {
			if settled[n.ID] {
				continue
			}
			nd := cur.dist + n.Weight
			if old, seen := dist[n.ID]; !seen || nd < old {
				dist[n.ID] = nd
				prev[n.ID] = cur.id
				heap.Push(pq, &item{id: n.ID, dist: nd, pos: g.Position(n.ID)})
			}
		}
	}

	return nil, 0, false, nil
}

// reconstructPath walks the predecessor map back from goal to start.
func reconstructPath(prev map[string]string, start, goal string) []string {
	path := []string{goal}
	for cur := goal; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type item struct {
	id   string
	dist float64
	pos  int
}

// queue is a min-heap ordered by distance, then insertion position.
type queue []*item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].pos < q[j].pos
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) {
	*q = append(*q, x.(*item))
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
