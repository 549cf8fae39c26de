package routing

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
)

// SearchResult is the search state of one Solve call
type SearchResult struct {
	Source      string
	Destination string
	Reached     bool // destination settled
	TimedOut    bool // context expired before the destination was settled
	Settled     int  // number of finalised locations

	labels        map[string]*label
	locationCount int
}

// label is the per-location search state
type label struct {
	dist    float64
	settled bool
	pred    *models.Edge
}

// Distance returns the composite distance of a settled location
func (r *SearchResult) Distance(id string) (float64, bool) {
	l, ok := r.labels[id]
	if !ok || !l.settled {
		return math.Inf(1), false
	}
	return l.dist, true
}

// Solve runs a label-setting search from source. It stops once destination is
// settled; an empty destination computes the full shortest-path tree.
// An unreachable destination or an expired deadline is reported through
// Reached and TimedOut, not as an error. Cancellation is an error.
func Solve(ctx context.Context, net *graph.Network, source, destination string, weight WeightFunc) (*SearchResult, error) {
	if err := net.Require(source); err != nil {
		return nil, err
	}
	if destination != "" {
		if err := net.Require(destination); err != nil {
			return nil, err
		}
	}

	res := &SearchResult{
		Source:        source,
		Destination:   destination,
		labels:        make(map[string]*label),
		locationCount: net.LocationCount(),
	}

	frontier := &frontierQueue{}
	heap.Init(frontier)

	var seq uint64
	push := func(id string, dist float64) {
		heap.Push(frontier, &frontierItem{id: id, dist: dist, seq: seq})
		seq++
	}

	res.labels[source] = &label{dist: 0}
	push(source, 0)

	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				res.TimedOut = true
				return res, nil
			}
			return nil, fmt.Errorf("search from %q cancelled: %w", source, err)
		}

		item := heap.Pop(frontier).(*frontierItem)
		current := res.labels[item.id]
		if current.settled || item.dist > current.dist {
			continue // stale entry
		}
		current.settled = true
		res.Settled++

		if item.id == destination {
			res.Reached = true
			return res, nil
		}

		edges := net.OutEdges(item.id)
		for i := range edges {
			edge := &edges[i]

			w := weight(*edge)
			if math.IsNaN(w) || w < 0 {
				return nil, fmt.Errorf("edge %d (%s -> %s) has invalid weight %v", edge.ID, edge.From, edge.To, w)
			}

			next, ok := res.labels[edge.To]
			if !ok {
				next = &label{dist: math.Inf(1)}
				res.labels[edge.To] = next
			}
			if next.settled {
				continue
			}

			if candidate := current.dist + w; candidate < next.dist {
				next.dist = candidate
				next.pred = edge
				push(edge.To, candidate)
			}
		}
	}

	return res, nil
}

// frontierItem is a frontier entry; seq records discovery order
type frontierItem struct {
	id   string
	dist float64
	seq  uint64
}

// frontierQueue implements heap.Interface ordered by distance, then discovery order
type frontierQueue []*frontierItem

func (q frontierQueue) Len() int { return len(q) }

func (q frontierQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}

func (q frontierQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontierQueue) Push(x interface{}) {
	*q = append(*q, x.(*frontierItem))
}

func (q *frontierQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[0 : n-1]
	return item
}
