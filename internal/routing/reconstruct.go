package routing

import (
	"errors"
	"fmt"

	"github.com/passbi/passbi_planner/internal/models"
)

// ErrNoPath is returned when a path is requested for a location the search never settled
var ErrNoPath = errors.New("no path")

// CycleDetectedError reports a predecessor chain longer than the network allows
type CycleDetectedError struct {
	Destination string
	Hops        int
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("predecessor cycle detected while reconstructing path to %q after %d hops", e.Destination, e.Hops)
}

// PathTo walks the predecessor links back from dest and returns the edges in
// source to destination order. The source itself yields an empty path.
func (r *SearchResult) PathTo(dest string) ([]models.Edge, error) {
	target, ok := r.labels[dest]
	if !ok || !target.settled {
		return nil, ErrNoPath
	}

	var path []models.Edge
	current := dest
	for {
		l := r.labels[current]
		if l == nil || l.pred == nil {
			break
		}
		if len(path) >= r.locationCount {
			return nil, &CycleDetectedError{Destination: dest, Hops: len(path)}
		}
		path = append(path, *l.pred)
		current = l.pred.From
	}

	if current != r.Source {
		return nil, fmt.Errorf("predecessor chain for %q ends at %q instead of %q", dest, current, r.Source)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
