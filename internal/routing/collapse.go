package routing

import "github.com/passbi/passbi_planner/internal/models"

// Collapse merges routes that traverse the same edges. The first route of each
// group keeps its position and lists the other strategies in AlsoOptimal.
// Routes without a path are never merged.
func Collapse(routes []models.Route) []models.Route {
	out := make([]models.Route, 0, len(routes))

	for _, route := range routes {
		merged := false
		for i := range out {
			if out[i].SameEdges(&route) {
				out[i].AlsoOptimal = append(out[i].AlsoOptimal, route.Strategy)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, route)
		}
	}

	return out
}
