package graph

import (
	"fmt"

	"github.com/passbi/passbi_planner/internal/models"
)

// InvalidEdgeError reports malformed network data found while building a Network
type InvalidEdgeError struct {
	From   string
	To     string
	Mode   models.Mode
	Reason string
}

func (e *InvalidEdgeError) Error() string {
	return fmt.Sprintf("invalid %s edge %q -> %q: %s", e.Mode, e.From, e.To, e.Reason)
}

// UnknownLocationError reports a location id that is not part of the Network
type UnknownLocationError struct {
	ID string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("unknown location %q", e.ID)
}
