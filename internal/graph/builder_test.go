package graph

import (
	"errors"
	"testing"

	"github.com/passbi/passbi_planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	for _, id := range []string{"A", "B"} {
		require.NoError(t, b.AddLocation(models.Location{ID: id}))
	}

	require.NoError(t, b.AddBidirectionalLink("A", "B", models.ModeMetro, 1.6))
	require.NoError(t, b.AddLink("A", "B", models.ModeAuto, 1.6))
	assert.Equal(t, 3, b.EdgeCount())

	n, err := b.Build()
	require.NoError(t, err)

	out := n.OutEdges("A")
	require.Len(t, out, 2)
	assert.InDelta(t, 3.0, out[0].Time, 1e-9)
	assert.Equal(t, MetroFarePerHop, out[0].Cost)
	assert.InDelta(t, 1.6, out[0].Distance, 1e-9)
	assert.Equal(t, models.ModeAuto, out[1].Mode)
	assert.Len(t, n.OutEdges("B"), 1)
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddLocation(models.Location{ID: "A"}))
	require.NoError(t, b.AddLocation(models.Location{ID: "B"}))

	t.Run("Duplicate location", func(t *testing.T) {
		assert.Error(t, b.AddLocation(models.Location{ID: "A"}))
	})

	t.Run("Unknown endpoint", func(t *testing.T) {
		var ie *InvalidEdgeError
		err := b.AddLink("A", "Z", models.ModeWalk, 1)
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, "Z", ie.To)
	})

	t.Run("Non-positive distance carries endpoints", func(t *testing.T) {
		var ie *InvalidEdgeError
		err := b.AddLink("A", "B", models.ModeBus, 0)
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, "A", ie.From)
		assert.Equal(t, "B", ie.To)
	})
}
