package main

import (
	"testing"

	"github.com/passbi/passbi_planner/internal/dataset"
	"github.com/passbi/passbi_planner/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, s.mean)
	assert.Equal(t, 2.0, s.min)
	assert.Equal(t, 9.0, s.max)
	assert.InDelta(t, 2.138, s.stddev, 1e-3)

	assert.Equal(t, summary{mean: 3, min: 3, max: 3}, summarize([]float64{3}))
	assert.Equal(t, summary{}, summarize(nil))
}

func TestRunCase(t *testing.T) {
	net, err := dataset.Default().Build()
	require.NoError(t, err)
	router := routing.NewRouter(net)

	for _, tc := range testCases {
		res := runCase(router, tc, 2)
		require.NoError(t, res.err, tc.from+" → "+tc.to)
		assert.GreaterOrEqual(t, res.routes, 1)
		assert.LessOrEqual(t, res.routes, 4)
	}

	res := runCase(router, testCase{from: "Nowhere", to: "Fort Kochi"}, 1)
	assert.Error(t, res.err)
}
