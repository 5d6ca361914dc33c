package pipeline_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/pipeline"
)

// TestRetryCapacity_ConvergesPerScenarioF reproduces spec.md §8 Scenario F:
// a 44h weekly budget, an initial 48h overrun, and a retry loop that
// shrinks capacity to 41.8h and raises the percentile to 55 before the
// resolve comes in under budget.
func TestRetryCapacity_ConvergesPerScenarioF(t *testing.T) {
	const hour = 3600
	originalBudget := 44 * hour
	initialCapacity := 44 * hour
	initialPercentile := 50.0

	var seenCapacities []int
	var seenPercentiles []float64

	solve := func(capacitySec int, percentile float64) ([]model.Agent, error) {
		seenCapacities = append(seenCapacities, capacitySec)
		seenPercentiles = append(seenPercentiles, percentile)
		hours := 48
		if len(seenCapacities) > 1 {
			hours = 40 // second attempt comes in under budget
		}
		return []model.Agent{{
			ID:     uuid.New(),
			Routes: map[int]model.Route{0: {TotalTimeSec: hours * hour}},
		}}, nil
	}

	agents, diags, err := pipeline.RetryCapacity(10, originalBudget, initialCapacity, initialPercentile, solve)

	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.LessOrEqual(t, agents[0].WeeklySeconds(), originalBudget)
	require.Len(t, seenCapacities, 2)
	assert.InDelta(t, 41.8*hour, float64(seenCapacities[1]), 1)
	assert.Equal(t, 55.0, seenPercentiles[1])
	require.Len(t, diags, 1)
	assert.Equal(t, model.CodeCapacityOverrun, diags[0].Code)
}

func TestRetryCapacity_DivergesAfterMaxIterations(t *testing.T) {
	solve := func(capacitySec int, percentile float64) ([]model.Agent, error) {
		return []model.Agent{{
			Routes: map[int]model.Route{0: {TotalTimeSec: 48 * 3600}},
		}}, nil
	}

	_, diags, err := pipeline.RetryCapacity(3, 44*3600, 44*3600, 50, solve)

	require.Error(t, err)
	last := diags[len(diags)-1]
	assert.Equal(t, model.CodeRetryDiverged, last.Code)
}
