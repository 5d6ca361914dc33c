package pipeline

import (
	"fmt"

	"github.com/tolga/fieldroute/internal/model"
)

// RetryCapacity implements the 1-to-1 mode capacity-overrun recovery loop
// (spec.md §7 "Capacity overrun in 1-to-1 mode", §9 design note: "model as
// a fixed-iteration fold, not unbounded recursion"). Each iteration shrinks
// the solver's capacity input by 5% and raises the travel-time inflation
// percentile by 5 points, then re-solves via solve. The loop stops as soon
// as every agent's weekly total fits originalBudgetSec, or after
// maxIterations attempts, whichever comes first.
func RetryCapacity(
	maxIterations int,
	originalBudgetSec int,
	initialCapacitySec int,
	initialPercentile float64,
	solve func(capacitySec int, percentile float64) ([]model.Agent, error),
) ([]model.Agent, []model.Diagnostic, error) {
	capacitySec := initialCapacitySec
	percentile := initialPercentile
	var diags []model.Diagnostic

	for attempt := 1; attempt <= maxIterations; attempt++ {
		agents, err := solve(capacitySec, percentile)
		if err != nil {
			return nil, diags, err
		}

		overrunBy := 0
		for _, a := range agents {
			if over := a.WeeklySeconds() - originalBudgetSec; over > overrunBy {
				overrunBy = over
			}
		}
		if overrunBy <= 0 {
			return agents, diags, nil
		}

		diags = append(diags, model.Diagnostic{
			Code: model.CodeCapacityOverrun,
			Message: fmt.Sprintf(
				"attempt %d: weekly cap exceeded by %ds, retrying with capacity=%ds percentile=%.0f",
				attempt, overrunBy, capacitySec, percentile,
			),
		})

		capacitySec = int(float64(capacitySec) * 0.95)
		percentile += 5
	}

	diags = append(diags, model.Diagnostic{
		Code:    model.CodeRetryDiverged,
		Message: fmt.Sprintf("capacity retry did not converge within %d iterations", maxIterations),
	})
	return nil, diags, fmt.Errorf("capacity retry diverged after %d iterations", maxIterations)
}
