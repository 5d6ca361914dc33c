package router

import (
	"context"
	"fmt"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/ports"
)

// ResolveMissingPairs fills any branch-internal point-to-point travel leg
// missing from in.Travel by querying source, the fallback path spec.md §5
// describes for partner pairs the precomputed matrix doesn't cover.
// Lookups that still fail are recorded as CodeMissingTravelPair diagnostics
// and otherwise ignored: Solve already drops merges it can't evaluate.
func ResolveMissingPairs(ctx context.Context, in *Input, source ports.TravelMatrixSource, report *model.Report) {
	points := make(map[model.PointID]struct{}, len(in.Partners))
	for _, p := range in.Partners {
		points[p.Point] = struct{}{}
	}

	ids := make([]model.PointID, 0, len(points))
	for pt := range points {
		ids = append(ids, pt)
	}

	for _, i := range ids {
		for _, j := range ids {
			if i == j {
				continue
			}
			if _, ok := in.Travel.Lookup(i, j); ok {
				continue
			}
			leg, err := source.Lookup(ctx, in.Branch.ID, i, j)
			if err != nil {
				report.Add(model.Diagnostic{
					Code:    model.CodeMissingTravelPair,
					Message: fmt.Sprintf("travel-matrix API fallback failed for %s->%s: %v", i, j, err),
					Branch:  in.Branch.ID,
					Weekday: &in.Weekday,
				})
				continue
			}
			in.Travel.Set(i, j, leg)
		}
	}
}
