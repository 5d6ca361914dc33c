package router_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/router"
)

type fakeTravelSource struct {
	legs map[string]model.TravelLeg
	err  error
}

func (f fakeTravelSource) Lookup(_ context.Context, _ model.BranchID, i, j model.PointID) (model.TravelLeg, error) {
	if f.err != nil {
		return model.TravelLeg{}, f.err
	}
	leg, ok := f.legs[string(i)+"->"+string(j)]
	if !ok {
		return model.TravelLeg{}, errors.New("no such leg")
	}
	return leg, nil
}

// TestResolveMissingPairs_FillsGap checks that a pair absent from the
// precomputed matrix is filled in from the fallback source before Solve
// runs, letting Route merge groups it otherwise couldn't evaluate.
func TestResolveMissingPairs_FillsGap(t *testing.T) {
	in := twoPartnerInput(28800, 0) // distance 0: Set below supplies the real leg
	in.Travel = *model.NewTravelMatrix("B1")

	source := fakeTravelSource{legs: map[string]model.TravelLeg{
		"pt1->pt2": {DistanceM: 40000, DurationSec: 600},
		"pt2->pt1": {DistanceM: 40000, DurationSec: 600},
	}}

	cfg := router.Config{
		WalkingMarginRatio: 0.1,
		WalkingSpeedKmh:    5,
		Fallback:           source,
	}

	out := router.Route(context.Background(), in, cfg)

	require.Equal(t, model.StatusOK, out.Report.Status())
	require.Len(t, out.Routes, 1)
	assert.Equal(t, 2400, out.Routes[0].TotalTimeSec) // 300 (p1 entry) + 600 (p1) + 600 (travel) + 300 (p2 entry) + 600 (p2); BASE legs zero-cost, 40km leg keeps the route driving
}

// TestResolveMissingPairs_RecordsDiagnosticOnFailure checks that a fallback
// lookup error becomes a non-fatal CodeMissingTravelPair diagnostic rather
// than aborting the run.
func TestResolveMissingPairs_RecordsDiagnosticOnFailure(t *testing.T) {
	in := twoPartnerInput(28800, 0)
	in.Travel = *model.NewTravelMatrix("B1")

	report := model.Report{Stage: "router"}
	router.ResolveMissingPairs(context.Background(), &in, fakeTravelSource{err: errors.New("api down")}, &report)

	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, model.CodeMissingTravelPair, report.Diagnostics[0].Code)
}
