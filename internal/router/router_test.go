package router_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/router"
)

func twoPartnerInput(maxTimeSec int, distance float64) router.Input {
	p1 := model.Partner{ID: model.NewPartnerID("P1"), Branch: "B1", OpenSec: 0, CloseSec: 28800, EntrySec: 300, Point: "pt1"}
	p2 := model.Partner{ID: model.NewPartnerID("P2"), Branch: "B1", OpenSec: 0, CloseSec: 28800, EntrySec: 300, Point: "pt2"}

	travel := *model.NewTravelMatrix("B1")
	travel.Set("pt1", "pt2", model.TravelLeg{DistanceM: distance, DurationSec: 1800})
	travel.Set("pt2", "pt1", model.TravelLeg{DistanceM: distance, DurationSec: 1800})

	return router.Input{
		Branch: model.Branch{ID: "B1", WeeklyDays: 5, MaxTimeSeconds: maxTimeSec, MaxDistanceM: 100000},
		Weekday: 0,
		Visits: []router.AssetVisit{
			{Asset: model.NewAssetID("A1"), Partner: model.NewPartnerID("P1"), ServiceSec: 600, Frequency: 1},
			{Asset: model.NewAssetID("A2"), Partner: model.NewPartnerID("P2"), ServiceSec: 600, Frequency: 1},
		},
		Partners: map[model.PartnerID]model.Partner{p1.ID: p1, p2.ID: p2},
		Travel:   travel,
	}
}

// TestRoute_VRPTWFeasibility reproduces spec.md §8 Scenario D: two
// single-asset partners merge into one BASE -> p1 -> p2 -> BASE route
// totaling 3600s.
func TestRoute_VRPTWFeasibility(t *testing.T) {
	in := twoPartnerInput(28800, 40000) // long leg: walking does not fit Tmax, so the route keeps its driving time
	cfg := router.Config{
		WalkingMarginRatio: 0.1,
		WalkingSpeedKmh:    5,
	}

	out := router.Route(context.Background(), in, cfg)

	require.Equal(t, model.StatusOK, out.Report.Status())
	require.Len(t, out.Routes, 1)
	assert.Equal(t, 3600, out.Routes[0].TotalTimeSec)
	require.Len(t, out.Routes[0].Visits, 2)
	assert.Equal(t, model.NewPartnerID("P1"), out.Routes[0].Visits[0].Group.Partner)
	assert.Equal(t, model.NewPartnerID("P2"), out.Routes[0].Visits[1].Group.Partner)
}

// TestRoute_ModalitySelection reproduces Scenario E: with a 500m leg and a
// 4h daily cap, the walking estimate comfortably fits even with a 10%
// margin, so the route is marked walking.
func TestRoute_ModalitySelection(t *testing.T) {
	in := twoPartnerInput(14400, 500)
	cfg := router.Config{
		WalkingMarginRatio: 0.1,
		WalkingSpeedKmh:    5,
	}

	out := router.Route(context.Background(), in, cfg)

	require.Len(t, out.Routes, 1)
	assert.Equal(t, model.ModalityWalking, out.Routes[0].Modality)
}

func TestRoute_InfeasibleGroupDropped(t *testing.T) {
	p1 := model.Partner{ID: model.NewPartnerID("P1"), Branch: "B1", OpenSec: 0, CloseSec: 28800, EntrySec: 300, Point: "pt1"}
	in := router.Input{
		Branch:  model.Branch{ID: "B1", WeeklyDays: 5, MaxTimeSeconds: 1000, MaxDistanceM: 100000},
		Weekday: 0,
		Visits: []router.AssetVisit{
			{Asset: model.NewAssetID("A1"), Partner: model.NewPartnerID("P1"), ServiceSec: 5000, Frequency: 1},
		},
		Partners: map[model.PartnerID]model.Partner{p1.ID: p1},
		Travel:   *model.NewTravelMatrix("B1"),
	}

	out := router.Route(context.Background(), in, router.Config{WalkingSpeedKmh: 5})

	require.Empty(t, out.Routes)
	require.NotEmpty(t, out.Report.Errors())
	assert.Equal(t, model.CodeGroupInfeasible, out.Report.Errors()[0].Code)
}
