package router_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/router"
)

// TestRecompute_MatchesInitialSolve checks that recomputing the groups the
// initial solve produced, in the same order, reproduces the same total
// time (SPEC_FULL.md supplemented feature #1: reroute without re-solving).
func TestRecompute_MatchesInitialSolve(t *testing.T) {
	in := twoPartnerInput(28800, 1800)
	cfg := router.Config{WalkingMarginRatio: 0.1, WalkingSpeedKmh: 5}

	solved := router.Route(context.Background(), in, cfg)
	require.Len(t, solved.Routes, 1)

	var groups []model.Group
	for _, v := range solved.Routes[0].Visits {
		groups = append(groups, v.Group)
	}

	recomputed, ok := router.Recompute(in, groups, cfg, 0)

	require.True(t, ok)
	assert.Equal(t, solved.Routes[0].TotalTimeSec, recomputed.TotalTimeSec)
	assert.Equal(t, solved.Routes[0].TotalDistM, recomputed.TotalDistM)
}

// TestRecompute_EntryChargedOnPartnerChangeNotGroupChange checks that two
// back-to-back groups of the same partner (an overflow split) do not pay
// entry time twice (SPEC_FULL.md supplemented feature #2).
func TestRecompute_EntryChargedOnPartnerChangeNotGroupChange(t *testing.T) {
	p1 := model.Partner{ID: model.NewPartnerID("P1"), Branch: "B1", OpenSec: 0, CloseSec: 28800, EntrySec: 300, Point: "pt1"}
	travel := *model.NewTravelMatrix("B1")

	groups := []model.Group{
		{Label: "g0", Partner: p1.ID, Point: p1.Point, ServiceSec: 600, EntrySec: p1.EntrySec, OpenSec: 0, CloseSec: 28800},
		{Label: "g1", Partner: p1.ID, Point: p1.Point, ServiceSec: 600, EntrySec: p1.EntrySec, OpenSec: 0, CloseSec: 28800},
	}
	in := router.Input{
		Branch:   model.Branch{ID: "B1", WeeklyDays: 5, MaxTimeSeconds: 28800, MaxDistanceM: 100000},
		Weekday:  0,
		Partners: map[model.PartnerID]model.Partner{p1.ID: p1},
		Travel:   travel,
	}

	route, ok := router.Recompute(in, groups, router.Config{WalkingSpeedKmh: 5}, 0)

	require.True(t, ok)
	// BASE->g0 pays entry once, g0->g1 (same partner) pays none, g1->BASE
	// has no entry component: total = 300 + 600 + 600 = 1500.
	assert.Equal(t, 1500, route.TotalTimeSec)
}
