package router

import (
	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/ports"
)

// BasePoint is the sentinel point-id for the depot node (spec.md §9 design
// note: represent BASE explicitly, with zero coordinates and a zero-cost
// self-arc; arcs touching BASE skip entry-time accounting since BASE is not
// a partner).
const BasePoint model.PointID = "__BASE__"

// Config tunes the solver and modality/tier decisions (spec.md §4.3).
type Config struct {
	// RouteCostPenalty carries the configured per-route opening penalty.
	// Solve does not read it: its savings construction ranks merges by the
	// real inter-group distance only. Reported distances are real.
	RouteCostPenalty float64

	// WalkingMarginRatio is the fractional margin applied to T_walk before
	// comparing it against Tmax (spec.md §4.3 Step 5), typical 0.05-0.15.
	WalkingMarginRatio float64

	// WalkingSpeedKmh is the assumed constant walking speed (5 km/h typical).
	WalkingSpeedKmh float64

	// ZeroBaseDistanceForWalking carries the configured choice of whether
	// BASE-adjacent distance is zeroed for walking routes only. The router
	// does not read it: leg treats every BASE-adjacent leg as zero distance
	// and zero duration, whatever the modality.
	ZeroBaseDistanceForWalking bool

	// ScaleTiers is the hour-tier catalog, ascending by Seconds, used in
	// Step 6. If no tier covers the route's total time, AssignTier assigns
	// a separate "full_time" tier sized to the day's cap instead.
	ScaleTiers []model.ScaleTier

	// Fallback, when non-nil, is queried for any branch-internal point pair
	// missing from an Input's Travel matrix before solving (spec.md §5's
	// fallback path). Nil skips resolution entirely: Solve already drops
	// merges it can't evaluate.
	Fallback ports.TravelMatrixSource
}

// AssetVisit is one asset scheduled on the weekday being routed.
type AssetVisit struct {
	Asset      model.AssetID
	Partner    model.PartnerID
	ServiceSec int
	Frequency  int // f_a, summed into Group.WeekDemand
}

// Input is one (branch, supervisor, weekday) routing subproblem (spec.md
// §5: independent per tuple, safe to run in parallel).
type Input struct {
	Branch     model.Branch
	Supervisor string
	Weekday    int
	Visits     []AssetVisit
	Partners   map[model.PartnerID]model.Partner
	Travel     model.TravelMatrix
}

// Output is the solved route set for one subproblem.
type Output struct {
	Routes []model.Route
	Report model.Report
}
