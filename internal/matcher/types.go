package matcher

import (
	"github.com/google/uuid"

	"github.com/tolga/fieldroute/internal/model"
)

// Config tunes the matching heuristic (spec.md §4.4).
type Config struct {
	// MaxDistanceM is Dmax, the branch's daily distance cap in meters. The
	// pairing screen compares haversine(centroid_i, centroid_j) against
	// Dmax/1000, literally as spec.md §4.4 Step 1 states it (Dmax meters /
	// 1000 == Dmax expressed in kilometers).
	MaxDistanceM float64

	// WeeklyBudgetSeconds is the agent's weekly hour budget: a candidate
	// route is attached to a bundle only if it fits in what remains of it.
	// Zero disables the check.
	WeeklyBudgetSeconds int

	// FullTimeSeconds is the scale-tier catalog's full-time threshold,
	// used for the "r_i is full-time" score term and the post-assembly
	// full-time promotion rule.
	FullTimeSeconds int

	// OneToOneMode bypasses the similarity heuristic: agent identity is
	// derived directly from the route label (spec.md §4.4 "1-to-1 mode").
	OneToOneMode bool
}

// Input is one (branch, supervisor) matching subproblem (spec.md §5:
// independent per tuple, safe to run in parallel).
type Input struct {
	Branch     model.BranchID
	Supervisor string
	Routes     []model.Route
	Centroids  map[uuid.UUID]model.Centroid // route ID -> centroid
}

// Output is the solved agent bundles plus the stage's diagnostic report.
// Match itself records no diagnostics; the 1-to-1 capacity retry loop is
// pipeline.RetryCapacity.
type Output struct {
	Agents []model.Agent
	Report model.Report
}
