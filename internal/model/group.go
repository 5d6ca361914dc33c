package model

import "github.com/google/uuid"

// Group is a bucket of assets at the same partner, scheduled on the same
// weekday, whose cumulative service time plus partner entry time fits
// within Tmax (spec.md §3, §4.3 Step 1). Groups are the atomic clients the
// VRPTW solves over.
type Group struct {
	ID          uuid.UUID
	Label       string // "gP{partner}D{day}G{n}", for route-book readability
	Branch      BranchID
	Supervisor  string
	Weekday     int
	Partner     PartnerID
	Point       PointID
	Members     []AssetID
	ServiceSec  int // service(g) = Σ s_a
	WeekDemand  int // Σ f_a·s_a; computed by router.BuildGroups, not read by the solver
	EntrySec    int // entry(g) = e_{partner(g)}
	OpenSec     int
	CloseSec    int
}

// TotalSeconds is the service time plus the once-charged entry overhead,
// the quantity bounded by Tmax in spec.md §3's group invariant.
func (g Group) TotalSeconds() int { return g.ServiceSec + g.EntrySec }
