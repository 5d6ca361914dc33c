package model

import "github.com/google/uuid"

// ScaleTier is the hour-tier label assigned to a route once its total time
// is known (spec.md §4.3 Step 6).
type ScaleTier struct {
	Name         string
	Seconds      int
	FTEFraction  float64
}

// Visit is one stop on a route: the arc arriving at a group plus the
// accumulated metrics at that point (spec.md §6, Route book output).
type Visit struct {
	Ordinal        int
	Group          Group
	DistanceM      float64
	TravelSec      int // travel time of the incoming arc, including entry time
	ServiceSec     int
	ArrivalSec     int // normalized start time at this stop
}

// Route ("livro") is an ordered sequence of visits covered by one vehicle on
// one day (spec.md §3).
type Route struct {
	ID           uuid.UUID
	Label        string
	Branch       BranchID
	Supervisor   string
	Weekday      int
	Modality     Modality
	Tier         ScaleTier
	Visits       []Visit
	TotalDistM   float64
	TotalTimeSec int // service + travel, the quantity bounded by the route's daily cap
}

// Assets returns the set of asset IDs visited by this route, used by the
// agent matcher's shared-asset-fraction score (spec.md §4.4).
func (r Route) Assets() map[AssetID]struct{} {
	out := make(map[AssetID]struct{})
	for _, v := range r.Visits {
		for _, a := range v.Group.Members {
			out[a] = struct{}{}
		}
	}
	return out
}

// IsFullTime reports whether the route's tier is the catalog's full-time
// tier (used by the agent matcher's tie-break and full-time promotion).
func (r Route) IsFullTime(fullTimeSeconds int) bool {
	return r.Tier.Seconds >= fullTimeSeconds
}

// Centroid is the mean lat/lon of a route's visited points, used by the
// agent matcher's haversine-distance screen (spec.md §4.4 Step 1). Computed
// by the caller from the point-id mapping since Route itself only carries
// opaque PointIDs.
type Centroid struct {
	Lat, Lon float64
}
