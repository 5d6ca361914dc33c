package router

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tolga/fieldroute/internal/model"
)

// simulateRoute walks BASE -> groups... -> BASE, validating each partner's
// opening window (waiting if arriving early) and returning the total time
// spent on travel+service+entry (spec.md §4.3 Step 3's arc-time formula:
// α·t(i,j) + service(i) + entry(j) when partner(j)≠partner(i)) and the
// total distance. ok is false if a required travel pair is missing or a
// window is violated.
func simulateRoute(groups []model.Group, travel model.TravelMatrix) (totalTime int, totalDist float64, arrivals []int, ok bool) {
	prevPoint := BasePoint
	prevService := 0
	clock := 0
	arrivals = make([]int, len(groups))

	for idx, g := range groups {
		d, dur, found := leg(travel, prevPoint, g.Point)
		if !found {
			return 0, 0, nil, false
		}
		entry := 0
		if idx == 0 || groups[idx-1].Partner != g.Partner {
			entry = g.EntrySec
		}
		arcTime := dur + prevService + entry
		clock += arcTime
		if clock < g.OpenSec {
			clock = g.OpenSec
		}
		if clock > g.CloseSec {
			return 0, 0, nil, false
		}
		totalTime += arcTime
		totalDist += d
		arrivals[idx] = clock
		prevPoint = g.Point
		prevService = g.ServiceSec
	}

	d, dur, found := leg(travel, prevPoint, BasePoint)
	if !found {
		return 0, 0, nil, false
	}
	totalTime += dur + prevService
	totalDist += d

	return totalTime, totalDist, arrivals, true
}

// buildRoute converts a solved group sequence into a reportable Route, with
// each visit attributed its own incoming travel+entry and its own service
// (an equivalent regrouping of simulateRoute's arc-time accounting — see
// DESIGN.md).
func buildRoute(in Input, groups []model.Group, n int) model.Route {
	totalTime, totalDist, arrivals, _ := simulateRoute(groups, in.Travel)

	visits := make([]model.Visit, len(groups))
	prevPoint := BasePoint
	for idx, g := range groups {
		d, dur, _ := leg(in.Travel, prevPoint, g.Point)
		entry := 0
		if idx == 0 || groups[idx-1].Partner != g.Partner {
			entry = g.EntrySec
		}
		visits[idx] = model.Visit{
			Ordinal:    idx + 1,
			Group:      g,
			DistanceM:  d,
			TravelSec:  dur + entry,
			ServiceSec: g.ServiceSec,
			ArrivalSec: arrivals[idx],
		}
		prevPoint = g.Point
	}

	return model.Route{
		ID:           uuid.New(),
		Label:        fmt.Sprintf("R%sD%dN%d", in.Branch.ID, in.Weekday, n),
		Branch:       in.Branch.ID,
		Supervisor:   in.Supervisor,
		Weekday:      in.Weekday,
		Visits:       visits,
		TotalDistM:   totalDist,
		TotalTimeSec: totalTime,
	}
}
