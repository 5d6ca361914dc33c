package router

import (
	"sort"

	"github.com/google/uuid"

	"github.com/tolga/fieldroute/internal/model"
)

// leg looks up the distance/duration between two points, treating BASE as a
// zero-cost sentinel regardless of matrix contents (spec.md §9).
func leg(travel model.TravelMatrix, i, j model.PointID) (distM float64, durSec int, ok bool) {
	if i == BasePoint || j == BasePoint {
		return 0, 0, true
	}
	l, ok := travel.Lookup(i, j)
	return l.DistanceM, l.DurationSec, ok
}

// routeState is a route under construction: an ordered sequence of groups,
// implicitly bookended by BASE.
type routeState struct {
	groups []model.Group
}

func (rs *routeState) head() model.Group { return rs.groups[0] }
func (rs *routeState) tail() model.Group { return rs.groups[len(rs.groups)-1] }

// Solve implements spec.md §4.3 Steps 3-4: drop infeasible groups, then
// construct routes with a Clarke-Wright savings heuristic (the pack has no
// VRP/constraint-programming library — see DESIGN.md), merging the closest
// compatible groups first and stopping a merge only when it would violate
// the daily time cap, distance cap, or a partner's opening window.
func Solve(in Input, groups []model.Group, cfg Config, report *model.Report) []model.Route {
	capSec := in.Branch.CapSeconds(in.Weekday)
	distMax := in.Branch.MaxDistanceM

	var feasible []model.Group
	for _, g := range groups {
		roundTrip := g.ServiceSec + g.EntrySec // BASE legs are zero-cost
		if roundTrip > capSec {
			report.Add(model.Diagnostic{
				Code:    model.CodeGroupInfeasible,
				Message: "group cannot fit a BASE round trip within the daily cap",
				Branch:  in.Branch.ID,
				Weekday: &in.Weekday,
				Partner: g.Partner.Code(),
			})
			continue
		}
		feasible = append(feasible, g)
	}
	if len(feasible) == 0 {
		return nil
	}

	routes := make([]*routeState, len(feasible))
	routeOf := make(map[uuid.UUID]*routeState, len(feasible))
	for i, g := range feasible {
		rs := &routeState{groups: []model.Group{g}}
		routes[i] = rs
		routeOf[g.ID] = rs
	}

	type pairSaving struct {
		i, j   model.Group
		saving float64
	}
	var savings []pairSaving
	for a := 0; a < len(feasible); a++ {
		for b := a + 1; b < len(feasible); b++ {
			gi, gj := feasible[a], feasible[b]
			d, _, ok := leg(in.Travel, gi.Point, gj.Point)
			if !ok {
				report.Add(model.Diagnostic{
					Code:    model.CodeMissingTravelPair,
					Message: "travel matrix missing pair needed to evaluate a merge",
					Branch:  in.Branch.ID,
					Weekday: &in.Weekday,
				})
				continue
			}
			savings = append(savings, pairSaving{i: gi, j: gj, saving: -d})
		}
	}
	sort.Slice(savings, func(a, b int) bool { return savings[a].saving > savings[b].saving })

	for _, s := range savings {
		ri, rj := routeOf[s.i.ID], routeOf[s.j.ID]
		if ri == rj {
			continue
		}

		if ri.tail().ID == s.i.ID && rj.head().ID == s.j.ID {
			if merged, ok := tryMerge(ri.groups, rj.groups, in, capSec, distMax); ok {
				mergeInto(ri, rj, merged, routeOf)
				continue
			}
		}
		if rj.tail().ID == s.j.ID && ri.head().ID == s.i.ID {
			if merged, ok := tryMerge(rj.groups, ri.groups, in, capSec, distMax); ok {
				mergeInto(rj, ri, merged, routeOf)
			}
		}
	}

	seen := make(map[*routeState]bool)
	var result []model.Route
	n := 0
	for _, rs := range routes {
		if rs == nil {
			continue
		}
		canonical := routeOf[rs.groups[0].ID]
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		n++
		result = append(result, buildRoute(in, canonical.groups, n))
	}
	return result
}

// tryMerge concatenates head's groups with tail's groups and validates the
// resulting sequence against the daily time and distance caps.
func tryMerge(head, tail []model.Group, in Input, capSec int, distMax float64) ([]model.Group, bool) {
	candidate := make([]model.Group, 0, len(head)+len(tail))
	candidate = append(candidate, head...)
	candidate = append(candidate, tail...)
	totalTime, totalDist, _, ok := simulateRoute(candidate, in.Travel)
	if !ok {
		return nil, false
	}
	if totalTime > capSec || totalDist > distMax {
		return nil, false
	}
	return candidate, true
}

// mergeInto absorbs into into from's route state and repoints every member
// group of from to the merged state.
func mergeInto(into, from *routeState, merged []model.Group, routeOf map[uuid.UUID]*routeState) {
	into.groups = merged
	for _, g := range from.groups {
		routeOf[g.ID] = into
	}
}
