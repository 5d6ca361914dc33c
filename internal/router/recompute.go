package router

import "github.com/tolga/fieldroute/internal/model"

// Recompute re-derives distance/travel/entry/modality for an already
// ordered list of groups without re-solving the VRP (SPEC_FULL.md
// "Supplemented features" #1, grounded on original_source/reroterizar.py's
// recompute path: the PATH_CHEAPEST_ARC "reroute" mode named in spec.md
// §4.3's Search section, given a concrete shape). Used when groups have
// been manually reordered or edited after the initial solve; invoked from
// internal/orchestrate.Reroute, the cmd/planner "reroute" subcommand's
// entry point.
//
// Entry time is charged on partner change, not group change (SPEC_FULL.md
// supplemented feature #2): simulateRoute/buildRoute already implement this
// rule, so Recompute is a thin re-entry point into the same accounting.
func Recompute(in Input, groups []model.Group, cfg Config, n int) (model.Route, bool) {
	_, _, _, ok := simulateRoute(groups, in.Travel)
	if !ok {
		return model.Route{}, false
	}

	route := buildRoute(in, groups, n)
	SelectModality(&route, cfg, in.Weekday, in.Branch)
	AssignTier(&route, cfg, in.Branch, in.Weekday)
	return route, true
}
