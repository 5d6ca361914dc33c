package router

import "github.com/tolga/fieldroute/internal/model"

// AssignTier implements spec.md §4.3 Step 6: pick the smallest configured
// hour-tier whose seconds cover the route's total time; if none does,
// promote the route to full-time and capSec its total at the daily budget.
func AssignTier(route *model.Route, cfg Config, branch model.Branch, weekday int) {
	for _, t := range cfg.ScaleTiers {
		if t.Seconds >= route.TotalTimeSec {
			route.Tier = t
			return
		}
	}
	capSec := branch.CapSeconds(weekday)
	route.Tier = model.ScaleTier{Name: "full_time", Seconds: capSec, FTEFraction: 1.0}
	if route.TotalTimeSec > capSec {
		route.TotalTimeSec = capSec
	}
}
