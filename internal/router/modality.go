package router

import "github.com/tolga/fieldroute/internal/model"

// SelectModality implements spec.md §4.3 Step 5: compare the walking-time
// estimate (service + entry + distance at a constant walking speed) against
// the branch's daily capSec with a safety margin, preferring walking whenever
// it fits; otherwise the route keeps its solved driving time.
func SelectModality(route *model.Route, cfg Config, weekday int, branch model.Branch) {
	serviceSum, entrySum := 0, 0
	for idx, v := range route.Visits {
		serviceSum += v.ServiceSec
		if idx == 0 || route.Visits[idx-1].Group.Partner != v.Group.Partner {
			entrySum += v.Group.EntrySec
		}
	}

	walkSpeedMps := cfg.WalkingSpeedKmh * 1000 / 3600
	walkDistanceSec := 0
	if walkSpeedMps > 0 {
		walkDistanceSec = int(route.TotalDistM/walkSpeedMps + 0.5)
	}
	tWalk := serviceSum + entrySum + walkDistanceSec

	capSec := branch.CapSeconds(weekday)
	if float64(tWalk)*(1+cfg.WalkingMarginRatio) <= float64(capSec) {
		route.Modality = model.ModalityWalking
		route.TotalTimeSec = tWalk
		return
	}
	route.Modality = model.ModalityDriving
}
