package orchestrate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tolga/fieldroute/internal/adapters/travelapi"
	"github.com/tolga/fieldroute/internal/config"
	"github.com/tolga/fieldroute/internal/frequency"
	"github.com/tolga/fieldroute/internal/matcher"
	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/pipeline"
	"github.com/tolga/fieldroute/internal/ports"
	"github.com/tolga/fieldroute/internal/report"
	"github.com/tolga/fieldroute/internal/router"
	"github.com/tolga/fieldroute/internal/scheduler"
)

// Run executes the full S1-S4 pipeline against the tables reader reads and
// writes the result tables through writer, returning the per-stage
// diagnostic reports for the console summary.
func Run(ctx context.Context, cfg *config.Config, reader ports.TableReader, writer ports.ResultWriter) ([]report.StageResult, error) {
	pool := pipeline.New(cfg.WorkerPoolSize)

	tables, err := reader.ReadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	freqOut := runFrequency(tables, cfg.Planning)
	stages := []report.StageResult{{Stage: "frequency", Report: freqOut.Report}}
	if freqOut.Report.Status() == model.StatusError {
		return stages, fmt.Errorf("frequency engine: %s", freqOut.Report.Errors()[0].Error())
	}

	branches := buildBranches(cfg.Planning, freqOut.Partners)

	schedOuts, err := runSchedule(ctx, pool, branches, freqOut)
	if err != nil {
		return stages, fmt.Errorf("scheduler: %w", err)
	}
	for branchID, out := range schedOuts {
		stages = append(stages, report.StageResult{Stage: "scheduler:" + string(branchID), Report: out.Report})
	}

	var fallback ports.TravelMatrixSource
	if cfg.TravelAPIBaseURL != "" {
		fallback = travelapi.New(cfg.TravelAPIBaseURL)
	}
	routerCfgByBranch := make(map[model.BranchID]router.Config, len(branches))
	for id, b := range branches {
		routerCfgByBranch[id] = buildRouterConfig(cfg.Planning, b, fallback)
	}
	routeInputs := buildRouteInputs(branches, freqOut, schedOuts, tables)
	routeOuts, err := pipeline.RouteAll(ctx, pool, routeInputs, func(in router.Input) router.Config {
		return routerCfgByBranch[in.Branch.ID]
	})
	if err != nil {
		return stages, fmt.Errorf("router: %w", err)
	}
	for _, out := range routeOuts {
		stages = append(stages, report.StageResult{Stage: "router", Report: out.Report})
	}

	centroids := buildCentroids(tables.PointMap)
	matcherCfg := matcher.Config{
		MaxDistanceM:        0,
		WeeklyBudgetSeconds: int(cfg.Planning.WeeklyBudgetHours * 3600),
		OneToOneMode:        cfg.Planning.OneToOneMode,
	}
	matchInputs := buildMatchInputs(routeOuts, centroids)
	matchOuts, err := pipeline.MatchAll(ctx, pool, matchInputs, withBranchDistanceCaps(matcherCfg, branches))
	if err != nil {
		return stages, fmt.Errorf("matcher: %w", err)
	}
	for _, out := range matchOuts {
		stages = append(stages, report.StageResult{Stage: "matcher", Report: out.Report})
	}

	results := buildResults(freqOut, schedOuts, routeOuts, matchOuts, branches)
	if err := writer.WriteResults(ctx, results); err != nil {
		return stages, fmt.Errorf("emit: %w", err)
	}

	return stages, nil
}

func runFrequency(tables ports.InputTables, planning config.PlanningConfig) frequency.Output {
	engine := frequency.New(frequency.Config{
		GlobalRepositionLevel: planning.GlobalRepositionLevel,
		Flexibility:           planning.Flexibility,
		StandardizeByPartner:  planning.StandardizeByPartner,
		SplitEnabled:          planning.SplitEnabled,
		RepasseGapSeconds:     int(planning.RepasseGapHours * 3600),
	})
	return engine.Derive(frequency.Input{
		Assets:      tables.Assets,
		Partners:    tables.Partners,
		SKULines:    tables.SKULines,
		Consumption: tables.Consumption,
	})
}

// buildRouterConfig derives the per-branch router.Config: scale-tier FTE
// fractions depend on the branch's own Tmax (spec.md §4.3 Step 6), and the
// travel-matrix fallback (spec.md §5) is shared across branches.
func buildRouterConfig(planning config.PlanningConfig, branch model.Branch, fallback ports.TravelMatrixSource) router.Config {
	return router.Config{
		RouteCostPenalty:           planning.RouteCostPenalty,
		WalkingMarginRatio:         planning.ModalityMargin,
		WalkingSpeedKmh:            planning.WalkingSpeedKmh,
		ZeroBaseDistanceForWalking: planning.BaseDistanceOnBaseArcsForWalking,
		ScaleTiers:                 planning.RouterTiers(branch.MaxTimeSeconds),
		Fallback:                   fallback,
	}
}

// appendRouteRows flattens one solved or recomputed route into its RouteBook
// and RouteSummary rows (spec.md §6 "Outputs"), the shared tail end of both
// a full run (buildResults) and a reroute (Reroute).
func appendRouteRows(results *ports.RunResults, r model.Route) {
	assetCount, partnerCount := 0, 0
	partners := make(map[model.PartnerID]struct{})
	for _, v := range r.Visits {
		assetCount += len(v.Group.Members)
		if _, ok := partners[v.Group.Partner]; !ok {
			partners[v.Group.Partner] = struct{}{}
			partnerCount++
		}
		for _, assetID := range v.Group.Members {
			results.RouteBook = append(results.RouteBook, model.RouteBookRow{
				Branch:       r.Branch,
				Weekday:      r.Weekday,
				RouteLabel:   r.Label,
				VisitOrdinal: v.Ordinal,
				Partner:      v.Group.Partner,
				Asset:        assetID,
				DistanceKm:   decimal.NewFromFloat(v.DistanceM / 1000),
				TravelMin:    decimal.NewFromFloat(float64(v.TravelSec) / 60),
				ServiceMin:   decimal.NewFromFloat(float64(v.ServiceSec) / 60),
				Modality:     r.Modality,
				Tier:         r.Tier.Name,
			})
		}
	}
	results.RouteSummaries = append(results.RouteSummaries, model.RouteSummaryRow{
		Branch:       r.Branch,
		Weekday:      r.Weekday,
		RouteLabel:   r.Label,
		Hours:        decimal.NewFromFloat(float64(r.TotalTimeSec) / 3600),
		FTE:          r.Tier.FTEFraction,
		AssetCount:   assetCount,
		PartnerCount: partnerCount,
		TotalDistKm:  decimal.NewFromFloat(r.TotalDistM / 1000),
		TotalTimeMin: decimal.NewFromFloat(float64(r.TotalTimeSec) / 60),
		Modality:     r.Modality,
		Tier:         r.Tier.Name,
	})
}

func buildBranches(planning config.PlanningConfig, partners []model.Partner) map[model.BranchID]model.Branch {
	out := make(map[model.BranchID]model.Branch)
	for _, p := range partners {
		if _, ok := out[p.Branch]; ok {
			continue
		}
		bc, ok := planning.BranchByName(string(p.Branch))
		if !ok {
			continue
		}
		out[p.Branch] = model.Branch{
			ID:             p.Branch,
			WeeklyDays:     bc.WeeklyDays,
			MaxTimeSeconds: bc.MaxTimeSeconds(),
			MaxDistanceM:   bc.MaxDistanceMeters(),
			TrafficFactor:  bc.TrafficFactor,
			AllowSaturday:  bc.AllowSaturday,
			SaturdayCapSec: bc.SaturdayCapSeconds(),
		}
	}
	return out
}

func withBranchDistanceCaps(cfg matcher.Config, branches map[model.BranchID]model.Branch) matcher.Config {
	maxDist := 0.0
	for _, b := range branches {
		if b.MaxDistanceM > maxDist {
			maxDist = b.MaxDistanceM
		}
	}
	cfg.MaxDistanceM = maxDist
	return cfg
}

func runSchedule(
	ctx context.Context,
	pool pipeline.Pool,
	branches map[model.BranchID]model.Branch,
	freqOut frequency.Output,
) (map[model.BranchID]scheduler.Output, error) {
	partnersByBranch := make(map[model.BranchID][]model.Partner)
	for _, p := range freqOut.Partners {
		partnersByBranch[p.Branch] = append(partnersByBranch[p.Branch], p)
	}
	partnerByID := make(map[model.PartnerID]model.Partner, len(freqOut.Partners))
	for _, p := range freqOut.Partners {
		partnerByID[p.ID] = p
	}

	assetsByBranch := make(map[model.BranchID][]model.Asset)
	for _, a := range freqOut.Assets {
		if p, ok := partnerByID[a.Partner]; ok {
			assetsByBranch[p.Branch] = append(assetsByBranch[p.Branch], a)
		}
	}

	var branchIDs []model.BranchID
	var inputs []scheduler.Input
	for branchID, branch := range branches {
		freqs := make(map[model.AssetID]int)
		for _, a := range assetsByBranch[branchID] {
			freqs[a.ID] = freqOut.Frequencies[a.ID].Final
		}
		branchIDs = append(branchIDs, branchID)
		inputs = append(inputs, scheduler.Input{
			Branch:      branch,
			Assets:      assetsByBranch[branchID],
			Frequencies: freqs,
			Partners:    partnersByBranch[branchID],
		})
	}

	outputs, err := pipeline.ScheduleAll(ctx, pool, inputs)
	if err != nil {
		return nil, err
	}

	out := make(map[model.BranchID]scheduler.Output, len(branchIDs))
	for i, id := range branchIDs {
		out[id] = outputs[i]
	}
	return out, nil
}

func buildRouteInputs(
	branches map[model.BranchID]model.Branch,
	freqOut frequency.Output,
	schedOuts map[model.BranchID]scheduler.Output,
	tables ports.InputTables,
) []router.Input {
	partnerByID := make(map[model.PartnerID]model.Partner, len(freqOut.Partners))
	for _, p := range freqOut.Partners {
		partnerByID[p.ID] = p
	}

	type key struct {
		branch     model.BranchID
		supervisor string
		weekday    int
	}
	visitsByKey := make(map[key][]router.AssetVisit)
	partnersByKey := make(map[key]map[model.PartnerID]model.Partner)

	for _, a := range freqOut.Assets {
		partner, ok := partnerByID[a.Partner]
		if !ok {
			continue
		}
		schedOut, ok := schedOuts[partner.Branch]
		if !ok {
			continue
		}
		pattern, ok := schedOut.Patterns[a.ID]
		if !ok {
			continue
		}
		freq := freqOut.Frequencies[a.ID].Final
		for _, day := range pattern.Weekdays {
			k := key{branch: partner.Branch, supervisor: partner.Supervisor, weekday: day}
			visitsByKey[k] = append(visitsByKey[k], router.AssetVisit{
				Asset:      a.ID,
				Partner:    a.Partner,
				ServiceSec: a.ServiceSec,
				Frequency:  freq,
			})
			if partnersByKey[k] == nil {
				partnersByKey[k] = make(map[model.PartnerID]model.Partner)
			}
			partnersByKey[k][partner.ID] = partner
		}
	}

	var inputs []router.Input
	for k, visits := range visitsByKey {
		travel := model.TravelMatrix{}
		if m, ok := tables.Travel[k.branch]; ok && m != nil {
			travel = *m
		}
		inputs = append(inputs, router.Input{
			Branch:     branches[k.branch],
			Supervisor: k.supervisor,
			Weekday:    k.weekday,
			Visits:     visits,
			Partners:   partnersByKey[k],
			Travel:     travel,
		})
	}
	return inputs
}

func buildCentroids(points []model.PointMapping) map[model.PointID]model.Centroid {
	out := make(map[model.PointID]model.Centroid, len(points))
	for _, p := range points {
		out[p.Point] = model.Centroid{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}

func routeCentroid(route model.Route, points map[model.PointID]model.Centroid) model.Centroid {
	var sumLat, sumLon float64
	n := 0
	for _, v := range route.Visits {
		if c, ok := points[v.Group.Point]; ok {
			sumLat += c.Lat
			sumLon += c.Lon
			n++
		}
	}
	if n == 0 {
		return model.Centroid{}
	}
	return model.Centroid{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}
}

func buildMatchInputs(
	routeOuts []router.Output,
	points map[model.PointID]model.Centroid,
) []matcher.Input {
	type key struct {
		branch     model.BranchID
		supervisor string
	}
	routesByKey := make(map[key][]model.Route)
	for _, out := range routeOuts {
		for _, r := range out.Routes {
			k := key{branch: r.Branch, supervisor: r.Supervisor}
			routesByKey[k] = append(routesByKey[k], r)
		}
	}

	inputs := make([]matcher.Input, 0, len(routesByKey))
	for k, routes := range routesByKey {
		centroids := make(map[uuid.UUID]model.Centroid, len(routes))
		for _, r := range routes {
			centroids[r.ID] = routeCentroid(r, points)
		}
		inputs = append(inputs, matcher.Input{
			Branch:     k.branch,
			Supervisor: k.supervisor,
			Routes:     routes,
			Centroids:  centroids,
		})
	}
	return inputs
}

// buildResults flattens the solved stages into the wire-contract output
// rows (spec.md §6 "Outputs").
func buildResults(
	freqOut frequency.Output,
	schedOuts map[model.BranchID]scheduler.Output,
	routeOuts []router.Output,
	matchOuts []matcher.Output,
	branches map[model.BranchID]model.Branch,
) ports.RunResults {
	var results ports.RunResults

	partnerByID := make(map[model.PartnerID]model.Partner, len(freqOut.Partners))
	for _, p := range freqOut.Partners {
		partnerByID[p.ID] = p
	}
	for _, a := range freqOut.Assets {
		fr := freqOut.Frequencies[a.ID]
		results.Frequencies = append(results.Frequencies, model.FrequencyRow{
			Branch:     partnerByID[a.Partner].Branch,
			Partner:    a.Partner,
			Asset:      a.ID,
			Current:    a.CurrentFrequency,
			Min:        a.MinFrequency,
			Reposition: fr.Reposition,
			Final:      fr.Final,
		})
	}

	assetPartner := make(map[model.AssetID]model.PartnerID, len(freqOut.Assets))
	for _, a := range freqOut.Assets {
		assetPartner[a.ID] = a.Partner
	}

	for branchID, out := range schedOuts {
		dw := branches[branchID].WeeklyDays
		for assetID, pattern := range out.Patterns {
			flags := make([]bool, dw)
			for _, d := range pattern.Weekdays {
				if d < dw {
					flags[d] = true
				}
			}
			results.Schedule = append(results.Schedule, model.ScheduleRow{
				Branch:   branchID,
				Partner:  assetPartner[assetID],
				Asset:    assetID,
				Weekdays: flags,
			})
		}
	}

	for _, out := range routeOuts {
		for _, r := range out.Routes {
			appendRouteRows(&results, r)
		}
	}

	for _, out := range matchOuts {
		for _, agent := range out.Agents {
			for day, r := range agent.Routes {
				results.AgentRoutes = append(results.AgentRoutes, model.AgentRouteRow{
					Branch:     agent.Branch,
					Agent:      agent.Label,
					Weekday:    day,
					RouteLabel: r.Label,
					Modality:   r.Modality,
					Tier:       r.Tier.Name,
					Hours:      decimal.NewFromFloat(float64(r.TotalTimeSec) / 3600),
				})
				dw := branches[agent.Branch].WeeklyDays
				for _, v := range r.Visits {
					flags := make([]bool, dw)
					if day < dw {
						flags[day] = true
					}
					for _, assetID := range v.Group.Members {
						results.AgentAssets = append(results.AgentAssets, model.AgentAssetRow{
							Agent:    agent.Label,
							Partner:  v.Group.Partner,
							Asset:    assetID,
							Weekdays: flags,
						})
					}
				}
			}
		}
	}

	return results
}
