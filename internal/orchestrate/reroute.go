package orchestrate

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tolga/fieldroute/internal/config"
	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/ports"
	"github.com/tolga/fieldroute/internal/report"
	"github.com/tolga/fieldroute/internal/router"
)

// routeKey identifies one route across a RouteBook sheet's rows.
type routeKey struct {
	Branch     model.BranchID
	Weekday    int
	RouteLabel string
}

// Reroute re-derives distances, travel times and scale tiers for a
// previously emitted route book without re-running the solver (SPEC_FULL.md
// "Supplemented features" #1, grounded on original_source/reroterizar.py's
// atualizar_rotas mode: an operator hand-edits stop order and wants the
// totals recomputed, not the groups re-solved from scratch).
//
// rows is a previous run's RouteBook sheet, read back via
// xlsx.Reader.ReadRouteBook. tables supplies the
// current partner and asset master data: service times and entry/window
// seconds are rebuilt fresh from it rather than reconstructed from the
// lossy decimal minutes the sheet stores, so repeated reroutes don't drift.
func Reroute(ctx context.Context, cfg *config.Config, tables ports.InputTables, rows []model.RouteBookRow, writer ports.ResultWriter) ([]report.StageResult, error) {
	branches := buildBranches(cfg.Planning, tables.Partners)

	partnerByID := make(map[model.PartnerID]model.Partner, len(tables.Partners))
	for _, p := range tables.Partners {
		partnerByID[p.ID] = p
	}
	assetByID := make(map[model.AssetID]model.Asset, len(tables.Assets))
	for _, a := range tables.Assets {
		assetByID[a.ID] = a
	}

	byRoute, keys := groupRouteBookRows(rows)

	var results ports.RunResults
	var stages []report.StageResult

	for n, key := range keys {
		branch, ok := branches[key.Branch]
		if !ok {
			return stages, fmt.Errorf("reroute %s: unknown branch %q", key.RouteLabel, key.Branch)
		}

		groups, err := buildGroupsFromRows(byRoute[key], key, partnerByID, assetByID)
		if err != nil {
			return stages, fmt.Errorf("reroute %s: %w", key.RouteLabel, err)
		}

		travel := tables.Travel[key.Branch]
		if travel == nil {
			travel = model.NewTravelMatrix(key.Branch)
		}
		in := router.Input{
			Branch:  branch,
			Weekday: key.Weekday,
			Travel:  *travel,
		}
		routerCfg := buildRouterConfig(cfg.Planning, branch, nil)

		stageReport := model.Report{Stage: "reroute"}
		route, ok := router.Recompute(in, groups, routerCfg, n)
		if !ok {
			weekday := key.Weekday
			stageReport.Add(model.Diagnostic{
				Code:    model.CodeGroupInfeasible,
				Message: "recomputed stop order is no longer feasible within the daily cap or opening windows",
				Branch:  key.Branch,
				Weekday: &weekday,
			})
			stages = append(stages, report.StageResult{Stage: "reroute:" + key.RouteLabel, Report: stageReport})
			continue
		}
		route.Label = key.RouteLabel

		appendRouteRows(&results, route)
		stages = append(stages, report.StageResult{Stage: "reroute:" + key.RouteLabel, Report: stageReport})
	}

	if err := writer.WriteResults(ctx, results); err != nil {
		return stages, fmt.Errorf("emit: %w", err)
	}
	return stages, nil
}

// groupRouteBookRows partitions RouteBook rows by the route they belong to
// and returns a deterministic (Branch, Weekday, RouteLabel) visiting order,
// so reroute output is stable across runs on the same input.
func groupRouteBookRows(rows []model.RouteBookRow) (map[routeKey][]model.RouteBookRow, []routeKey) {
	byRoute := make(map[routeKey][]model.RouteBookRow)
	for _, row := range rows {
		k := routeKey{Branch: row.Branch, Weekday: row.Weekday, RouteLabel: row.RouteLabel}
		byRoute[k] = append(byRoute[k], row)
	}

	keys := make([]routeKey, 0, len(byRoute))
	for k, rs := range byRoute {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].VisitOrdinal < rs[j].VisitOrdinal })
		byRoute[k] = rs
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Branch != keys[j].Branch {
			return keys[i].Branch < keys[j].Branch
		}
		if keys[i].Weekday != keys[j].Weekday {
			return keys[i].Weekday < keys[j].Weekday
		}
		return keys[i].RouteLabel < keys[j].RouteLabel
	})
	return byRoute, keys
}

// buildGroupsFromRows reconstructs one route's ordered model.Group sequence
// from its RouteBook rows, regrouping consecutive rows sharing a
// VisitOrdinal (one row per member asset) back into a single group and
// recomputing ServiceSec from the current assets table rather than the
// decimal-rounded ServiceMin column.
func buildGroupsFromRows(rows []model.RouteBookRow, key routeKey, partnerByID map[model.PartnerID]model.Partner, assetByID map[model.AssetID]model.Asset) ([]model.Group, error) {
	var groups []model.Group
	var cur *model.Group
	curOrdinal := -1

	for _, row := range rows {
		asset, ok := assetByID[row.Asset]
		if !ok {
			return nil, fmt.Errorf("unknown asset %q", row.Asset)
		}
		if row.VisitOrdinal != curOrdinal {
			partner, ok := partnerByID[row.Partner]
			if !ok {
				return nil, fmt.Errorf("unknown partner %q", row.Partner)
			}
			groups = append(groups, model.Group{
				ID:       uuid.New(),
				Label:    fmt.Sprintf("%sG%d", key.RouteLabel, row.VisitOrdinal),
				Branch:   key.Branch,
				Weekday:  key.Weekday,
				Partner:  row.Partner,
				Point:    partner.Point,
				EntrySec: partner.EntrySec,
				OpenSec:  partner.OpenSec,
				CloseSec: partner.CloseSec,
			})
			cur = &groups[len(groups)-1]
			curOrdinal = row.VisitOrdinal
		}
		cur.Members = append(cur.Members, row.Asset)
		cur.ServiceSec += asset.ServiceSec
	}
	return groups, nil
}
