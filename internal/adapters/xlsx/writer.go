package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/ports"
)

// Writer emits ports.RunResults to one sheet per output table (spec.md §6
// "Outputs"), matching the workbook shape get_report.py produces.
type Writer struct {
	Path string
}

var _ ports.ResultWriter = Writer{}

// WriteResults implements ports.ResultWriter.
func (w Writer) WriteResults(_ context.Context, results ports.RunResults) error {
	f := excelize.NewFile()
	defer f.Close()

	writeFrequencies(f, results.Frequencies)
	writeSchedule(f, results.Schedule)
	writeRouteBook(f, results.RouteBook)
	writeRouteSummary(f, results.RouteSummaries)
	writeAgentRoutes(f, results.AgentRoutes)
	writeAgentAssets(f, results.AgentAssets)

	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(w.Path); err != nil {
		return fmt.Errorf("writing workbook %q: %w", w.Path, err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, cols []string) {
	f.NewSheet(sheet)
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}
}

func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func writeFrequencies(f *excelize.File, rows []model.FrequencyRow) {
	writeHeader(f, "Frequencies", []string{"branch", "partner", "asset", "current", "min", "reposition", "final"})
	for i, r := range rows {
		setRow(f, "Frequencies", i+2, string(r.Branch), r.Partner.Code(), r.Asset.Code(), r.Current, r.Min, r.Reposition, r.Final)
	}
}

func writeSchedule(f *excelize.File, rows []model.ScheduleRow) {
	cols := []string{"branch", "partner", "asset"}
	maxDays := 0
	for _, r := range rows {
		if len(r.Weekdays) > maxDays {
			maxDays = len(r.Weekdays)
		}
	}
	for d := 0; d < maxDays; d++ {
		cols = append(cols, fmt.Sprintf("day_%d", d))
	}
	writeHeader(f, "Schedule", cols)
	for i, r := range rows {
		values := []any{string(r.Branch), r.Partner.Code(), r.Asset.Code()}
		for _, flag := range r.Weekdays {
			values = append(values, flag)
		}
		setRow(f, "Schedule", i+2, values...)
	}
}

func writeRouteBook(f *excelize.File, rows []model.RouteBookRow) {
	writeHeader(f, "RouteBook", []string{
		"branch", "day", "route", "visit_ordinal", "partner", "asset",
		"distance_km", "travel_min", "service_min", "modality", "scale",
	})
	for i, r := range rows {
		distKm, _ := r.DistanceKm.Float64()
		travelMin, _ := r.TravelMin.Float64()
		serviceMin, _ := r.ServiceMin.Float64()
		setRow(f, "RouteBook", i+2,
			string(r.Branch), r.Weekday, r.RouteLabel, r.VisitOrdinal,
			r.Partner.Code(), r.Asset.Code(), distKm, travelMin, serviceMin,
			string(r.Modality), r.Tier,
		)
	}
}

func writeRouteSummary(f *excelize.File, rows []model.RouteSummaryRow) {
	writeHeader(f, "RouteSummary", []string{
		"branch", "day", "route", "hours", "fte", "assets", "partners",
		"total_distance_km", "total_time_min", "modality", "scale",
	})
	for i, r := range rows {
		hours, _ := r.Hours.Float64()
		dist, _ := r.TotalDistKm.Float64()
		timeMin, _ := r.TotalTimeMin.Float64()
		setRow(f, "RouteSummary", i+2,
			string(r.Branch), r.Weekday, r.RouteLabel, hours, r.FTE,
			r.AssetCount, r.PartnerCount, dist, timeMin, string(r.Modality), r.Tier,
		)
	}
}

func writeAgentRoutes(f *excelize.File, rows []model.AgentRouteRow) {
	writeHeader(f, "AgentRoutes", []string{"branch", "agent", "weekday", "route", "modality", "scale", "hours"})
	for i, r := range rows {
		hours, _ := r.Hours.Float64()
		setRow(f, "AgentRoutes", i+2, string(r.Branch), r.Agent, r.Weekday, r.RouteLabel, string(r.Modality), r.Tier, hours)
	}
}

func writeAgentAssets(f *excelize.File, rows []model.AgentAssetRow) {
	cols := []string{"agent", "partner", "asset"}
	maxDays := 0
	for _, r := range rows {
		if len(r.Weekdays) > maxDays {
			maxDays = len(r.Weekdays)
		}
	}
	for d := 0; d < maxDays; d++ {
		cols = append(cols, fmt.Sprintf("day_%d", d))
	}
	writeHeader(f, "AgentAssets", cols)
	for i, r := range rows {
		values := []any{r.Agent, r.Partner.Code(), r.Asset.Code()}
		for _, flag := range r.Weekdays {
			values = append(values, flag)
		}
		setRow(f, "AgentAssets", i+2, values...)
	}
}

