// Package xlsx implements ports.TableReader and ports.ResultWriter over
// .xlsx workbooks, the wire format original_source/reroterizar.py and
// get_report.py actually read and write. Sheet/column names follow the
// wire contract named in spec.md §6.
package xlsx

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/ports"
	"github.com/tolga/fieldroute/internal/timeutil"
)

// Reader ingests InputTables from a single workbook with one sheet per
// input table (spec.md §6 "Inputs").
type Reader struct {
	Path          string
	TrafficFactor map[model.BranchID]float64 // α, applied once at ingest (SPEC_FULL.md "Traffic inflation applied once, at ingest")
}

var _ ports.TableReader = Reader{}

// rowReader walks non-header rows of a sheet, looking up columns by name
// so column order in the workbook doesn't matter.
type rowReader struct {
	header map[string]int
	row    []string
}

func (r rowReader) col(name string) string {
	idx, ok := r.header[name]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return r.row[idx]
}

func (r rowReader) float(name string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(r.col(name)), 64)
	return v
}

func (r rowReader) int(name string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(r.col(name)))
	return v
}

func readSheet(f *excelize.File, sheet string) ([]rowReader, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}
	out := make([]rowReader, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, rowReader{header: header, row: row})
	}
	return out, nil
}

// ReadTables implements ports.TableReader by reading the Partners, Assets,
// SKULines, Consumption, PointMap and TravelMatrix sheets of the workbook
// at r.Path.
func (r Reader) ReadTables(_ context.Context) (ports.InputTables, error) {
	f, err := excelize.OpenFile(r.Path)
	if err != nil {
		return ports.InputTables{}, fmt.Errorf("opening workbook %q: %w", r.Path, err)
	}
	defer f.Close()

	partners, err := r.readPartners(f)
	if err != nil {
		return ports.InputTables{}, err
	}
	assets, err := r.readAssets(f)
	if err != nil {
		return ports.InputTables{}, err
	}
	skus, err := r.readSKULines(f)
	if err != nil {
		return ports.InputTables{}, err
	}
	consumption, err := r.readConsumption(f)
	if err != nil {
		return ports.InputTables{}, err
	}
	points, err := r.readPointMap(f)
	if err != nil {
		return ports.InputTables{}, err
	}
	travel, err := r.readTravelMatrix(f)
	if err != nil {
		return ports.InputTables{}, err
	}

	joinPointIDs(partners, points)

	return ports.InputTables{
		Partners:    partners,
		Assets:      assets,
		SKULines:    skus,
		Consumption: consumption,
		PointMap:    points,
		Travel:      travel,
	}, nil
}

func (r Reader) readPartners(f *excelize.File) ([]model.Partner, error) {
	rows, err := readSheet(f, "Partners")
	if err != nil {
		return nil, err
	}
	out := make([]model.Partner, 0, len(rows))
	for _, row := range rows {
		openSec, err := timeutil.ParseClock(row.col("open_time"))
		if err != nil {
			return nil, fmt.Errorf("partner %q: %w", row.col("partner"), err)
		}
		closeSec, err := timeutil.ParseClock(row.col("close_time"))
		if err != nil {
			return nil, fmt.Errorf("partner %q: %w", row.col("partner"), err)
		}
		normOpen, normClose := timeutil.NormalizeWindow(openSec, closeSec)

		var fixedDay *int
		if wd := strings.TrimSpace(row.col("fixed_weekday")); wd != "" {
			if idx, ok := weekdayIndex(wd); ok {
				fixedDay = &idx
			}
		}

		out = append(out, model.Partner{
			ID:         model.NewPartnerID(row.col("partner")),
			Branch:     model.BranchID(row.col("branch")),
			OpenSec:    normOpen,
			CloseSec:   normClose,
			EntrySec:   row.int("entry_time_min") * 60,
			FixedDay:   fixedDay,
			Supervisor: row.col("supervisor"),
		})
	}
	return out, nil
}

func (r Reader) readAssets(f *excelize.File) ([]model.Asset, error) {
	rows, err := readSheet(f, "Assets")
	if err != nil {
		return nil, err
	}
	out := make([]model.Asset, 0, len(rows))
	for _, row := range rows {
		splitFlag := strings.ToUpper(strings.TrimSpace(row.col("split_eligible")))
		if splitFlag != "S" && splitFlag != "N" {
			return nil, fmt.Errorf("asset %q: invalid split_eligible flag %q", row.col("asset"), splitFlag)
		}
		out = append(out, model.Asset{
			ID:               model.NewAssetID(row.col("asset")),
			Partner:          model.NewPartnerID(row.col("partner")),
			ServiceSec:       row.int("service_time_min") * 60,
			DaysPerWeek:      row.int("days_per_week"),
			MinFrequency:     row.int("min_frequency"),
			CurrentFrequency: row.int("current_frequency"),
			SplitEligible:    model.SplitEligible(splitFlag == "S"),
			AllowSaturday:    row.int("days_per_week") >= 6,
		})
	}
	return out, nil
}

func (r Reader) readSKULines(f *excelize.File) ([]model.SKULine, error) {
	rows, err := readSheet(f, "SKULines")
	if err != nil {
		return nil, err
	}
	out := make([]model.SKULine, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.SKULine{
			Asset:           model.NewAssetID(row.col("asset")),
			SKU:             model.SKU(row.col("sku")),
			CapacityUnits:   row.float("capacity"),
			RepositionLevel: row.float("reposition_level"),
		})
	}
	return out, nil
}

func (r Reader) readConsumption(f *excelize.File) ([]model.ConsumptionRecord, error) {
	rows, err := readSheet(f, "Consumption")
	if err != nil {
		return nil, err
	}
	out := make([]model.ConsumptionRecord, 0, len(rows))
	for _, row := range rows {
		start, err := parseDate(row.col("start_date"))
		if err != nil {
			return nil, err
		}
		end, err := parseDate(row.col("end_date"))
		if err != nil {
			return nil, err
		}
		out = append(out, model.ConsumptionRecord{
			Branch:   model.BranchID(row.col("branch")),
			Partner:  model.NewPartnerID(row.col("partner")),
			Asset:    model.NewAssetID(row.col("asset")),
			SKU:      model.SKU(row.col("sku")),
			Start:    start,
			End:      end,
			Consumed: row.float("consumed"),
		})
	}
	return out, nil
}

func (r Reader) readPointMap(f *excelize.File) ([]model.PointMapping, error) {
	rows, err := readSheet(f, "PointMap")
	if err != nil {
		return nil, err
	}
	out := make([]model.PointMapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.PointMapping{
			Branch:  model.BranchID(row.col("branch")),
			Partner: model.NewPartnerID(row.col("partner")),
			Point:   model.PointID(row.col("point_id")),
			Lat:     row.float("lat"),
			Lon:     row.float("lon"),
		})
	}
	return out, nil
}

// ReadRouteBook reads back a RouteBook sheet previously written by Writer,
// the wire shape Reroute needs to regroup into model.Group sequences.
func (r Reader) ReadRouteBook(_ context.Context) ([]model.RouteBookRow, error) {
	f, err := excelize.OpenFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %q: %w", r.Path, err)
	}
	defer f.Close()

	rows, err := readSheet(f, "RouteBook")
	if err != nil {
		return nil, err
	}
	out := make([]model.RouteBookRow, 0, len(rows))
	for _, row := range rows {
		distKm, err := decimal.NewFromString(strings.TrimSpace(row.col("distance_km")))
		if err != nil {
			return nil, fmt.Errorf("route book row for %q: %w", row.col("partner"), err)
		}
		travelMin, err := decimal.NewFromString(strings.TrimSpace(row.col("travel_min")))
		if err != nil {
			return nil, fmt.Errorf("route book row for %q: %w", row.col("partner"), err)
		}
		serviceMin, err := decimal.NewFromString(strings.TrimSpace(row.col("service_min")))
		if err != nil {
			return nil, fmt.Errorf("route book row for %q: %w", row.col("partner"), err)
		}
		out = append(out, model.RouteBookRow{
			Branch:       model.BranchID(row.col("branch")),
			Weekday:      row.int("day"),
			RouteLabel:   row.col("route"),
			VisitOrdinal: row.int("visit_ordinal"),
			Partner:      model.NewPartnerID(row.col("partner")),
			Asset:        model.NewAssetID(row.col("asset")),
			DistanceKm:   distKm,
			TravelMin:    travelMin,
			ServiceMin:   serviceMin,
			Modality:     model.Modality(row.col("modality")),
			Tier:         row.col("scale"),
		})
	}
	return out, nil
}

func (r Reader) readTravelMatrix(f *excelize.File) (map[model.BranchID]*model.TravelMatrix, error) {
	rows, err := readSheet(f, "TravelMatrix")
	if err != nil {
		return nil, err
	}
	out := make(map[model.BranchID]*model.TravelMatrix)
	for _, row := range rows {
		branch := model.BranchID(row.col("branch"))
		m, ok := out[branch]
		if !ok {
			m = model.NewTravelMatrix(branch)
			out[branch] = m
		}
		alpha := r.TrafficFactor[branch]
		if alpha <= 0 {
			alpha = 1
		}
		m.Set(model.PointID(row.col("point_i")), model.PointID(row.col("point_j")), model.TravelLeg{
			DistanceM:   row.float("distance_m"),
			DurationSec: int(float64(row.int("duration_s")) * alpha),
		})
	}
	return out, nil
}

// joinPointIDs resolves each partner's canonical point-id from the
// (read-only) point-id mapping fixture, mutating partners in place
// (spec.md §3 "canonical point-id pt(p)").
func joinPointIDs(partners []model.Partner, points []model.PointMapping) {
	byPartner := make(map[model.PartnerID]model.PointID, len(points))
	for _, pm := range points {
		byPartner[pm.Partner] = pm.Point
	}
	for i := range partners {
		if pt, ok := byPartner[partners[i].ID]; ok {
			partners[i].Point = pt
		}
	}
}

func weekdayIndex(name string) (int, bool) {
	names := map[string]int{
		"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5,
		"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3, "friday": 4, "saturday": 5,
	}
	idx, ok := names[strings.ToLower(strings.TrimSpace(name))]
	return idx, ok
}

// parseDate returns s (a "YYYY-MM-DD" date) as a day count since the Unix
// epoch, so that subtracting two parsed dates yields a day span
// (frequency.aggregateConsumption's "days := rec.End - rec.Start").
func parseDate(s string) (int64, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("unparseable date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t.Unix() / 86400, nil
}
