// Package ports declares the boundary interfaces between the core planning
// pipeline and the out-of-scope collaborators named in spec.md §1/§2:
// tabular I/O and the external travel-matrix API. Each interface is kept
// small and named after what the consumer needs, the way impactj90-terp's
// service package defines private per-consumer repository interfaces
// (apps/api/internal/service/report.go) rather than one wide repository.
package ports

import (
	"context"

	"github.com/tolga/fieldroute/internal/model"
)

// InputTables is everything a run needs to ingest before S1 can start
// (spec.md §6 "Inputs"). A concrete adapter (internal/adapters/xlsx) reads
// these from whatever wire format partners deliver them in.
type InputTables struct {
	Partners    []model.Partner
	Assets      []model.Asset
	SKULines    []model.SKULine
	Consumption []model.ConsumptionRecord
	PointMap    []model.PointMapping
	Travel      map[model.BranchID]*model.TravelMatrix // keyed by branch, one matrix per modality is the caller's concern
}

// TableReader ingests the full set of input tables for one run.
type TableReader interface {
	ReadTables(ctx context.Context) (InputTables, error)
}

// RunResults is everything S1-S4 produced, ready for emission (spec.md §6
// "Outputs").
type RunResults struct {
	Frequencies    []model.FrequencyRow
	Schedule       []model.ScheduleRow
	RouteBook      []model.RouteBookRow
	RouteSummaries []model.RouteSummaryRow
	AgentRoutes    []model.AgentRouteRow
	AgentAssets    []model.AgentAssetRow
}

// ResultWriter emits a run's results to durable storage (a workbook, a set
// of CSVs, ...). The core never depends on the concrete format.
type ResultWriter interface {
	WriteResults(ctx context.Context, results RunResults) error
}

// TravelMatrixSource looks up a single travel leg on demand, the interface
// the (out-of-scope) external travel-matrix API client implements. The
// core only calls this when a precomputed matrix is missing a pair it
// needs; spec.md §5 requires callers to rate-limit to >= 1.6s between calls
// per key, which is the adapter's concern, not the core's.
type TravelMatrixSource interface {
	Lookup(ctx context.Context, branch model.BranchID, i, j model.PointID) (model.TravelLeg, error)
}
