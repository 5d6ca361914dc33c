package model

import "github.com/shopspring/decimal"

// PointMapping is a row of the point-id canonicalization fixture (spec.md
// §3 "canonical point-id", §6 Inputs "Point-id mapping"): read-only, used
// to resolve a partner to its deduplicated coordinate key.
type PointMapping struct {
	Branch  BranchID
	Partner PartnerID
	Point   PointID
	Lat     float64
	Lon     float64
}

// FrequencyRow is one line of the S1 output table (spec.md §6 "Outputs:
// Frequencies").
type FrequencyRow struct {
	Branch      BranchID
	Partner     PartnerID
	Asset       AssetID
	Current     int
	Min         int
	Reposition  int
	Final       int
}

// ScheduleRow is one asset's weekday assignment (spec.md §6 "Outputs:
// Schedule"). Weekdays holds one flag per weekday index, sized Dw.
type ScheduleRow struct {
	Branch   BranchID
	Partner  PartnerID
	Asset    AssetID
	Weekdays []bool
}

// RouteBookRow is one ordered stop in a day's route book (spec.md §6
// "Outputs: Route book"). Distances/durations use decimal.Decimal so
// repeated aggregation downstream doesn't drift (matching
// impactj90-terp/internal/calculation/travel_allowance.go's DistanceKm).
type RouteBookRow struct {
	Branch       BranchID
	Weekday      int
	RouteLabel   string
	VisitOrdinal int
	Partner      PartnerID
	Asset        AssetID
	DistanceKm   decimal.Decimal
	TravelMin    decimal.Decimal
	ServiceMin   decimal.Decimal
	Modality     Modality
	Tier         string
}

// RouteSummaryRow is the per-route rollup (spec.md §6 "Outputs: Route
// summary").
type RouteSummaryRow struct {
	Branch        BranchID
	Weekday       int
	RouteLabel    string
	Hours         decimal.Decimal
	FTE           float64
	AssetCount    int
	PartnerCount  int
	TotalDistKm   decimal.Decimal
	TotalTimeMin  decimal.Decimal
	Modality      Modality
	Tier          string
}

// AgentRouteRow is one line of the weekly agent->route allocation (spec.md
// §6 "Outputs: Agent allocation (routes)").
type AgentRouteRow struct {
	Branch     BranchID
	Agent      string
	Weekday    int
	RouteLabel string
	Modality   Modality
	Tier       string
	Hours      decimal.Decimal
}

// AgentAssetRow is one line of the weekly agent->asset allocation (spec.md
// §6 "Outputs: Agent allocation (assets)").
type AgentAssetRow struct {
	Agent    string
	Partner  PartnerID
	Asset    AssetID
	Weekdays []bool
}
