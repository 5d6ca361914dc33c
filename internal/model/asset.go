package model

// SplitEligible marks whether an asset may be decomposed into an A/B
// repasse pair during frequency derivation (spec.md §4.1 Step 8).
type SplitEligible bool

const (
	SplitEligibleYes SplitEligible = true
	SplitEligibleNo  SplitEligible = false
)

// Asset is a machine requiring periodic servicing at a Partner (spec.md §3).
type Asset struct {
	ID              AssetID
	Partner         PartnerID
	ServiceSec      int // s_a
	DaysPerWeek     int // dpw_a ∈ {5,6}
	MinFrequency    int // fmin_a
	CurrentFrequency int // fcur_a
	SplitEligible   SplitEligible
	AllowSaturday   bool
}

// SKULine is a single consumable stocked at an asset (spec.md §3).
type SKULine struct {
	Asset          AssetID
	SKU            SKU
	CapacityUnits  float64 // cap_ak
	RepositionLevel float64 // ρ_ak ∈ [0,1)
}

// ConsumptionRecord is one aggregation period of measured consumption for a
// (branch, partner, asset, sku) tuple.
type ConsumptionRecord struct {
	Branch   BranchID
	Partner  PartnerID
	Asset    AssetID
	SKU      SKU
	Start    int64 // unix day
	End      int64 // unix day
	Consumed float64
}
