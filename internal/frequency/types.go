package frequency

import "github.com/tolga/fieldroute/internal/model"

// Config tunes the optional knobs of the frequency derivation (spec.md
// §4.1 steps 2, 5, 7, 8).
type Config struct {
	// GlobalRepositionLevel, when set, overrides every SKU line's ρ_ak
	// uniformly (step 2 mode (b)). Nil keeps per-line ρ_ak.
	GlobalRepositionLevel *float64

	// Flexibility, when set, is the "flex" term in fmin'_a = max(fmin_a,
	// fcur_a − flex) (step 5). Nil skips the relaxation.
	Flexibility *int

	// StandardizeByPartner, when true, overwrites each asset's final
	// frequency with the max across its partner's assets (step 7).
	StandardizeByPartner bool

	// SplitEnabled gates step 8 (A/B repasse splitting) entirely.
	SplitEnabled bool

	// RepasseGapSeconds is G_req, the requested gap between the two
	// windows produced by a split (step 8).
	RepasseGapSeconds int
}

// Input is everything the engine needs from ingest.
type Input struct {
	Assets      []model.Asset
	Partners    []model.Partner
	SKULines    []model.SKULine
	Consumption []model.ConsumptionRecord
}

// AssetFrequency is the per-asset derivation trail: keeping the
// intermediate values (not just the final one) makes the engine's output
// auditable, the same way the teacher's calculation package surfaces
// intermediate shift/break totals alongside the final payable amount.
type AssetFrequency struct {
	Asset        model.AssetID
	Consumption  int // fc_a
	Reposition   int // fr_a
	MinAdjusted  int // fmin'_a
	Final        int // f_a
}

// Output is the engine's result: final frequencies plus the rewritten
// asset/partner population after any A/B splitting.
type Output struct {
	Frequencies map[model.AssetID]AssetFrequency
	Assets      []model.Asset
	Partners    []model.Partner
	Report      model.Report
}

type consumptionKey struct {
	Asset model.AssetID
	SKU   model.SKU
}
