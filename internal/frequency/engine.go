package frequency

import (
	"math"

	"github.com/tolga/fieldroute/internal/model"
)

// Engine derives final visit frequencies per asset (spec.md §4.1).
type Engine struct {
	Config Config
}

// New builds an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{Config: cfg}
}

// Derive runs the full eight-step algorithm and returns final frequencies
// plus the (possibly split) asset/partner population.
func (e *Engine) Derive(in Input) Output {
	report := model.Report{Stage: "frequency"}

	consumption := aggregateConsumption(in.Consumption)

	linesByAsset := make(map[model.AssetID][]model.SKULine)
	for _, l := range in.SKULines {
		linesByAsset[l.Asset] = append(linesByAsset[l.Asset], l)
	}

	// Steps 2-3: per-line consumption frequency, collapsed to fc_a = max_k fc_ak.
	fcByAsset := make(map[model.AssetID]int, len(in.Assets))
	for _, asset := range in.Assets {
		fc := 0
		for _, line := range linesByAsset[asset.ID] {
			rho := line.RepositionLevel
			if e.Config.GlobalRepositionLevel != nil {
				rho = *e.Config.GlobalRepositionLevel
			}
			denom := line.CapacityUnits * (1 - rho)
			if denom <= 0 {
				report.Add(model.Diagnostic{
					Code:    model.CodeMissingCapacity,
					Message: "sku line has non-positive effective capacity, row dropped",
					Asset:   asset.ID.Code(),
				})
				continue
			}
			w := weeklyRate(consumption, consumptionKey{Asset: asset.ID, SKU: line.SKU})
			lineFc := ceilInt(w / denom)
			if lineFc > fc {
				fc = lineFc
			}
		}
		fcByAsset[asset.ID] = fc
	}

	// Steps 4-6: reposition frequency, flexibility, final frequency.
	freqs := make(map[model.AssetID]AssetFrequency, len(in.Assets))
	for _, asset := range in.Assets {
		fc := fcByAsset[asset.ID]
		fr := minInt(fc, asset.DaysPerWeek, asset.CurrentFrequency)

		fminAdj := asset.MinFrequency
		if e.Config.Flexibility != nil {
			fminAdj = maxInt(asset.MinFrequency, asset.CurrentFrequency-*e.Config.Flexibility)
		}

		final := maxInt(fminAdj, fr)
		if final > asset.DaysPerWeek {
			final = asset.DaysPerWeek
		}

		freqs[asset.ID] = AssetFrequency{
			Asset:       asset.ID,
			Consumption: fc,
			Reposition:  fr,
			MinAdjusted: fminAdj,
			Final:       final,
		}
	}

	// Step 7: intra-partner standardization.
	if e.Config.StandardizeByPartner {
		partnerMax := make(map[model.PartnerID]int)
		for _, asset := range in.Assets {
			f := freqs[asset.ID].Final
			if f > partnerMax[asset.Partner] {
				partnerMax[asset.Partner] = f
			}
		}
		for _, asset := range in.Assets {
			af := freqs[asset.ID]
			af.Final = partnerMax[asset.Partner]
			freqs[asset.ID] = af
		}
	}

	outAssets := in.Assets
	outPartners := in.Partners
	outFreqs := freqs

	// Step 8: A/B repasse split.
	if e.Config.SplitEnabled {
		outAssets, outPartners, outFreqs = e.split(in, fcByAsset, freqs, &report)
	}

	return Output{
		Frequencies: outFreqs,
		Assets:      outAssets,
		Partners:    outPartners,
		Report:      report,
	}
}

func ceilInt(v float64) int {
	return int(math.Ceil(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(vs ...int) int {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
