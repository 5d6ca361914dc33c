package frequency

import "github.com/tolga/fieldroute/internal/model"

// splitWindows holds the two partner halves produced by splitPartnerWindows.
type splitWindows struct {
	a, b model.Partner
}

// split implements spec.md §4.1 step 8: for every split-eligible asset whose
// consumption-based frequency exceeds 1.5x its calendar days, replace it with
// two halves and partition its partner's opening window between them.
//
// Assumption (undocumented by the spec): a partner is split at most once even
// if several of its assets trigger the condition, and a partner with at
// least one non-splitting asset keeps its original window alongside the
// generated halves so that asset's schedule stays valid.
func (e *Engine) split(
	in Input,
	fcByAsset map[model.AssetID]int,
	freqs map[model.AssetID]AssetFrequency,
	report *model.Report,
) ([]model.Asset, []model.Partner, map[model.AssetID]AssetFrequency) {
	partnerByID := make(map[model.PartnerID]model.Partner, len(in.Partners))
	for _, p := range in.Partners {
		partnerByID[p.ID] = p
	}

	generated := make(map[model.PartnerID]splitWindows)
	referencedOriginal := make(map[model.PartnerID]bool)

	outFreqs := make(map[model.AssetID]AssetFrequency, len(freqs))
	var outAssets []model.Asset

	for _, asset := range in.Assets {
		fc := fcByAsset[asset.ID]
		if asset.SplitEligible != model.SplitEligibleYes || float64(fc) <= 1.5*float64(asset.DaysPerWeek) {
			outAssets = append(outAssets, asset)
			outFreqs[asset.ID] = freqs[asset.ID]
			referencedOriginal[asset.Partner] = true
			continue
		}

		sw, ok := generated[asset.Partner]
		if !ok {
			parent, found := partnerByID[asset.Partner]
			if !found {
				// Nothing to split against; keep the asset whole rather
				// than invent a window.
				outAssets = append(outAssets, asset)
				outFreqs[asset.ID] = freqs[asset.ID]
				referencedOriginal[asset.Partner] = true
				continue
			}
			sw = e.splitPartnerWindows(parent, report)
			generated[asset.Partner] = sw
		}

		dpw := asset.DaysPerWeek
		fA := dpw
		fB := fc - dpw
		if fB < 0 {
			fB = 0
		}
		fminHalf := ceilInt(float64(asset.MinFrequency) / 2.0)

		idA := model.SplitAssetID(asset.ID, model.HalfA)
		idB := model.SplitAssetID(asset.ID, model.HalfB)

		assetA := asset
		assetA.ID = idA
		assetA.Partner = sw.a.ID
		assetA.MinFrequency = fminHalf
		assetA.CurrentFrequency = fA
		assetA.SplitEligible = model.SplitEligibleNo

		assetB := asset
		assetB.ID = idB
		assetB.Partner = sw.b.ID
		assetB.MinFrequency = fminHalf
		assetB.CurrentFrequency = fB
		assetB.SplitEligible = model.SplitEligibleNo

		outAssets = append(outAssets, assetA, assetB)
		outFreqs[idA] = AssetFrequency{Asset: idA, Consumption: fc, Reposition: fA, MinAdjusted: fminHalf, Final: fA}
		outFreqs[idB] = AssetFrequency{Asset: idB, Consumption: fc, Reposition: fB, MinAdjusted: fminHalf, Final: fB}
	}

	var outPartners []model.Partner
	seen := make(map[model.PartnerID]bool)
	for _, p := range in.Partners {
		if referencedOriginal[p.ID] && !seen[p.ID] {
			outPartners = append(outPartners, p)
			seen[p.ID] = true
		}
	}
	for _, sw := range generated {
		outPartners = append(outPartners, sw.a, sw.b)
	}

	return outAssets, outPartners, outFreqs
}

// splitPartnerWindows partitions parent's opening window into two halves
// separated by a gap, following the worked example in spec.md §8 Scenario C
// (10h window, 3h gap ⇒ A=[0,3.5h], B=[6.5h,10h]): with D=close−open and
// G=min(G_req, D−60s), midpoint M=open+(D−G)/2, the halves are [open, M] and
// [M+G, close] — both of length (D−G)/2.
func (e *Engine) splitPartnerWindows(parent model.Partner, report *model.Report) splitWindows {
	d := parent.Duration()
	g := e.Config.RepasseGapSeconds
	if d-60 < g {
		g = d - 60
	}
	if d <= g+60 {
		report.Add(model.Diagnostic{
			Code:    model.CodeSplitWindowNarrow,
			Message: "partner window too narrow for requested repasse gap, gap reduced",
			Branch:  parent.Branch,
			Partner: parent.ID.Code(),
		})
		if g < 0 {
			g = 0
		}
	}
	m := parent.OpenSec + (d-g)/2

	a := parent
	a.ID = model.SplitPartnerID(parent.ID, model.HalfA)
	a.OpenSec = parent.OpenSec
	a.CloseSec = m

	b := parent
	b.ID = model.SplitPartnerID(parent.ID, model.HalfB)
	b.OpenSec = m + g
	b.CloseSec = parent.CloseSec

	return splitWindows{a: a, b: b}
}
