package frequency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/frequency"
	"github.com/tolga/fieldroute/internal/model"
)

// TestDerive_Split reproduces spec.md §8 Scenario C: fc_a=12, dpw_a=5,
// split-eligible ⇒ halves with f=5 and f=7, partner window [0,10h] split
// into [0,3.5h] and [6.5h,10h] with a 3h gap.
func TestDerive_Split(t *testing.T) {
	a1 := asset("A1", "P1", 5, 2, 5, true)
	in := frequency.Input{
		Assets: []model.Asset{a1},
		Partners: []model.Partner{
			{ID: model.NewPartnerID("P1"), Branch: "B1", OpenSec: 0, CloseSec: 36000},
		},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0},
		},
		Consumption: []model.ConsumptionRecord{
			{Asset: model.NewAssetID("A1"), SKU: "cups", Start: 0, End: 7, Consumed: 1150},
		},
	}

	out := frequency.New(frequency.Config{
		SplitEnabled:      true,
		RepasseGapSeconds: 10800,
	}).Derive(in)

	require.Len(t, out.Assets, 2)
	require.Len(t, out.Partners, 2)

	idA := model.SplitAssetID(model.NewAssetID("A1"), model.HalfA)
	idB := model.SplitAssetID(model.NewAssetID("A1"), model.HalfB)

	frA, ok := out.Frequencies[idA]
	require.True(t, ok)
	frB, ok := out.Frequencies[idB]
	require.True(t, ok)

	assert.Equal(t, 5, frA.Final)
	assert.Equal(t, 7, frB.Final)

	var partnerA, partnerB model.Partner
	for _, p := range out.Partners {
		if p.ID.Half() == model.HalfA {
			partnerA = p
		} else {
			partnerB = p
		}
	}

	assert.Equal(t, 0, partnerA.OpenSec)
	assert.Equal(t, 12600, partnerA.CloseSec) // 3.5h
	assert.Equal(t, 23400, partnerB.OpenSec)  // 6.5h
	assert.Equal(t, 36000, partnerB.CloseSec)
}

func TestDerive_SplitNotTriggeredBelowThreshold(t *testing.T) {
	a1 := asset("A1", "P1", 5, 1, 5, true)
	in := frequency.Input{
		Assets: []model.Asset{a1},
		Partners: []model.Partner{
			{ID: model.NewPartnerID("P1"), Branch: "B1", OpenSec: 0, CloseSec: 36000},
		},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0},
		},
		Consumption: []model.ConsumptionRecord{
			// fc = ceil(500/100) = 5, not > 1.5*5=7.5.
			{Asset: model.NewAssetID("A1"), SKU: "cups", Start: 0, End: 7, Consumed: 500},
		},
	}

	out := frequency.New(frequency.Config{SplitEnabled: true, RepasseGapSeconds: 10800}).Derive(in)

	require.Len(t, out.Assets, 1)
	assert.Equal(t, model.NewAssetID("A1"), out.Assets[0].ID)
}

func TestSplitPartnerWindows_NarrowWindowWarns(t *testing.T) {
	a1 := asset("A1", "P1", 5, 2, 5, true)
	in := frequency.Input{
		Assets: []model.Asset{a1},
		Partners: []model.Partner{
			// Window of only 30s: far too narrow for a 3h gap.
			{ID: model.NewPartnerID("P1"), Branch: "B1", OpenSec: 0, CloseSec: 30},
		},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0},
		},
		Consumption: []model.ConsumptionRecord{
			{Asset: model.NewAssetID("A1"), SKU: "cups", Start: 0, End: 7, Consumed: 1150},
		},
	}

	out := frequency.New(frequency.Config{SplitEnabled: true, RepasseGapSeconds: 10800}).Derive(in)

	require.NotEmpty(t, out.Report.Diagnostics)
	assert.Equal(t, model.CodeSplitWindowNarrow, out.Report.Diagnostics[0].Code)
}
