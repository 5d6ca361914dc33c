package frequency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/frequency"
	"github.com/tolga/fieldroute/internal/model"
)

func asset(id string, partner string, dpw, fmin, fcur int, splitEligible bool) model.Asset {
	return model.Asset{
		ID:               model.NewAssetID(id),
		Partner:          model.NewPartnerID(partner),
		ServiceSec:       600,
		DaysPerWeek:      dpw,
		MinFrequency:     fmin,
		CurrentFrequency: fcur,
		SplitEligible:    model.SplitEligible(splitEligible),
		AllowSaturday:    dpw == 6,
	}
}

func TestDerive_ConsumptionDrivenFrequency(t *testing.T) {
	in := frequency.Input{
		Assets: []model.Asset{asset("A1", "P1", 5, 1, 5, false)},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0},
		},
		Consumption: []model.ConsumptionRecord{
			{Asset: model.NewAssetID("A1"), SKU: "cups", Start: 0, End: 7, Consumed: 300},
		},
	}

	out := frequency.New(frequency.Config{}).Derive(in)

	require.Equal(t, model.StatusOK, out.Report.Status())
	fr := out.Frequencies[model.NewAssetID("A1")]
	assert.Equal(t, 3, fr.Consumption) // ceil(300/100) = 3
	assert.Equal(t, 3, fr.Final)       // min(3,5,5)=3, max(1,3)=3
}

func TestDerive_MissingConsumptionTreatedAsZero(t *testing.T) {
	in := frequency.Input{
		Assets: []model.Asset{asset("A1", "P1", 5, 2, 4, false)},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0},
		},
	}

	out := frequency.New(frequency.Config{}).Derive(in)

	fr := out.Frequencies[model.NewAssetID("A1")]
	assert.Equal(t, 0, fr.Consumption)
	assert.Equal(t, 2, fr.Final) // fmin dominates since fr=min(0,5,4)=0
}

func TestDerive_MissingCapacityDropsRowWithWarning(t *testing.T) {
	in := frequency.Input{
		Assets: []model.Asset{asset("A1", "P1", 5, 1, 5, false)},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 0, RepositionLevel: 0},
		},
	}

	out := frequency.New(frequency.Config{}).Derive(in)

	require.Equal(t, model.StatusWarn, out.Report.Status())
	require.Len(t, out.Report.Diagnostics, 1)
	assert.Equal(t, model.CodeMissingCapacity, out.Report.Diagnostics[0].Code)
}

func TestDerive_GlobalRepositionOverride(t *testing.T) {
	rho := 0.5
	in := frequency.Input{
		Assets: []model.Asset{asset("A1", "P1", 5, 1, 5, false)},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0.9},
		},
		Consumption: []model.ConsumptionRecord{
			{Asset: model.NewAssetID("A1"), SKU: "cups", Start: 0, End: 7, Consumed: 100},
		},
	}

	out := frequency.New(frequency.Config{GlobalRepositionLevel: &rho}).Derive(in)

	fr := out.Frequencies[model.NewAssetID("A1")]
	assert.Equal(t, 2, fr.Consumption) // ceil(100/(100*0.5)) = 2, ignoring the line's own 0.9
}

func TestDerive_FlexibilityRelaxesMinimum(t *testing.T) {
	flex := 2
	in := frequency.Input{
		Assets: []model.Asset{asset("A1", "P1", 5, 1, 4, false)},
	}

	out := frequency.New(frequency.Config{Flexibility: &flex}).Derive(in)

	fr := out.Frequencies[model.NewAssetID("A1")]
	assert.Equal(t, 2, fr.MinAdjusted) // max(1, 4-2) = 2
	assert.Equal(t, 2, fr.Final)       // max(2, fr=0) = 2
}

func TestDerive_StandardizeByPartner(t *testing.T) {
	a1 := asset("A1", "P1", 5, 1, 2, false)
	a2 := asset("A2", "P1", 5, 1, 5, false)
	in := frequency.Input{
		Assets: []model.Asset{a1, a2},
		SKULines: []model.SKULine{
			{Asset: model.NewAssetID("A1"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0},
			{Asset: model.NewAssetID("A2"), SKU: "cups", CapacityUnits: 100, RepositionLevel: 0},
		},
		Consumption: []model.ConsumptionRecord{
			{Asset: model.NewAssetID("A1"), SKU: "cups", Start: 0, End: 7, Consumed: 100},
			{Asset: model.NewAssetID("A2"), SKU: "cups", Start: 0, End: 7, Consumed: 500},
		},
	}

	out := frequency.New(frequency.Config{StandardizeByPartner: true}).Derive(in)

	f1 := out.Frequencies[model.NewAssetID("A1")].Final
	f2 := out.Frequencies[model.NewAssetID("A2")].Final
	assert.Equal(t, f1, f2, "standardization must equalize every asset at the same partner")
	assert.Equal(t, 5, f1) // A2's fr=min(5,5,5)=5 dominates, clamped to dpw=5
}

func TestDerive_FinalNeverExceedsDaysPerWeek(t *testing.T) {
	in := frequency.Input{
		Assets: []model.Asset{asset("A1", "P1", 5, 7, 7, false)},
	}

	out := frequency.New(frequency.Config{}).Derive(in)

	assert.LessOrEqual(t, out.Frequencies[model.NewAssetID("A1")].Final, 5)
}
