package frequency

import "github.com/tolga/fieldroute/internal/model"

// consumptionAgg accumulates the numerator and denominator of the weekly
// rate w_ak = Σ consumed / Σ (days/7) (spec.md §4.1 step 1).
type consumptionAgg struct {
	sumConsumed float64
	sumDays     int64
}

func aggregateConsumption(records []model.ConsumptionRecord) map[consumptionKey]*consumptionAgg {
	out := make(map[consumptionKey]*consumptionAgg)
	for _, rec := range records {
		days := rec.End - rec.Start
		if days < 1 {
			days = 1
		}
		key := consumptionKey{Asset: rec.Asset, SKU: rec.SKU}
		agg := out[key]
		if agg == nil {
			agg = &consumptionAgg{}
			out[key] = agg
		}
		agg.sumConsumed += rec.Consumed
		agg.sumDays += days
	}
	return out
}

// weeklyRate returns w_ak; a key with no observations rates at zero (missing
// consumption is treated as a zero rate per the engine's failure semantics).
func weeklyRate(agg map[consumptionKey]*consumptionAgg, key consumptionKey) float64 {
	a := agg[key]
	if a == nil || a.sumDays == 0 {
		return 0
	}
	return a.sumConsumed / (float64(a.sumDays) / 7.0)
}
