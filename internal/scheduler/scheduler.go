package scheduler

import (
	"sort"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/pattern"
)

// Input is one branch's worth of scheduling work (spec.md §4.2: solved
// independently per branch).
type Input struct {
	Branch      model.Branch
	Assets      []model.Asset
	Frequencies map[model.AssetID]int // final f_a from the frequency engine
	Partners    []model.Partner
}

// Output is the per-asset pattern assignment plus the peak daily load the
// objective minimized.
type Output struct {
	Patterns map[model.AssetID]model.Pattern
	Peak     int
	Report   model.Report
}

// Schedule assigns a visit pattern to every asset in in.Assets.
func Schedule(in Input) Output {
	report := model.Report{Stage: "scheduler"}
	dw := in.Branch.WeeklyDays

	partnerByID := make(map[model.PartnerID]model.Partner, len(in.Partners))
	for _, p := range in.Partners {
		partnerByID[p.ID] = p
	}

	candidates := make(map[model.AssetID][]pattern.Set, len(in.Assets))
	for _, asset := range in.Assets {
		f := in.Frequencies[asset.ID]
		catalog := pattern.Catalog(dw, f)
		if !asset.AllowSaturday {
			catalog = pattern.WithoutSaturday(catalog)
		}
		if len(catalog) == 0 {
			report.Add(model.Diagnostic{
				Code:    model.CodeSchedulerInfeasible,
				Message: "no viable visit pattern for this asset's frequency and Saturday policy",
				Branch:  in.Branch.ID,
				Asset:   asset.ID.Code(),
			})
			continue
		}
		candidates[asset.ID] = catalog
	}

	relaxFixedWeekdayConstraints(in, partnerByID, candidates, &report)

	order := schedulingOrder(in.Assets, in.Frequencies, candidates)

	loads := make([]int, dw)
	patterns := make(map[model.AssetID]model.Pattern, len(order))
	for _, assetID := range order {
		best := bestPattern(candidates[assetID], loads)
		applyPattern(loads, best)
		patterns[assetID] = model.Pattern{Weekdays: append([]int(nil), best.Weekdays...)}
	}

	return Output{
		Patterns: patterns,
		Peak:     peak(loads),
		Report:   report,
	}
}

// relaxFixedWeekdayConstraints restricts one asset per fixed-weekday
// partner to patterns covering that weekday; if no asset at the partner can
// cover it, the constraint is dropped and the partner reported as relaxed
// (spec.md §4.2 "degrade by dropping the fixed-weekday constraint").
func relaxFixedWeekdayConstraints(
	in Input,
	partnerByID map[model.PartnerID]model.Partner,
	candidates map[model.AssetID][]pattern.Set,
	report *model.Report,
) {
	assetsByPartner := make(map[model.PartnerID][]model.AssetID)
	for _, asset := range in.Assets {
		assetsByPartner[asset.Partner] = append(assetsByPartner[asset.Partner], asset.ID)
	}
	for pid, assetIDs := range assetsByPartner {
		partner, ok := partnerByID[pid]
		if !ok || partner.FixedDay == nil {
			continue
		}
		sort.Slice(assetIDs, func(i, j int) bool { return assetIDs[i].Code() < assetIDs[j].Code() })

		fixedDay := *partner.FixedDay
		anchor := -1
		for i, aid := range assetIDs {
			if containsDay(candidates[aid], fixedDay) {
				anchor = i
				break
			}
		}
		if anchor == -1 {
			report.Add(model.Diagnostic{
				Code:    model.CodeFixedWeekdayRelaxed,
				Message: "no asset at this partner has a pattern covering the fixed weekday, constraint dropped",
				Branch:  in.Branch.ID,
				Partner: pid.Code(),
			})
			continue
		}
		aid := assetIDs[anchor]
		restricted := filterContains(candidates[aid], fixedDay)
		if len(restricted) > 0 {
			candidates[aid] = restricted
		}
	}
}

func containsDay(catalog []pattern.Set, day int) bool {
	for _, s := range catalog {
		if s.Weekdays != nil {
			for _, w := range s.Weekdays {
				if w == day {
					return true
				}
			}
		}
	}
	return false
}

func filterContains(catalog []pattern.Set, day int) []pattern.Set {
	var out []pattern.Set
	for _, s := range catalog {
		for _, w := range s.Weekdays {
			if w == day {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// schedulingOrder sorts assets by descending frequency, breaking ties by
// asset code, so the longest-processing-time-first heuristic runs
// deterministically (spec.md §5 "Ordering guarantees").
func schedulingOrder(assets []model.Asset, freqs map[model.AssetID]int, candidates map[model.AssetID][]pattern.Set) []model.AssetID {
	var ids []model.AssetID
	for _, a := range assets {
		if _, ok := candidates[a.ID]; ok {
			ids = append(ids, a.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		fi, fj := freqs[ids[i]], freqs[ids[j]]
		if fi != fj {
			return fi > fj
		}
		return ids[i].Code() < ids[j].Code()
	})
	return ids
}

// bestPattern picks the candidate minimizing the resulting peak load, then
// the resulting sum of squares (spreading load more evenly), then the
// lexicographically smallest pattern for determinism.
func bestPattern(options []pattern.Set, loads []int) pattern.Set {
	best := options[0]
	bestPeak, bestSumSq := -1, -1
	for _, opt := range options {
		p, sq := simulate(loads, opt)
		if bestPeak == -1 || p < bestPeak || (p == bestPeak && sq < bestSumSq) ||
			(p == bestPeak && sq == bestSumSq && opt.Key() < best.Key()) {
			best, bestPeak, bestSumSq = opt, p, sq
		}
	}
	return best
}

func simulate(loads []int, opt pattern.Set) (peakAfter, sumSq int) {
	touched := make(map[int]bool, len(opt.Weekdays))
	for _, w := range opt.Weekdays {
		touched[w] = true
	}
	for d, v := range loads {
		if touched[d] {
			v++
		}
		if v > peakAfter {
			peakAfter = v
		}
		sumSq += v * v
	}
	return peakAfter, sumSq
}

func applyPattern(loads []int, opt pattern.Set) {
	for _, w := range opt.Weekdays {
		loads[w]++
	}
}

func peak(loads []int) int {
	m := 0
	for _, v := range loads {
		if v > m {
			m = v
		}
	}
	return m
}
