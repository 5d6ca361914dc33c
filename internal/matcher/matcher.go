package matcher

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tolga/fieldroute/internal/model"
)

// Match runs S4 for one (branch, supervisor): bundles the week's solved
// routes into per-agent weekly assignments (spec.md §4.4).
func Match(in Input, cfg Config) Output {
	report := model.Report{Stage: "matcher"}

	if cfg.OneToOneMode {
		return Output{Agents: matchOneToOne(in), Report: report}
	}

	pairs := buildPairs(in, cfg)
	order := anchorOrder(in.Routes)

	assigned := make(map[uuid.UUID]bool, len(in.Routes))
	byID := make(map[uuid.UUID]model.Route, len(in.Routes))
	for _, r := range in.Routes {
		byID[r.ID] = r
	}

	var agents []model.Agent
	for _, anchorID := range order {
		if assigned[anchorID] {
			continue
		}
		anchor := byID[anchorID]
		assigned[anchorID] = true

		agent := model.Agent{
			ID:         uuid.New(),
			Label:      fmt.Sprintf("agent-%s-%s-w%d", in.Branch, in.Supervisor, len(agents)+1),
			Branch:     in.Branch,
			Supervisor: in.Supervisor,
			Routes:     map[int]model.Route{anchor.Weekday: anchor},
		}

		for day := 0; day < 7; day++ {
			if day == anchor.Weekday {
				continue
			}
			remaining := -1
			if cfg.WeeklyBudgetSeconds > 0 {
				remaining = cfg.WeeklyBudgetSeconds - agent.WeeklySeconds()
			}
			best, ok := bestCandidate(anchor, day, pairs, assigned, byID, remaining)
			if !ok {
				continue
			}
			assigned[best] = true
			agent.Routes[byID[best].Weekday] = byID[best]
		}

		promoteFullTime(&agent, cfg)
		finalizeAgent(&agent)
		agents = append(agents, agent)
	}

	return Output{Agents: agents, Report: report}
}

// matchOneToOne bypasses the heuristic: each distinct route label already
// names one agent, recurring across the days it appears (spec.md §4.4
// "1-to-1 mode").
func matchOneToOne(in Input) []model.Agent {
	byLabel := make(map[string]*model.Agent)
	var order []string
	for _, r := range in.Routes {
		a, ok := byLabel[r.Label]
		if !ok {
			a = &model.Agent{
				ID:         uuid.New(),
				Label:      r.Label,
				Branch:     in.Branch,
				Supervisor: in.Supervisor,
				Routes:     map[int]model.Route{},
			}
			byLabel[r.Label] = a
			order = append(order, r.Label)
		}
		a.Routes[r.Weekday] = r
	}
	sort.Strings(order)
	agents := make([]model.Agent, 0, len(order))
	for _, label := range order {
		a := byLabel[label]
		finalizeAgent(a)
		agents = append(agents, *a)
	}
	return agents
}

// pairKey identifies a directed candidate relationship anchor -> candidate.
type pairKey struct {
	anchor    uuid.UUID
	candidate uuid.UUID
}

// buildPairs enumerates route pairs on different weekdays within the
// haversine distance screen (spec.md §4.4 Step 1) and scores each
// direction (anchor, candidate) independently, since the scoring key
// depends on which route occupies the "r_i" slot (Step 2).
func buildPairs(in Input, cfg Config) map[pairKey]pairScore {
	thresholdKm := cfg.MaxDistanceM / 1000
	out := make(map[pairKey]pairScore)
	for _, ri := range in.Routes {
		for _, rj := range in.Routes {
			if ri.ID == rj.ID || ri.Weekday == rj.Weekday {
				continue
			}
			ci, okI := in.Centroids[ri.ID]
			cj, okJ := in.Centroids[rj.ID]
			if !okI || !okJ {
				continue
			}
			dist := haversineKm(ci, cj)
			if dist > thresholdKm {
				continue
			}
			out[pairKey{anchor: ri.ID, candidate: rj.ID}] = scorePair(ri, rj, dist, cfg)
		}
	}
	return out
}

// pairScore is the lexicographic scoring key from spec.md §4.4 Step 2,
// evaluated for a specific (r_i, r_j) direction.
type pairScore struct {
	sameModality   bool
	sameTier       bool
	anchorFullTime bool
	anchorDriving  bool
	sharedFraction float64
	distanceKm     float64
}

func scorePair(ri, rj model.Route, distKm float64, cfg Config) pairScore {
	assetsI, assetsJ := ri.Assets(), rj.Assets()
	shared := 0
	for a := range assetsI {
		if _, ok := assetsJ[a]; ok {
			shared++
		}
	}
	minLen := len(assetsI)
	if len(assetsJ) < minLen {
		minLen = len(assetsJ)
	}
	frac := 0.0
	if minLen > 0 {
		frac = float64(shared) / float64(minLen)
	}
	return pairScore{
		sameModality:   ri.Modality == rj.Modality,
		sameTier:       ri.Tier.Name == rj.Tier.Name,
		anchorFullTime: ri.IsFullTime(cfg.FullTimeSeconds),
		anchorDriving:  ri.Modality == model.ModalityDriving,
		sharedFraction: frac,
		distanceKm:     distKm,
	}
}

// better reports whether a outranks b under the spec's lexicographic key,
// each boolean term preferring true over false.
func (a pairScore) better(b pairScore) bool {
	if a.sameModality != b.sameModality {
		return a.sameModality
	}
	if a.sameTier != b.sameTier {
		return a.sameTier
	}
	if a.anchorFullTime != b.anchorFullTime {
		return a.anchorFullTime
	}
	if a.anchorDriving != b.anchorDriving {
		return a.anchorDriving
	}
	if a.sharedFraction != b.sharedFraction {
		return a.sharedFraction > b.sharedFraction
	}
	return a.distanceKm < b.distanceKm
}

// bestCandidate picks the best-scoring unassigned route on the given
// weekday compatible with the anchor (spec.md §4.4 Step 3) whose total time
// fits in remainingSec seconds of weekly budget (a negative remainingSec
// means no budget limit).
func bestCandidate(
	anchor model.Route,
	day int,
	pairs map[pairKey]pairScore,
	assigned map[uuid.UUID]bool,
	byID map[uuid.UUID]model.Route,
	remainingSec int,
) (uuid.UUID, bool) {
	var bestID uuid.UUID
	var best pairScore
	found := false
	for id, r := range byID {
		if r.Weekday != day || assigned[id] {
			continue
		}
		if remainingSec >= 0 && r.TotalTimeSec > remainingSec {
			continue
		}
		score, ok := pairs[pairKey{anchor: anchor.ID, candidate: id}]
		if !ok {
			continue
		}
		if !found || score.better(best) || (!best.better(score) && id.String() < bestID.String()) {
			best = score
			bestID = id
			found = true
		}
	}
	return bestID, found
}

// anchorOrder returns routes in a deterministic walk order: by weekday,
// then by label, so the greedy assembly is reproducible (spec.md §5
// ordering guarantees).
func anchorOrder(routes []model.Route) []uuid.UUID {
	sorted := make([]model.Route, len(routes))
	copy(sorted, routes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Weekday != sorted[j].Weekday {
			return sorted[i].Weekday < sorted[j].Weekday
		}
		return sorted[i].Label < sorted[j].Label
	})
	out := make([]uuid.UUID, len(sorted))
	for i, r := range sorted {
		out[i] = r.ID
	}
	return out
}

// promoteFullTime implements spec.md §4.4 Step 4: if any route in the
// bundle requires full-time, the whole bundle is promoted.
func promoteFullTime(agent *model.Agent, cfg Config) {
	anyFullTime := false
	for _, r := range agent.Routes {
		if r.IsFullTime(cfg.FullTimeSeconds) {
			anyFullTime = true
			break
		}
	}
	if !anyFullTime {
		return
	}
	for day, r := range agent.Routes {
		r.Tier = model.ScaleTier{Name: "full_time", Seconds: cfg.FullTimeSeconds, FTEFraction: 1.0}
		agent.Routes[day] = r
	}
}

// finalizeAgent derives the agent's reported modality (the majority across
// its routes, ties broken toward driving) and aggregate tier/hours.
func finalizeAgent(agent *model.Agent) {
	driving, walking := 0, 0
	var tier model.ScaleTier
	for _, r := range agent.Routes {
		if r.Modality == model.ModalityDriving {
			driving++
		} else {
			walking++
		}
		if r.Tier.Seconds > tier.Seconds {
			tier = r.Tier
		}
	}
	agent.Modality = model.ModalityDriving
	if walking > driving {
		agent.Modality = model.ModalityWalking
	}
	agent.Tier = tier
	agent.TotalHours = float64(agent.WeeklySeconds()) / 3600
}
