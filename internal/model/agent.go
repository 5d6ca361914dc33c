package model

import "github.com/google/uuid"

// Agent ("abastecedor") owns a subset of routes across different weekdays
// such that weekly hours stay within budget (spec.md §3, §4.4).
type Agent struct {
	ID           uuid.UUID
	Label        string
	Branch       BranchID
	Supervisor   string
	Routes       map[int]Route // weekday -> route, at most one per weekday
	Modality     Modality
	Tier         ScaleTier
	TotalHours   float64
}

// WeeklySeconds sums the total time of every route the agent owns.
func (a Agent) WeeklySeconds() int {
	total := 0
	for _, r := range a.Routes {
		total += r.TotalTimeSec
	}
	return total
}
