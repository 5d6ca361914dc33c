package model

// Branch is an operational unit with its own weekly day count, daily work
// and distance budgets, traffic multiplier and Saturday policy (spec.md §3).
type Branch struct {
	ID             BranchID
	WeeklyDays     int     // Dw ∈ {5,6}
	MaxTimeSeconds int     // Tmax
	MaxDistanceM   float64 // Dmax
	TrafficFactor  float64 // α ≥ 1
	AllowSaturday  bool
	SaturdayCapSec int // Saturday-specific override of Tmax on d=5, falls back to MaxTimeSeconds
}

// CapSeconds returns the applicable daily time cap for weekday d (0-indexed,
// 5 == Saturday).
func (b Branch) CapSeconds(weekday int) int {
	if weekday == 5 && b.SaturdayCapSec > 0 {
		return b.SaturdayCapSec
	}
	return b.MaxTimeSeconds
}
