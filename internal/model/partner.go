package model

// Partner is a physical site hosting one or more assets (spec.md §3).
// OpenSec/CloseSec are seconds since the branch's global origin, already
// normalized for midnight-crossing windows (timeutil.NormalizeWindow).
type Partner struct {
	ID         PartnerID
	Branch     BranchID
	OpenSec    int
	CloseSec   int
	EntrySec   int // e_p, fixed overhead charged once per visit to this partner
	FixedDay   *int // fixed delivery weekday, 0..Dw-1, nil if unconstrained
	Supervisor string
	Point      PointID
}

// Window returns the normalized opening window.
func (p Partner) Window() (open, close int) { return p.OpenSec, p.CloseSec }

// Duration returns the length of the opening window in seconds.
func (p Partner) Duration() int { return p.CloseSec - p.OpenSec }
