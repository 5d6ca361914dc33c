// Package scheduler implements the S2 Weekly Scheduler (spec.md §4.2): it
// assigns each asset a visit pattern from the catalog for its final
// frequency, minimizing the peak daily visit count across the branch's
// week, while honoring any per-partner fixed-weekday requirement.
//
// No constraint-programming or MIP library exists anywhere in the retrieved
// dependency pack, so the min-max assignment is solved with a deterministic
// longest-processing-time-first greedy heuristic instead of an exact MIP:
// assets are assigned in descending frequency order, each taking the
// catalog pattern that minimizes the resulting peak load (see DESIGN.md).
package scheduler
