// Package router implements the S3 Daily Router (spec.md §4.3): for each
// (branch, supervisor, weekday) it groups same-day assets into time-bounded
// clusters, constructs a VRPTW instance over an explicit BASE depot node,
// and solves it with a Clarke-Wright savings construction — the pack has no
// constraint-programming or VRP library (see DESIGN.md), so route
// construction is hand-rolled, mirroring the nearest-insertion style of the
// PATH_CHEAPEST_ARC strategy used by the original OR-Tools implementation.
package router
