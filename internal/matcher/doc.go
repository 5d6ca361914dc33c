// Package matcher implements S4, the agent matcher (spec.md §4.4): a
// similarity-driven greedy heuristic that bundles one week's worth of
// solved routes into per-agent weekly assignments, respecting the weekly
// hour budget and at-most-one-route-per-weekday.
package matcher
