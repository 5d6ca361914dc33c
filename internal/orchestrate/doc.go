// Package orchestrate wires the four-stage pipeline (spec.md §2) end to
// end: ingest -> S1 frequency -> S2 schedule -> S3 route -> S4 match ->
// emit, fanning the independent subproblems of S2-S4 out across the
// worker pool in internal/pipeline.
package orchestrate
