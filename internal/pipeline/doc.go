// Package pipeline runs the independent subproblems named in spec.md §5 on
// a bounded worker pool: S2 per branch, S3 per (branch, supervisor, day),
// S4 per (branch, supervisor). There is no shared mutable state between
// workers; each one consumes its slice of the immutable prepared dataset
// and the results are merged into a single collector once every worker
// completes.
package pipeline
