// Package pattern builds the visit-pattern catalog consumed by the weekly
// scheduler (spec.md §3 "Visit pattern", §4.2 "Pattern catalog
// construction"). It is a pure function of (Dw, f); recomputing it always
// produces an identical set (spec.md §8 invariant 7).
package pattern

import "math"

// Set is a deduplicated visit pattern: a sorted list of weekday indices.
type Set struct {
	Weekdays []int
}

// Key returns a canonical string for deduplication by set identity.
func (s Set) Key() string {
	buf := make([]byte, 0, len(s.Weekdays)*2)
	for i, w := range s.Weekdays {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, byte('0'+w))
	}
	return string(buf)
}

// Catalog builds the pattern catalog for frequency f over Dw weekdays: the
// canonical equispaced base {round(i·Dw/f) mod Dw : i=0..f-1}, rotated Dw
// times and deduplicated by set identity (spec.md §4.2).
//
// f must be in [1, Dw]; f==0 or f>Dw returns an empty catalog, since no
// pattern can realize them.
func Catalog(dw, f int) []Set {
	if f <= 0 || f > dw || dw <= 0 {
		return nil
	}

	base := canonicalBase(dw, f)

	seen := make(map[string]bool)
	var catalog []Set
	for rot := 0; rot < dw; rot++ {
		rotated := rotate(base, dw, rot)
		set := Set{Weekdays: rotated}
		key := set.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		catalog = append(catalog, set)
	}
	return catalog
}

// canonicalBase computes {round(i*Dw/f) mod Dw : i=0..f-1}, sorted.
func canonicalBase(dw, f int) []int {
	base := make([]int, f)
	for i := 0; i < f; i++ {
		v := int(math.Round(float64(i)*float64(dw)/float64(f))) % dw
		base[i] = v
	}
	return dedupSort(base)
}

// rotate shifts every weekday in base by delta (mod dw) and returns a
// deduplicated, sorted result (a rotation can itself collapse weekdays for
// degenerate f, dw pairs).
func rotate(base []int, dw, delta int) []int {
	out := make([]int, len(base))
	for i, w := range base {
		out[i] = (w + delta) % dw
	}
	return dedupSort(out)
}

func dedupSort(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := in[:0:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// WithoutSaturday filters a catalog to patterns that never use weekday
// index 5, for assets where allow_saturday is false (spec.md §4.2).
func WithoutSaturday(catalog []Set) []Set {
	var out []Set
	for _, s := range catalog {
		has5 := false
		for _, w := range s.Weekdays {
			if w == 5 {
				has5 = true
				break
			}
		}
		if !has5 {
			out = append(out, s)
		}
	}
	return out
}
