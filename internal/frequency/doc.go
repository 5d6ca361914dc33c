// Package frequency implements the S1 Frequency Engine (spec.md §4.1): it
// derives a final visits/week count per asset from measured consumption and
// SKU capacities, and optionally splits overloaded assets into A/B repasse
// halves with partitioned partner windows.
package frequency
