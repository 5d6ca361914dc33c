// Package model defines the entities shared across the planning pipeline:
// branches, partners, assets, consumption, travel matrices, patterns,
// groups, routes and agents (spec.md §3). Entities are immutable after S1
// except for the asset/partner rewrite that splitting performs.
package model

import "fmt"

// SplitHalf identifies which half of a repasse (A/B split) an identifier
// refers to.
type SplitHalf string

const (
	HalfA SplitHalf = "A"
	HalfB SplitHalf = "B"
)

// AssetID is a tagged identifier: either the original business key from the
// wire contract, or one half of a split produced by the frequency engine
// (spec.md §9 design note — splitting must not be modeled as string
// concatenation so downstream stages stay agnostic to suffixes).
type AssetID struct {
	code   string
	half   SplitHalf // "" for Original
	parent string    // original code, set only when half != ""
}

// NewAssetID wraps a business key read from the Assets input table.
func NewAssetID(code string) AssetID {
	return AssetID{code: code}
}

// SplitAssetID derives one half of a split asset from its parent.
func SplitAssetID(parent AssetID, half SplitHalf) AssetID {
	return AssetID{
		code:   fmt.Sprintf("%s_%s", parent.code, half),
		half:   half,
		parent: parent.code,
	}
}

// IsSplit reports whether this identifier names a split half.
func (a AssetID) IsSplit() bool { return a.half != "" }

// Half returns the split half ("" if not split).
func (a AssetID) Half() SplitHalf { return a.half }

// ParentCode returns the original asset code this identifier was split
// from, or "" if it was never split.
func (a AssetID) ParentCode() string { return a.parent }

// Code returns the wire-contract string for this identifier (the original
// code, or "<parent>_A" / "<parent>_B" for split halves).
func (a AssetID) Code() string { return a.code }

// String implements fmt.Stringer.
func (a AssetID) String() string { return a.code }

// PartnerID is the analogous tagged identifier for partners.
type PartnerID struct {
	code   string
	half   SplitHalf
	parent string
}

// NewPartnerID wraps a business key read from the Partners input table.
func NewPartnerID(code string) PartnerID {
	return PartnerID{code: code}
}

// SplitPartnerID derives one half of a split partner from its parent.
func SplitPartnerID(parent PartnerID, half SplitHalf) PartnerID {
	return PartnerID{
		code:   fmt.Sprintf("%s_%s", parent.code, half),
		half:   half,
		parent: parent.code,
	}
}

// IsSplit reports whether this identifier names a split half.
func (p PartnerID) IsSplit() bool { return p.half != "" }

// Half returns the split half ("" if not split).
func (p PartnerID) Half() SplitHalf { return p.half }

// ParentCode returns the original partner code, or "" if not split.
func (p PartnerID) ParentCode() string { return p.parent }

// Code returns the wire-contract string for this identifier.
func (p PartnerID) Code() string { return p.code }

// String implements fmt.Stringer.
func (p PartnerID) String() string { return p.code }

// BranchID identifies an operational branch. Branches are never split.
type BranchID string

// SKU identifies a consumable line. SKUs are scoped to (branch, partner,
// asset) by the caller, not embedded here.
type SKU string

// PointID is the canonicalized geo point identifier produced by the
// (out-of-scope) point-id mapping. The core treats it as an opaque key into
// the travel matrix.
type PointID string
