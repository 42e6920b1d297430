package models

import "strings"

// InstrumentType is the closed set of recorded-instrument kinds the engine
// understands. Free-text types coming from the extraction collaborator are
// normalized into this set at ingestion; anything unrecognized becomes
// TypeOther rather than being guessed at.
type InstrumentType string

const (
	TypeWarrantyDeed               InstrumentType = "warranty_deed"
	TypeQuitClaimDeed              InstrumentType = "quit_claim_deed"
	TypeDeed                       InstrumentType = "deed" // unqualified "deed" in the source text
	TypeEasement                   InstrumentType = "easement"
	TypeMortgage                   InstrumentType = "mortgage"
	TypeSurfaceOnly                InstrumentType = "surface_only"
	TypeOilGasLease                InstrumentType = "oil_gas_lease"
	TypeLifeEstate                 InstrumentType = "life_estate"
	TypePersonalRepresentativeDeed InstrumentType = "personal_representative_deed"
	TypeTrustDeed                  InstrumentType = "trust_deed"
	TypeOther                      InstrumentType = "other"
)

// IsDeedLike reports whether the type conveys fee/mineral title the way a
// deed does, which is what the mineral-reservation rule cares about.
func (t InstrumentType) IsDeedLike() bool {
	switch t {
	case TypeWarrantyDeed, TypeQuitClaimDeed, TypePersonalRepresentativeDeed, TypeTrustDeed, TypeDeed:
		return true
	}
	return false
}

// NormalizeInstrumentType maps a free-text instrument type (as extracted
// from the recorded document) into the closed InstrumentType set. Matching
// is substring based because county indexes abbreviate inconsistently
// ("OGL", "Oil & Gas Lease", "WD - Warranty Deed").
func NormalizeInstrumentType(raw string) InstrumentType {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case t == "":
		return TypeOther
	case strings.Contains(t, "ogl") || (strings.Contains(t, "oil") && strings.Contains(t, "lease")):
		return TypeOilGasLease
	case strings.Contains(t, "easement"):
		return TypeEasement
	case strings.Contains(t, "mortgage"):
		return TypeMortgage
	case strings.Contains(t, "surface"):
		return TypeSurfaceOnly
	case strings.Contains(t, "life estate"):
		return TypeLifeEstate
	case strings.Contains(t, "quit"):
		return TypeQuitClaimDeed
	case strings.Contains(t, "personal representative"):
		return TypePersonalRepresentativeDeed
	case strings.Contains(t, "trust") && strings.Contains(t, "deed"):
		return TypeTrustDeed
	case strings.Contains(t, "warranty"):
		return TypeWarrantyDeed
	case strings.Contains(t, "deed"):
		return TypeDeed
	default:
		return TypeOther
	}
}

// TractRef identifies one tract an instrument affects, as it appears in the
// legal description: a township/range identifier plus a section number.
type TractRef struct {
	TownshipRange string `json:"township_range"`
	Section       string `json:"section"`
}

// MineralReservation records that the grantor reserved mineral rights
// instead of conveying them.
type MineralReservation struct {
	Reserved bool `json:"reserved"`
}

// LifeEstate records that the instrument creates or is governed by a life
// estate.
type LifeEstate struct {
	Present bool `json:"present"`
}

// InstrumentRecord is one recorded legal instrument as supplied by the
// extraction collaborator. Dates stay strings: recorded dates come straight
// from the county index and order lexically in ISO form.
type InstrumentRecord struct {
	DocumentID         string              `json:"document_id,omitempty"`
	InstrumentType     string              `json:"instrument_type"`
	RecordedDate       string              `json:"recorded_date,omitempty"`
	ExecutedDate       string              `json:"executed_date,omitempty"`
	Grantors           []string            `json:"grantors"`
	Grantees           []string            `json:"grantees"`
	AffectedTracts     []TractRef          `json:"affected_tracts"`
	ConveysAllInterest bool                `json:"conveys_all_interest"`
	FractionConveyed   string              `json:"fraction_conveyed,omitempty"`
	MineralReservation *MineralReservation `json:"mineral_reservation,omitempty"`
	LifeEstate         *LifeEstate         `json:"life_estate,omitempty"`
}

// Type returns the normalized instrument type.
func (r *InstrumentRecord) Type() InstrumentType {
	return NormalizeInstrumentType(r.InstrumentType)
}

// HasLifeEstate reports whether the record is governed by a life estate,
// either by type or by the extracted life_estate marker.
func (r *InstrumentRecord) HasLifeEstate() bool {
	if r.LifeEstate != nil && r.LifeEstate.Present {
		return true
	}
	return r.Type() == TypeLifeEstate
}

// ReservesMinerals reports whether a deed-like instrument retained the
// mineral interest for the grantor.
func (r *InstrumentRecord) ReservesMinerals() bool {
	return r.MineralReservation != nil && r.MineralReservation.Reserved
}
