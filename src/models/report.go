package models

// Status labels applied uniformly to every ownership row of a run. The
// label is selected by the caller's hbp flag, not computed per owner.
const (
	StatusAppearsLeased = "Appears Leased"
	StatusAppearsOpen   = "Appears Open"
)

// Flag is a note the engine appends when it cannot mechanically resolve an
// instrument's effect and defers to a human reviewer.
type Flag struct {
	DocumentID string `json:"document_id,omitempty"`
	Note       string `json:"note"`
}

// OwnershipRow is one party's final position in the computed chain.
type OwnershipRow struct {
	Owner    string  `json:"owner"`
	Percent  float64 `json:"percent"`
	NetAcres float64 `json:"net_acres"`
	Status   string  `json:"status"`
}

// TitleReport is the result of replaying one tract's instrument chain.
type TitleReport struct {
	EventsCount int            `json:"events_count"`
	Owners      []OwnershipRow `json:"owners"`
	Flags       []Flag         `json:"flags"`
}

// TitleRequest is the compute request body. Events and TractKey are
// required; the rest carry defaults.
type TitleRequest struct {
	Events     []InstrumentRecord `json:"events"`
	TractKey   string             `json:"tract_key"`
	AsOf       string             `json:"as_of,omitempty"`
	HBP        bool               `json:"hbp,omitempty"`
	TotalAcres float64            `json:"total_acres,omitempty"`
}
