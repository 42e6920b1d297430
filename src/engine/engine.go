// Package engine computes the current fractional ownership of a tract from
// its recorded instrument chain: filter the records to the tract, order
// them by effective date, replay each through the per-type transfer rules
// against an exact-rational ledger, and render ranked ownership rows plus
// review flags. The computation is pure and allocates all of its state per
// call, so concurrent runs never interact.
package engine

import "github.com/username/titlechain/src/models"

// Epsilon is the magnitude below which a final ledger balance is treated as
// exactly zero and dropped from the report.
const Epsilon = 1e-9

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// ComputeOwnership replays every instrument affecting tractKey and returns
// the resulting ownership report. The events slice is not modified. status
// is the uniform label applied to every row; totalAcres converts fractional
// interests to net acres.
func (e *Engine) ComputeOwnership(events []models.InstrumentRecord, tractKey string, totalAcres float64, status string) *models.TitleReport {
	matched := filterByTract(events, tractKey)
	ordered := SortByEffectiveDate(matched)

	ledger := NewLedger()
	flags := make([]models.Flag, 0)
	for i := range ordered {
		applyInstrument(ledger, &ordered[i], &flags)
	}
	ledger.Prune(Epsilon)

	return buildReport(ledger, totalAcres, status, flags, len(events))
}
