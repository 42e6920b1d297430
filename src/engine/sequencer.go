package engine

import (
	"sort"

	"github.com/username/titlechain/src/models"
)

// effectiveDateKey is the ordering key for an instrument: the recorded date
// when present, else the executed date, else empty. ISO date strings order
// correctly as plain strings.
func effectiveDateKey(rec *models.InstrumentRecord) string {
	if rec.RecordedDate != "" {
		return rec.RecordedDate
	}
	return rec.ExecutedDate
}

// SortByEffectiveDate returns the records ordered ascending by effective
// date. The sort is stable: equal keys (including two empty keys) keep
// their input order, which the ledger replay depends on.
func SortByEffectiveDate(events []models.InstrumentRecord) []models.InstrumentRecord {
	ordered := make([]models.InstrumentRecord, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return effectiveDateKey(&ordered[i]) < effectiveDateKey(&ordered[j])
	})
	return ordered
}
