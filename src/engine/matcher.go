package engine

import (
	"strings"

	"github.com/username/titlechain/src/models"
)

// MatchesTract reports whether any of the instrument's affected tracts
// refers to the tract under analysis. An entry matches when its
// township/range identifier is a case-insensitive substring of the tract
// key and its section number also appears in the tract key; both must hold.
// Entries missing either field never match. Non-matching instruments are
// simply invisible to the run, not errors.
func MatchesTract(rec *models.InstrumentRecord, tractKey string) bool {
	key := strings.ToLower(tractKey)
	for _, tract := range rec.AffectedTracts {
		trs := strings.ToLower(strings.TrimSpace(tract.TownshipRange))
		section := strings.TrimSpace(tract.Section)
		if trs == "" || section == "" {
			continue
		}
		if strings.Contains(key, trs) && strings.Contains(tractKey, section) {
			return true
		}
	}
	return false
}

// filterByTract keeps the records affecting tractKey, preserving input order.
func filterByTract(events []models.InstrumentRecord, tractKey string) []models.InstrumentRecord {
	matched := make([]models.InstrumentRecord, 0, len(events))
	for i := range events {
		if MatchesTract(&events[i], tractKey) {
			matched = append(matched, events[i])
		}
	}
	return matched
}
