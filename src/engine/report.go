package engine

import (
	"sort"

	"github.com/username/titlechain/src/models"
)

// buildReport renders the final ledger into ownership rows: negative
// residues clamp to zero, net acres come from the fractional balance, and
// rows rank descending by net acres with ledger order breaking ties.
func buildReport(ledger *Ledger, totalAcres float64, status string, flags []models.Flag, eventsCount int) *models.TitleReport {
	entries := ledger.Entries()
	owners := make([]models.OwnershipRow, 0, len(entries))
	for _, entry := range entries {
		balance, _ := entry.Balance.Float64()
		if balance < 0 {
			balance = 0
		}
		netAcres := balance * totalAcres
		percent := 0.0
		if totalAcres > 0 {
			percent = netAcres / totalAcres * 100
		}
		owners = append(owners, models.OwnershipRow{
			Owner:    entry.Owner,
			Percent:  percent,
			NetAcres: netAcres,
			Status:   status,
		})
	}
	sort.SliceStable(owners, func(i, j int) bool {
		return owners[i].NetAcres > owners[j].NetAcres
	})

	return &models.TitleReport{
		EventsCount: eventsCount,
		Owners:      owners,
		Flags:       flags,
	}
}
