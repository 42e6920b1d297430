package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/titlechain/src/models"
)

const (
	testTractKey   = "1S-2W-15"
	testTotalAcres = 160.0
)

var testTract = models.TractRef{TownshipRange: "1S-2W", Section: "15"}

// patent seeds the chain: a fixed whole-interest conveyance with no grantor
// of record, leaving owner at 100%.
func patent(owner string) models.InstrumentRecord {
	return models.InstrumentRecord{
		DocumentID:       "patent-" + owner,
		InstrumentType:   "Patent",
		RecordedDate:     "1900-01-01",
		Grantees:         []string{owner},
		AffectedTracts:   []models.TractRef{testTract},
		FractionConveyed: "1/1",
	}
}

func deed(id, date string, grantors, grantees []string) models.InstrumentRecord {
	return models.InstrumentRecord{
		DocumentID:         id,
		InstrumentType:     "Warranty Deed",
		RecordedDate:       date,
		Grantors:           grantors,
		Grantees:           grantees,
		AffectedTracts:     []models.TractRef{testTract},
		ConveysAllInterest: true,
	}
}

func ownerRow(report *models.TitleReport, owner string) *models.OwnershipRow {
	for i := range report.Owners {
		if report.Owners[i].Owner == owner {
			return &report.Owners[i]
		}
	}
	return nil
}

func TestEndToEndSingleConveyance(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		deed("wd-1", "2010-01-01", []string{"A"}, []string{"B"}),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	assert.Equal(t, 2, report.EventsCount)
	assert.Empty(t, report.Flags)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, models.OwnershipRow{
		Owner:    "B",
		Percent:  100,
		NetAcres: 160,
		Status:   models.StatusAppearsOpen,
	}, report.Owners[0])
}

func TestDeterminism(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		deed("wd-1", "2010-01-01", []string{"A"}, []string{"B", "C"}),
		deed("wd-2", "2012-01-01", []string{"B"}, []string{"D"}),
	}
	eng := NewEngine()

	first, err := json.Marshal(eng.ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(eng.ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestOrderSensitivityResortsUnorderedInput(t *testing.T) {
	// Later deed listed first; replay must still run 1900 -> 2010 -> 2012.
	events := []models.InstrumentRecord{
		deed("wd-2", "2012-01-01", []string{"B"}, []string{"C"}),
		deed("wd-1", "2010-01-01", []string{"A"}, []string{"B"}),
		patent("A"),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	assert.Empty(t, report.Flags)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "C", report.Owners[0].Owner)
	assert.Equal(t, 160.0, report.Owners[0].NetAcres)
}

func TestFullConveyanceConservation(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		deed("wd-1", "2010-01-01", []string{"A"}, []string{"B", "C"}),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	// A's balance went exactly to zero and pruned out; B and C hold b/2 each.
	require.Len(t, report.Owners, 2)
	assert.Nil(t, ownerRow(report, "A"))
	for _, owner := range []string{"B", "C"} {
		row := ownerRow(report, owner)
		require.NotNil(t, row, owner)
		assert.Equal(t, 50.0, row.Percent)
		assert.Equal(t, 80.0, row.NetAcres)
	}

	total := 0.0
	for _, row := range report.Owners {
		total += row.NetAcres
	}
	assert.Equal(t, 160.0, total)
}

func TestThreeWaySplitStaysExact(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		deed("wd-1", "2010-01-01", []string{"A"}, []string{"B", "C", "D"}),
		// reassemble the thirds; exact rationals must sum back to 1
		deed("wd-2", "2011-01-01", []string{"B"}, []string{"E"}),
		deed("wd-3", "2012-01-01", []string{"C"}, []string{"E"}),
		deed("wd-4", "2013-01-01", []string{"D"}, []string{"E"}),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	assert.Empty(t, report.Flags)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "E", report.Owners[0].Owner)
	assert.Equal(t, 100.0, report.Owners[0].Percent)
	assert.Equal(t, 160.0, report.Owners[0].NetAcres)
}

func TestNonMutatingTypes(t *testing.T) {
	for _, instrumentType := range []string{"Easement", "Mortgage", "Surface Only Deed", "OGL", "Oil & Gas Lease"} {
		t.Run(instrumentType, func(t *testing.T) {
			events := []models.InstrumentRecord{
				patent("A"),
				{
					DocumentID:         "enc-1",
					InstrumentType:     instrumentType,
					RecordedDate:       "2010-01-01",
					Grantors:           []string{"A"},
					Grantees:           []string{"B"},
					AffectedTracts:     []models.TractRef{testTract},
					ConveysAllInterest: true,
				},
			}
			report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

			assert.Empty(t, report.Flags)
			require.Len(t, report.Owners, 1)
			assert.Equal(t, "A", report.Owners[0].Owner)
			assert.Equal(t, 160.0, report.Owners[0].NetAcres)
		})
	}
}

func TestMineralReservationSkipsWithoutFlag(t *testing.T) {
	reserved := deed("wd-res", "2010-01-01", []string{"A"}, []string{"B"})
	reserved.MineralReservation = &models.MineralReservation{Reserved: true}

	events := []models.InstrumentRecord{patent("A"), reserved}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	assert.Empty(t, report.Flags)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "A", report.Owners[0].Owner)
}

func TestLifeEstateFlagsAndSkips(t *testing.T) {
	lifeEstate := deed("wd-le", "2010-01-01", []string{"A"}, []string{"B"})
	lifeEstate.LifeEstate = &models.LifeEstate{Present: true}

	events := []models.InstrumentRecord{patent("A"), lifeEstate}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	require.Len(t, report.Flags, 1)
	assert.Contains(t, report.Flags[0].Note, "Life estate")
	assert.Equal(t, "wd-le", report.Flags[0].DocumentID)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "A", report.Owners[0].Owner)
}

func TestLifeEstateTypeAloneFlags(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		{
			DocumentID:     "le-1",
			InstrumentType: "Life Estate Deed",
			RecordedDate:   "2010-01-01",
			Grantors:       []string{"A"},
			Grantees:       []string{"B"},
			AffectedTracts: []models.TractRef{testTract},
		},
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	require.Len(t, report.Flags, 1)
	assert.Contains(t, report.Flags[0].Note, "Life estate")
}

func TestTractExclusion(t *testing.T) {
	otherTract := deed("wd-other", "2010-01-01", []string{"A"}, []string{"Z"})
	otherTract.AffectedTracts = []models.TractRef{{TownshipRange: "9N-9E", Section: "3"}}

	events := []models.InstrumentRecord{
		patent("A"),
		otherTract,
		deed("wd-1", "2011-01-01", []string{"A"}, []string{"B"}),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	// The off-tract deed is invisible: no flag, no effect, but still counted
	// in events_count.
	assert.Equal(t, 3, report.EventsCount)
	assert.Empty(t, report.Flags)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "B", report.Owners[0].Owner)
	assert.Nil(t, ownerRow(report, "Z"))
}

func TestEpsilonCleanup(t *testing.T) {
	dust := patent("Dust")
	dust.DocumentID = "dust-1"
	dust.FractionConveyed = "1/1000000000000"

	events := []models.InstrumentRecord{patent("A"), dust}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	assert.Nil(t, ownerRow(report, "Dust"))
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "A", report.Owners[0].Owner)
}

func TestConveysAllWithUnknownGrantorShareFlags(t *testing.T) {
	events := []models.InstrumentRecord{
		deed("wd-1", "2010-01-01", []string{"Stranger"}, []string{"B"}),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	require.Len(t, report.Flags, 1)
	assert.Contains(t, report.Flags[0].Note, "unknown grantor share for Stranger")
	assert.Equal(t, "wd-1", report.Flags[0].DocumentID)
	assert.Empty(t, report.Owners)
}

func TestConveysAllWithNoGranteesFlags(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		deed("wd-1", "2010-01-01", []string{"A"}, nil),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	require.Len(t, report.Flags, 1)
	assert.Contains(t, report.Flags[0].Note, "unknown grantor share for A")
	// A keeps the full interest.
	require.Len(t, report.Owners, 1)
	assert.Equal(t, 160.0, report.Owners[0].NetAcres)
}

func TestFixedFractionSplitsAcrossGrantorsAndGrantees(t *testing.T) {
	half := models.InstrumentRecord{
		DocumentID:       "md-1",
		InstrumentType:   "Mineral Deed",
		RecordedDate:     "2010-01-01",
		Grantors:         []string{"A", "B"},
		Grantees:         []string{"C", "D"},
		AffectedTracts:   []models.TractRef{testTract},
		FractionConveyed: "1/2",
	}
	seedA := patent("A")
	seedB := patent("B")
	seedA.FractionConveyed = "1/2"
	seedB.FractionConveyed = "1/2"

	events := []models.InstrumentRecord{seedA, seedB, half}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	// Each grantor loses 1/4, each grantee gains 1/4.
	for _, owner := range []string{"A", "B", "C", "D"} {
		row := ownerRow(report, owner)
		require.NotNil(t, row, owner)
		assert.Equal(t, 40.0, row.NetAcres, owner)
		assert.Equal(t, 25.0, row.Percent, owner)
	}
}

func TestNegativeBalanceClampsToZeroRow(t *testing.T) {
	// Fixed conveyance from a grantor with no recorded interest: the debit
	// swings A negative; the report clamps the row rather than dropping it.
	events := []models.InstrumentRecord{
		{
			DocumentID:       "md-1",
			InstrumentType:   "Mineral Deed",
			RecordedDate:     "2010-01-01",
			Grantors:         []string{"A"},
			Grantees:         []string{"B"},
			AffectedTracts:   []models.TractRef{testTract},
			FractionConveyed: "1/2",
		},
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	require.Len(t, report.Owners, 2)
	assert.Equal(t, "B", report.Owners[0].Owner)
	assert.Equal(t, 80.0, report.Owners[0].NetAcres)
	assert.Equal(t, "A", report.Owners[1].Owner)
	assert.Equal(t, 0.0, report.Owners[1].NetAcres)
	assert.Equal(t, 0.0, report.Owners[1].Percent)
}

func TestUnresolvableInstrumentIsSilentlySkipped(t *testing.T) {
	// Neither a full-interest transfer nor a parseable fraction: the
	// instrument must not flag and must not touch the ledger.
	vague := models.InstrumentRecord{
		DocumentID:       "vague-1",
		InstrumentType:   "Mineral Deed",
		RecordedDate:     "2010-01-01",
		Grantors:         []string{"A"},
		Grantees:         []string{"B"},
		AffectedTracts:   []models.TractRef{testTract},
		FractionConveyed: "an undivided one-half",
	}
	events := []models.InstrumentRecord{patent("A"), vague}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	assert.Empty(t, report.Flags)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "A", report.Owners[0].Owner)
	assert.Equal(t, 160.0, report.Owners[0].NetAcres)
}

func TestRowsSortDescendingByNetAcres(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		{
			DocumentID:       "md-1",
			InstrumentType:   "Mineral Deed",
			RecordedDate:     "2010-01-01",
			Grantors:         []string{"A"},
			Grantees:         []string{"B"},
			AffectedTracts:   []models.TractRef{testTract},
			FractionConveyed: "1/4",
		},
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsOpen)

	require.Len(t, report.Owners, 2)
	assert.Equal(t, "A", report.Owners[0].Owner)
	assert.Equal(t, 120.0, report.Owners[0].NetAcres)
	assert.Equal(t, "B", report.Owners[1].Owner)
	assert.Equal(t, 40.0, report.Owners[1].NetAcres)
}

func TestStatusLabelAppliedUniformly(t *testing.T) {
	events := []models.InstrumentRecord{
		patent("A"),
		deed("wd-1", "2010-01-01", []string{"A"}, []string{"B", "C"}),
	}
	report := NewEngine().ComputeOwnership(events, testTractKey, testTotalAcres, models.StatusAppearsLeased)
	for _, row := range report.Owners {
		assert.Equal(t, models.StatusAppearsLeased, row.Status)
	}
}
