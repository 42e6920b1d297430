package engine

import (
	"fmt"
	"math/big"

	"github.com/username/titlechain/src/models"
)

// applyInstrument runs one instrument through the transfer rules, mutating
// the ledger and appending flags. Rules are checked top-down; the first
// matching row wins.
func applyInstrument(ledger *Ledger, rec *models.InstrumentRecord, flags *[]models.Flag) {
	switch rec.Type() {
	case models.TypeEasement, models.TypeMortgage, models.TypeSurfaceOnly:
		// Encumbrances and surface-only conveyances never alter
		// mineral/fee ownership.
		return
	case models.TypeOilGasLease:
		// Leasing does not change underlying ownership; leasehold status
		// is derived outside this engine.
		return
	}

	if rec.HasLifeEstate() {
		*flags = append(*flags, models.Flag{
			DocumentID: rec.DocumentID,
			Note:       "Life estate detected; confirm termination status",
		})
		return
	}

	if rec.Type().IsDeedLike() && rec.ReservesMinerals() {
		// Grantor kept the minerals; the deed moves only rights outside
		// this engine's scope.
		return
	}

	if rec.ConveysAllInterest {
		conveyAllInterest(ledger, rec, flags)
		return
	}

	if f := ParseFraction(rec.FractionConveyed); f != nil {
		conveyFixedFraction(ledger, rec, f)
		return
	}

	// No rule matched and no parseable fraction: skipped without a flag,
	// matching the recorded behavior of the chain runs this engine
	// replaces.
}

// conveyAllInterest moves each grantor's entire current balance to the
// grantees in equal shares. A grantor with no positive balance on record,
// or an instrument with no grantees, cannot be resolved mechanically and is
// flagged instead.
func conveyAllInterest(ledger *Ledger, rec *models.InstrumentRecord, flags *[]models.Flag) {
	granteeCount := int64(len(rec.Grantees))
	for _, grantor := range rec.Grantors {
		bal := ledger.Balance(grantor)
		if bal.Sign() <= 0 || granteeCount == 0 {
			*flags = append(*flags, models.Flag{
				DocumentID: rec.DocumentID,
				Note:       fmt.Sprintf("Conveys all interest but unknown grantor share for %s", grantor),
			})
			continue
		}
		share := new(big.Rat).Quo(bal, big.NewRat(granteeCount, 1))
		ledger.Set(grantor, new(big.Rat))
		for _, grantee := range rec.Grantees {
			ledger.Add(grantee, share)
		}
	}
}

// conveyFixedFraction applies an absolute fraction of the whole tract:
// split across grantors on the debit side and grantees on the credit side.
// Grantor balances may swing negative here; the chain as a whole settles by
// the time the report renders, or the clamp zeroes the residue.
func conveyFixedFraction(ledger *Ledger, rec *models.InstrumentRecord, f *big.Rat) {
	if n := int64(len(rec.Grantors)); n > 0 {
		debit := new(big.Rat).Quo(f, big.NewRat(n, 1))
		debit.Neg(debit)
		for _, grantor := range rec.Grantors {
			ledger.Add(grantor, debit)
		}
	}
	if n := int64(len(rec.Grantees)); n > 0 {
		credit := new(big.Rat).Quo(f, big.NewRat(n, 1))
		for _, grantee := range rec.Grantees {
			ledger.Add(grantee, credit)
		}
	}
}
