package engine

import "math/big"

// Ledger accumulates each party's fractional interest while the instrument
// chain replays. Party names are case-preserving keys. Insertion order is
// kept so that replaying the same chain always renders rows in the same
// order, which the determinism guarantee requires of a map-backed ledger.
type Ledger struct {
	balances map[string]*big.Rat
	order    []string
}

// LedgerEntry is one party's balance, exposed in insertion order.
type LedgerEntry struct {
	Owner   string
	Balance *big.Rat
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]*big.Rat)}
}

// Balance returns a copy of the party's current balance, zero if the party
// has never appeared. Callers get an explicit zero, never a nil.
func (l *Ledger) Balance(owner string) *big.Rat {
	if bal, ok := l.balances[owner]; ok {
		return new(big.Rat).Set(bal)
	}
	return new(big.Rat)
}

// Set replaces the party's balance, registering the party on first touch.
func (l *Ledger) Set(owner string, v *big.Rat) {
	if _, ok := l.balances[owner]; !ok {
		l.order = append(l.order, owner)
	}
	l.balances[owner] = new(big.Rat).Set(v)
}

// Add adjusts the party's balance by delta, registering the party on first
// touch. Negative intermediate balances are allowed; the report builder
// clamps at render time.
func (l *Ledger) Add(owner string, delta *big.Rat) {
	bal, ok := l.balances[owner]
	if !ok {
		l.order = append(l.order, owner)
		bal = new(big.Rat)
		l.balances[owner] = bal
	}
	bal.Add(bal, delta)
}

// Entries returns every party's balance in insertion order.
func (l *Ledger) Entries() []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(l.order))
	for _, owner := range l.order {
		entries = append(entries, LedgerEntry{Owner: owner, Balance: new(big.Rat).Set(l.balances[owner])})
	}
	return entries
}

// Prune drops parties whose balance magnitude is below epsilon. Those are
// exactly-zero positions (offsetting conveyances), not rounding artifacts
// worth reporting.
func (l *Ledger) Prune(epsilon float64) {
	kept := l.order[:0]
	for _, owner := range l.order {
		f, _ := l.balances[owner].Float64()
		if f >= -epsilon && f <= epsilon {
			delete(l.balances, owner)
			continue
		}
		kept = append(kept, owner)
	}
	l.order = kept
}
