package folio

import (
	"github.com/openfolio/folio/date"
)

// Position is the derived state of one symbol's holdings: units held
// and their aggregate cost basis. It is never persisted, only
// recomputed on demand by folding the ledger.
type Position struct {
	Symbol   string
	Units    Quantity
	Invested Money // aggregate cost basis of the units still held
}

// BreakEvenPrice returns the weighted-average cost per unit held.
// By convention it is 0 when no units are held; callers must not use
// the break-even price of an empty position.
func (p Position) BreakEvenPrice() Money {
	if p.Units.IsZero() {
		return M(0, p.Invested.Currency())
	}
	return p.Invested.Div(p.Units)
}

// apply folds a single transaction into the position.
//
// A buy adds its gross cost to the basis. A sell removes units at the
// break-even price in force before that sell; the break-even price
// itself is a weighted average of buys only and is never recomputed
// from a sale price.
func (p Position) apply(tx Transaction) (Position, error) {
	switch tx.Type {
	case Buy:
		p.Invested = p.Invested.Add(tx.Gross())
		p.Units = p.Units.Add(tx.Units)
	case Sell:
		if tx.Units.GreaterThan(p.Units) {
			return p, &OversellError{Symbol: p.Symbol, Day: tx.Date, Units: tx.Units, Held: p.Units}
		}
		breakEven := p.BreakEvenPrice()
		p.Invested = p.Invested.Sub(breakEven.Mul(tx.Units))
		p.Units = p.Units.Sub(tx.Units)
	}
	return p, nil
}

// PositionOn folds the symbol's transactions dated on or before asOf,
// in chronological order, into its Position. Pure; no side effects.
func (l *Ledger) PositionOn(symbol string, asOf date.Date) (Position, error) {
	pos := Position{Symbol: symbol}
	var err error
	for tx := range l.SymbolTransactions(symbol, asOf) {
		if pos, err = pos.apply(tx); err != nil {
			return pos, err
		}
	}
	return pos, nil
}
