package folio

import (
	"fmt"

	"github.com/openfolio/folio/date"
)

// SymbolNotFoundError reports that the historical price lookup missed
// for the requested symbol and date. Batch callers skip the trade and
// continue; a single missing price never aborts a whole batch.
type SymbolNotFoundError struct {
	Symbol string
	Day    date.Date
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("no historical price for %s on %s", e.Symbol, e.Day)
}

// InsufficientFundsError reports that a buy would take a leveraged
// account cash-negative. No partial transaction is created.
type InsufficientFundsError struct {
	Symbol    string
	Day       date.Date
	Cost      Money
	Available Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("on %s, cannot buy %s for %s, available cash is %s",
		e.Day, e.Symbol, e.Cost, e.Available)
}

// OversellError reports a sell of more units than held. An oversell in
// an already-persisted ledger is a programming error upstream: the fold
// fails loudly instead of clamping, because clamping would silently
// corrupt the cost basis.
type OversellError struct {
	Symbol string
	Day    date.Date
	Units  Quantity
	Held   Quantity
}

func (e *OversellError) Error() string {
	return fmt.Sprintf("on %s, cannot sell %s units of %s, position is only %s",
		e.Day, e.Units, e.Symbol, e.Held)
}
