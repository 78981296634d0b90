package folio

import (
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/openfolio/folio/date"
)

// Ledger is a list of transactions for one account.
//
// In a Ledger transactions are always in chronological order, so that
// position folds and cash figures can stop scanning at their cut-off
// date. Transactions are immutable values; appending keeps the order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Append appends transactions and restores the chronological order.
// The sort is stable: transactions on the same day keep the relative
// order in which they were created, regardless of the order in which
// concurrent factory calls completed.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Transactions returns an iterator over all transactions in
// chronological order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// SymbolTransactions returns an iterator over the given symbol's
// transactions dated on or before max, in chronological order.
func (l *Ledger) SymbolTransactions(symbol string, max date.Date) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if tx.Date.After(max) {
				// The ledger is sorted, so it is safe to stop here.
				return
			}
			if tx.Symbol != symbol {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// FirstTradeDate returns the date of the earliest transaction, or the
// zero date for an empty ledger.
func (l *Ledger) FirstTradeDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].Date
}

// LastTradeDate returns the date of the latest transaction, or the
// zero date for an empty ledger.
func (l *Ledger) LastTradeDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}

// InceptionDate returns the date of the symbol's first transaction.
func (l *Ledger) InceptionDate(symbol string) (date.Date, bool) {
	for _, tx := range l.transactions {
		if tx.Symbol == symbol {
			return tx.Date, true
		}
	}
	return date.Date{}, false
}

// Symbols returns an iterator over the distinct symbols traded in this
// ledger, in alphabetical order for deterministic summation.
func (l *Ledger) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, tx := range l.transactions {
			seen[tx.Symbol] = struct{}{}
		}
		symbols := slices.Collect(maps.Keys(seen))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if !yield(symbol) {
				return
			}
		}
	}
}

// CashCommitted computes the net cash spent on all transactions dated
// on or before asOf: buys add their gross cost, sells subtract their
// gross proceeds. Fees are not part of this figure.
func (l *Ledger) CashCommitted(asOf date.Date) Money {
	var committed Money
	for _, tx := range l.transactions {
		if tx.Date.After(asOf) {
			break
		}
		switch tx.Type {
		case Buy:
			committed = committed.Add(tx.Gross())
		case Sell:
			committed = committed.Sub(tx.Gross())
		}
	}
	return committed
}

// CumulativeFees sums the transaction fees over all transactions dated
// on or before asOf. Fees, once incurred, reduce the cash balance for
// all subsequent dates.
func (l *Ledger) CumulativeFees(asOf date.Date) Money {
	var fees Money
	for _, tx := range l.transactions {
		if tx.Date.After(asOf) {
			break
		}
		fees = fees.Add(tx.Fees)
	}
	return fees
}

// SellOn reports whether at least one sell is dated exactly on the
// given day. The growth engine rounds its sums only on such days.
func (l *Ledger) SellOn(day date.Date) bool {
	for _, tx := range l.transactions {
		if tx.Date.After(day) {
			break
		}
		if tx.Type == Sell && tx.Date == day {
			return true
		}
	}
	return false
}
