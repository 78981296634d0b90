package folio

import (
	"fmt"
	"iter"
	"slices"

	"github.com/openfolio/folio/date"
)

// GrowthPoint is one day's snapshot of the account's totals.
type GrowthPoint struct {
	Date     date.Date
	Invested Money // aggregate cost basis of everything still held
	Market   Money // mark-to-market value of everything still held
	Balance  Money // starting cash plus unrealized gains minus fees
}

// MarshalJSON implements json.Marshaler with a stable field order.
func (p GrowthPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", p.Date)
	w.Append("investedTotal", p.Invested)
	w.Append("marketTotal", p.Market)
	w.Append("balanceTotal", p.Balance)
	return w.MarshalJSON()
}

// AxisPolicy selects which dates enter the valuation axis when symbols
// have non-overlapping price histories.
type AxisPolicy int

const (
	// AxisUnion takes the union of all price dates of the traded
	// symbols. The default.
	AxisUnion AxisPolicy = iota
	// AxisGoverning takes the full price-date range of the earliest
	// traded symbol; other symbols only contribute on those dates.
	AxisGoverning
)

func (p AxisPolicy) String() string {
	switch p {
	case AxisUnion:
		return "union"
	case AxisGoverning:
		return "governing"
	default:
		return "unknown"
	}
}

// ParseAxisPolicy parses a string into an AxisPolicy.
func ParseAxisPolicy(s string) (AxisPolicy, error) {
	switch s {
	case "union", "":
		return AxisUnion, nil
	case "governing":
		return AxisGoverning, nil
	default:
		return 0, fmt.Errorf("unknown axis policy: %q", s)
	}
}

// GrowthSeries reconstructs the day-by-day valuation curve of the
// account from its ledger and the historical prices, spanning from the
// first transaction to the latest priced date.
//
// The valuation is mark-to-market, not realized P&L: every day values
// whatever is still held at that day's close, and carries the held
// position's weighted break-even cost as the invested figure, so
// invested and market track unrealized divergence independently of when
// sales happen.
//
// A held symbol missing a price on a given day contributes 0 to that
// day's market total instead of failing the series. This trades
// strictness for availability on purpose: one gap in a price feed must
// not blank out the whole curve.
//
// The function is pure: identical inputs yield identical output, and
// the emitted dates are strictly increasing with no duplicates.
func GrowthSeries(ledger *Ledger, account Account, market *Market, policy AxisPolicy) ([]GrowthPoint, error) {
	first := ledger.FirstTradeDate()
	if first.IsZero() {
		return nil, nil
	}

	series := make([]GrowthPoint, 0)
	for day := range axis(ledger, market, policy) {
		if day.Before(first) {
			continue
		}

		var invested, marketTotal Money
		for symbol := range ledger.Symbols() {
			if inception, ok := ledger.InceptionDate(symbol); !ok || inception.After(day) {
				continue
			}
			pos, err := ledger.PositionOn(symbol, day)
			if err != nil {
				return nil, fmt.Errorf("corrupt ledger: %w", err)
			}
			invested = invested.Add(pos.Invested)
			if close, ok := market.CloseOn(symbol, day); ok {
				marketTotal = marketTotal.Add(close.Mul(pos.Units))
			}
		}

		balance := account.StartingCash.
			Add(marketTotal).
			Sub(invested).
			Sub(ledger.CumulativeFees(day))

		// Rounding granularity matches the ledger's: sums are finalized
		// to money precision on days a sell happened; pure hold/buy days
		// emit the exact sums, which are already 2-decimal stable.
		if ledger.SellOn(day) {
			invested = invested.Round()
			balance = balance.Round()
		}

		series = append(series, GrowthPoint{
			Date:     day,
			Invested: invested,
			Market:   marketTotal,
			Balance:  balance,
		})
	}
	return series, nil
}

// axis yields the valuation dates in increasing order, per policy.
func axis(ledger *Ledger, market *Market, policy AxisPolicy) iter.Seq[date.Date] {
	switch policy {
	case AxisGoverning:
		governing := ""
		var earliest date.Date
		for symbol := range ledger.Symbols() {
			inception, ok := ledger.InceptionDate(symbol)
			if !ok {
				continue
			}
			if governing == "" || inception.Before(earliest) {
				governing, earliest = symbol, inception
			}
		}
		return date.Iterate(market.History(governing))
	default:
		histories := make([]*date.History[float64], 0)
		for symbol := range ledger.Symbols() {
			histories = append(histories, market.History(symbol))
		}
		return date.Iterate(histories...)
	}
}

// UnrealizedGain returns market minus invested for one point: the
// paper gain on everything still held, independent of realized gains
// from past sells.
func (p GrowthPoint) UnrealizedGain() Money { return p.Market.Sub(p.Invested) }

// Dates extracts the date column of a series.
func Dates(series []GrowthPoint) []date.Date {
	return slices.Collect(func(yield func(date.Date) bool) {
		for _, p := range series {
			if !yield(p.Date) {
				return
			}
		}
	})
}
