package folio

import (
	"iter"
	"maps"
	"slices"

	"github.com/openfolio/folio/date"
)

// Price is one day's closing data for a symbol.
type Price struct {
	Date   date.Date
	Close  Money
	Volume float64
}

// PriceSource is the boundary contract the engine depends on: a point
// lookup with a well-defined miss signal. Staleness, retries and
// storage are entirely the provider's concern.
//
// Get uses as-of semantics: when the market was closed on the requested
// day, the nearest prior close is substituted and the returned Price
// carries the date it actually comes from.
type PriceSource interface {
	Get(symbol string, on date.Date) (Price, bool)
}

// Market is an in-memory PriceSource backed by per-symbol daily close
// histories. It is handed to the growth engine as an explicit
// dependency, never hidden inside a service instance, so the engine
// stays pure and testable.
type Market struct {
	currency string
	closes   map[string]*date.History[float64]
	volumes  map[string]*date.History[float64]
}

// NewMarket returns an empty market quoting in the given currency.
func NewMarket(currency string) *Market {
	return &Market{
		currency: currency,
		closes:   make(map[string]*date.History[float64]),
		volumes:  make(map[string]*date.History[float64]),
	}
}

// Currency returns the currency the market quotes in.
func (m *Market) Currency() string { return m.currency }

// Add records one day's close (and volume) for a symbol, replacing any
// previous value for that day.
func (m *Market) Add(symbol string, on date.Date, close float64, volume float64) {
	if _, ok := m.closes[symbol]; !ok {
		m.closes[symbol] = &date.History[float64]{}
		m.volumes[symbol] = &date.History[float64]{}
	}
	m.closes[symbol].Append(on, close)
	m.volumes[symbol].Append(on, volume)
}

// Has reports whether the market holds any price for the symbol.
func (m *Market) Has(symbol string) bool {
	h, ok := m.closes[symbol]
	return ok && h.Len() > 0
}

// Get implements PriceSource with as-of (nearest prior) semantics.
func (m *Market) Get(symbol string, on date.Date) (Price, bool) {
	h, ok := m.closes[symbol]
	if !ok {
		return Price{}, false
	}
	day, close, ok := h.ValueAsOf(on)
	if !ok {
		return Price{}, false
	}
	volume, _ := m.volumes[symbol].Get(day)
	return Price{Date: day, Close: M(close, m.currency), Volume: volume}, true
}

// CloseOn returns the close recorded exactly on the given day. The
// growth engine uses this strict lookup: a symbol missing a price for a
// day simply contributes nothing to that day's market total.
func (m *Market) CloseOn(symbol string, on date.Date) (Money, bool) {
	h, ok := m.closes[symbol]
	if !ok {
		return Money{}, false
	}
	close, ok := h.Get(on)
	if !ok {
		return Money{}, false
	}
	return M(close, m.currency), true
}

// History exposes the symbol's close history, e.g. for axis building.
func (m *Market) History(symbol string) *date.History[float64] {
	if h, ok := m.closes[symbol]; ok {
		return h
	}
	return &date.History[float64]{}
}

// Symbols returns an iterator over the symbols with prices, sorted.
func (m *Market) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		symbols := slices.Collect(maps.Keys(m.closes))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if !yield(symbol) {
				return
			}
		}
	}
}
