package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/openfolio/folio/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists ledgers and market data as JSONL: one JSON object
// per line, stable field order, human-readable and git-friendly.

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode transaction %s: %w", tx.ID, err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeLedger writes all transactions, one per line, in ledger order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL stream of transactions and returns a
// chronologically sorted ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("could not decode ledger line %q: %w", string(line), err)
		}
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// pricePoint is the JSONL shape of one day's close for one symbol.
type pricePoint struct {
	Symbol string    `json:"symbol"`
	On     date.Date `json:"on"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// EncodeMarket writes every price point of the market, one per line,
// symbols in alphabetical order, dates in chronological order.
func EncodeMarket(w io.Writer, m *Market) error {
	for symbol := range m.Symbols() {
		for on, close := range m.History(symbol).Values() {
			price, _ := m.Get(symbol, on)
			b, err := json.Marshal(pricePoint{Symbol: symbol, On: on, Close: close, Volume: price.Volume})
			if err != nil {
				return fmt.Errorf("could not encode price for %s on %s: %w", symbol, on, err)
			}
			if _, err := w.Write(append(b, '\n')); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeMarket reads a JSONL stream of price points into a market
// quoting in the given currency.
func DecodeMarket(r io.Reader, currency string) (*Market, error) {
	m := NewMarket(currency)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var p pricePoint
		if err := json.Unmarshal(line, &p); err != nil {
			return nil, fmt.Errorf("could not decode price line %q: %w", string(line), err)
		}
		m.Add(p.Symbol, p.On, p.Close, p.Volume)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
