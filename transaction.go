package folio

import (
	"encoding/json"
	"time"

	"github.com/openfolio/folio/date"
	"github.com/shopspring/decimal"
)

// TradeType identifies the direction of a trade.
type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// Transaction is one immutable ledger entry. It is created once by
// NewTrade and never mutated; derived figures (positions, growth
// series) are always recomputed from the ledger, never stored back.
type Transaction struct {
	ID         string    // opaque unique identifier
	UserID     string    // owning account
	Symbol     string    // ticker, e.g. "AAPL"
	Sector     string    // classification only, not used in valuation math
	SymbolType string    // classification only, e.g. "stock"
	Date       date.Date // trading date the transaction is priced against
	Type       TradeType
	Units      Quantity // positive number of units traded
	UnitPrice  Money    // execution price per unit

	// Fees is a percentage of Units*UnitPrice, charged only on
	// fee-bearing accounts; zero otherwise.
	Fees Money

	// ReturnValue and ReturnChange are the realized gain and the gain
	// ratio against the break-even price at the moment of sale.
	// Both are zero for buys.
	ReturnValue  Money
	ReturnChange decimal.Decimal

	// PriceFromDate is the date of the price actually used. It differs
	// from Date when the market was closed and the price source
	// substituted the nearest prior close.
	PriceFromDate date.Date

	// DateExecuted is the wall-clock timestamp of ledger insertion.
	// Audit only; it plays no role in any computation.
	DateExecuted time.Time
}

// Gross returns the cash moved by the trade, Units * UnitPrice.
func (t Transaction) Gross() Money { return t.UnitPrice.Mul(t.Units) }

// Equal reports whether two transactions carry the same values.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.UserID == o.UserID &&
		t.Symbol == o.Symbol &&
		t.Sector == o.Sector &&
		t.SymbolType == o.SymbolType &&
		t.Date == o.Date &&
		t.Type == o.Type &&
		t.Units.Equal(o.Units) &&
		t.UnitPrice.Equal(o.UnitPrice) &&
		t.Fees.Equal(o.Fees) &&
		t.ReturnValue.Equal(o.ReturnValue) &&
		t.ReturnChange.Equal(o.ReturnChange) &&
		t.PriceFromDate == o.PriceFromDate &&
		t.DateExecuted.Equal(o.DateExecuted)
}

// MarshalJSON implements json.Marshaler with a stable field order so
// that ledger files stay diff-friendly.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("userId", t.UserID)
	w.Append("symbol", t.Symbol)
	w.Optional("sector", t.Sector)
	w.Optional("symbolType", t.SymbolType)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("units", t.Units)
	w.Append("unitPrice", t.UnitPrice)
	w.Append("transactionFees", t.Fees)
	w.Append("returnValue", t.ReturnValue)
	w.Append("returnChange", t.ReturnChange)
	w.Append("priceFromDate", t.PriceFromDate)
	w.Append("dateExecuted", t.DateExecuted.UTC().Format(time.RFC3339))
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID            string          `json:"id"`
		UserID        string          `json:"userId"`
		Symbol        string          `json:"symbol"`
		Sector        string          `json:"sector"`
		SymbolType    string          `json:"symbolType"`
		Date          date.Date       `json:"date"`
		Type          TradeType       `json:"type"`
		Units         Quantity        `json:"units"`
		UnitPrice     decimal.Decimal `json:"unitPrice"`
		Fees          decimal.Decimal `json:"transactionFees"`
		ReturnValue   decimal.Decimal `json:"returnValue"`
		ReturnChange  decimal.Decimal `json:"returnChange"`
		PriceFromDate date.Date       `json:"priceFromDate"`
		DateExecuted  time.Time       `json:"dateExecuted"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.ID = temp.ID
	t.UserID = temp.UserID
	t.Symbol = temp.Symbol
	t.Sector = temp.Sector
	t.SymbolType = temp.SymbolType
	t.Date = temp.Date
	t.Type = temp.Type
	t.Units = temp.Units
	t.UnitPrice = M(temp.UnitPrice, "")
	t.Fees = M(temp.Fees, "")
	t.ReturnValue = M(temp.ReturnValue, "")
	t.ReturnChange = temp.ReturnChange
	t.PriceFromDate = temp.PriceFromDate
	t.DateExecuted = temp.DateExecuted
	return nil
}

// TradeRequest is the inbound boundary of the engine: what a user (or
// the demo seeder) asks for before any validation or pricing happened.
type TradeRequest struct {
	Symbol     string
	Sector     string
	SymbolType string
	Date       date.Date
	Type       TradeType
	Units      Quantity

	// CustomTotalValue, when non-zero, overrides the historical close:
	// the unit price becomes CustomTotalValue / Units, rounded.
	CustomTotalValue Money
}

// AccountType classifies an account.
type AccountType string

const (
	// AccountDemo is an auto-provisioned leveraged demo account. It
	// starts with simulated cash, must never go cash-negative, and is
	// charged transaction fees.
	AccountDemo AccountType = "demo"
	// AccountStandard tracks a real external portfolio: no cash
	// constraint, no fees.
	AccountStandard AccountType = "standard"
)

// Account carries the classification the factory needs: whether the
// account is fee-bearing, and its starting cash.
type Account struct {
	UserID       string
	Type         AccountType
	Currency     string
	StartingCash Money
	FeeRate      decimal.Decimal // fraction of gross, e.g. 0.0005
}

// Leveraged reports whether buys must pass the cash-sufficiency check.
func (a Account) Leveraged() bool { return a.Type == AccountDemo }

// FeeBearing reports whether trades on this account incur fees.
func (a Account) FeeBearing() bool { return a.Type == AccountDemo && a.FeeRate.IsPositive() }
