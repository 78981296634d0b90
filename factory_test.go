package folio

import (
	"errors"
	"testing"

	"github.com/openfolio/folio/date"
	"github.com/shopspring/decimal"
)

func demoAccount(startingCash float64, feeRate float64) Account {
	return Account{
		UserID:       "demo",
		Type:         AccountDemo,
		Currency:     "USD",
		StartingCash: M(startingCash, "USD"),
		FeeRate:      decimal.NewFromFloat(feeRate),
	}
}

func standardAccount() Account {
	return Account{UserID: "real", Type: AccountStandard, Currency: "USD"}
}

// testMarket holds AAPL closes for the first trading week of 2025.
// There is no close on 2025-01-04 and 2025-01-05 (weekend).
func testMarket() *Market {
	m := NewMarket("USD")
	m.Add("AAPL", date.MustParse("2025-01-02"), 100, 1e6)
	m.Add("AAPL", date.MustParse("2025-01-03"), 102, 1e6)
	m.Add("AAPL", date.MustParse("2025-01-06"), 104, 1e6)
	m.Add("AAPL", date.MustParse("2025-01-07"), 100, 1e6)
	m.Add("AAPL", date.MustParse("2025-01-08"), 130, 1e6)
	return m
}

func TestNewTrade_BuyAtHistoricalClose(t *testing.T) {
	req := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-02"), Type: Buy, Units: Q(10)}
	tx, err := NewTrade(req, standardAccount(), NewLedger(), testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	if !tx.UnitPrice.Equal(M(100, "USD")) {
		t.Errorf("unit price = %s, want 100", tx.UnitPrice)
	}
	if tx.PriceFromDate != req.Date {
		t.Errorf("price from = %s, want %s", tx.PriceFromDate, req.Date)
	}
	if !tx.ReturnValue.IsZero() || !tx.ReturnChange.IsZero() {
		t.Errorf("buy carries return figures: %s, %s", tx.ReturnValue, tx.ReturnChange)
	}
	if tx.ID == "" {
		t.Error("transaction has no ID")
	}
}

func TestNewTrade_WeekendFallsBackToPriorClose(t *testing.T) {
	// Saturday: the market substitutes Friday's close and says so.
	req := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-04"), Type: Buy, Units: Q(1)}
	tx, err := NewTrade(req, standardAccount(), NewLedger(), testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	if !tx.UnitPrice.Equal(M(102, "USD")) {
		t.Errorf("unit price = %s, want Friday's 102", tx.UnitPrice)
	}
	if tx.PriceFromDate != date.MustParse("2025-01-03") {
		t.Errorf("price from = %s, want 2025-01-03", tx.PriceFromDate)
	}
	if tx.Date != req.Date {
		t.Errorf("trade date = %s, want the requested %s", tx.Date, req.Date)
	}
}

func TestNewTrade_CustomTotalValue(t *testing.T) {
	req := TradeRequest{
		Symbol:           "WHATEVER", // no price needed
		Date:             date.MustParse("2025-01-02"),
		Type:             Buy,
		Units:            Q(3),
		CustomTotalValue: M(100, "USD"),
	}
	tx, err := NewTrade(req, standardAccount(), NewLedger(), testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	// 100 / 3 rounded to money precision
	if !tx.UnitPrice.Equal(M(33.33, "USD")) {
		t.Errorf("unit price = %s, want 33.33", tx.UnitPrice)
	}
}

func TestNewTrade_SymbolNotFound(t *testing.T) {
	req := TradeRequest{Symbol: "NOPE", Date: date.MustParse("2025-01-02"), Type: Buy, Units: Q(1)}
	_, err := NewTrade(req, standardAccount(), NewLedger(), testMarket())
	var notFound *SymbolNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("NewTrade() error = %v, want *SymbolNotFoundError", err)
	}
	if notFound.Symbol != "NOPE" {
		t.Errorf("error symbol = %s, want NOPE", notFound.Symbol)
	}
}

func TestNewTrade_InsufficientFunds(t *testing.T) {
	account := demoAccount(1000, 0)
	ledger := NewLedger()

	// First buy fits exactly.
	req := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-02"), Type: Buy, Units: Q(10)}
	tx, err := NewTrade(req, account, ledger, testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	ledger.Append(tx)

	// Second buy exceeds the remaining cash.
	req = TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-03"), Type: Buy, Units: Q(1)}
	_, err = NewTrade(req, account, ledger, testMarket())
	var noFunds *InsufficientFundsError
	if !errors.As(err, &noFunds) {
		t.Fatalf("NewTrade() error = %v, want *InsufficientFundsError", err)
	}
	if !noFunds.Available.IsZero() {
		t.Errorf("available = %s, want 0", noFunds.Available)
	}

	// A sell frees cash committed; the buy then passes.
	sellReq := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-03"), Type: Sell, Units: Q(5)}
	sell, err := NewTrade(sellReq, account, ledger, testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	ledger.Append(sell)
	req = TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-06"), Type: Buy, Units: Q(1)}
	if _, err := NewTrade(req, account, ledger, testMarket()); err != nil {
		t.Fatalf("buy after sell failed: %v", err)
	}
}

func TestNewTrade_StandardAccountSkipsCashCheck(t *testing.T) {
	// Standard accounts track an external portfolio, no cash constraint.
	account := standardAccount()
	req := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-02"), Type: Buy, Units: Q(1e6)}
	if _, err := NewTrade(req, account, NewLedger(), testMarket()); err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
}

func TestNewTrade_SellReturnFigures(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		tradeOn("2025-01-02", Buy, "AAPL", 10, 100),
		tradeOn("2025-01-07", Buy, "AAPL", 5, 100),
	)

	req := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-08"), Type: Sell, Units: Q(5)}
	tx, err := NewTrade(req, standardAccount(), ledger, testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}

	// Break-even is 100; the sell executes at the 130 close.
	if !tx.ReturnValue.Equal(M(150, "USD")) {
		t.Errorf("return value = %s, want 150", tx.ReturnValue)
	}
	if !tx.ReturnChange.Equal(decimal.NewFromFloat(0.3)) {
		t.Errorf("return change = %s, want 0.3", tx.ReturnChange)
	}
}

func TestNewTrade_Oversell(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(tradeOn("2025-01-02", Buy, "AAPL", 10, 100))

	req := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-03"), Type: Sell, Units: Q(11)}
	_, err := NewTrade(req, standardAccount(), ledger, testMarket())
	var oversell *OversellError
	if !errors.As(err, &oversell) {
		t.Fatalf("NewTrade() error = %v, want *OversellError", err)
	}
}

func TestNewTrade_Fees(t *testing.T) {
	account := demoAccount(10000, 0.001)
	req := TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-02"), Type: Buy, Units: Q(10)}
	tx, err := NewTrade(req, account, NewLedger(), testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	// 0.001 * 1000, rounded to money precision
	if !tx.Fees.Equal(M(1, "USD")) {
		t.Errorf("fees = %s, want 1.00", tx.Fees)
	}

	// Standard accounts never pay fees.
	tx, err = NewTrade(req, standardAccount(), NewLedger(), testMarket())
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	if !tx.Fees.IsZero() {
		t.Errorf("fees = %s, want 0", tx.Fees)
	}
}

func TestNewTrade_RejectsInvalidRequests(t *testing.T) {
	testCases := []struct {
		name string
		req  TradeRequest
	}{
		{"zero units", TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-02"), Type: Buy}},
		{"negative units", TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-02"), Type: Buy, Units: Q(-1)}},
		{"unknown type", TradeRequest{Symbol: "AAPL", Date: date.MustParse("2025-01-02"), Type: "SHORT", Units: Q(1)}},
		{"missing date", TradeRequest{Symbol: "AAPL", Type: Buy, Units: Q(1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTrade(tc.req, standardAccount(), NewLedger(), testMarket()); err == nil {
				t.Error("NewTrade() succeeded, want error")
			}
		})
	}
}
