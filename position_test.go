package folio

import (
	"errors"
	"testing"

	"github.com/openfolio/folio/date"
)

func TestLedger_PositionOn(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		tradeOn("2025-01-10", Buy, "AAPL", 100, 150),
		tradeOn("2025-01-15", Buy, "GOOG", 50, 2800),
		tradeOn("2025-02-01", Sell, "AAPL", 25, 160),
		tradeOn("2025-02-10", Buy, "AAPL", 10, 155),
		tradeOn("2025-03-01", Sell, "GOOG", 50, 2900),
	)

	testCases := []struct {
		name         string
		symbol       string
		day          string
		wantUnits    float64
		wantInvested float64
	}{
		{"before any transactions", "AAPL", "2025-01-09", 0, 0},
		{"on the day of the first buy", "AAPL", "2025-01-10", 100, 15000},
		{"after first buy, before sell", "AAPL", "2025-01-31", 100, 15000},
		// sell removes units at break-even (150), not at the 160 sale price
		{"on the day of the sell", "AAPL", "2025-02-01", 75, 11250},
		{"on the day of the second buy", "AAPL", "2025-02-10", 85, 12800},
		{"final position for AAPL", "AAPL", "2025-04-01", 85, 12800},
		{"GOOG position after buy", "GOOG", "2025-01-20", 50, 140000},
		{"GOOG fully sold", "GOOG", "2025-04-01", 0, 0},
		{"symbol never traded", "MSFT", "2025-04-01", 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ledger.PositionOn(tc.symbol, date.MustParse(tc.day))
			if err != nil {
				t.Fatalf("PositionOn() error = %v", err)
			}
			if !pos.Units.Equal(Q(tc.wantUnits)) {
				t.Errorf("units = %s, want %v", pos.Units, tc.wantUnits)
			}
			if !pos.Invested.Equal(M(tc.wantInvested, "USD")) && !(tc.wantInvested == 0 && pos.Invested.IsZero()) {
				t.Errorf("invested = %s, want %v", pos.Invested, tc.wantInvested)
			}
		})
	}
}

func TestPosition_BreakEvenUnchangedBySells(t *testing.T) {
	// Break-even is a weighted average of buys only. Any sequence of
	// sells that leaves units held must not move it.
	ledger := NewLedger()
	ledger.Append(
		tradeOn("2025-01-02", Buy, "AAPL", 10, 100),
		tradeOn("2025-01-07", Buy, "AAPL", 5, 100),
	)
	before, err := ledger.PositionOn("AAPL", date.MustParse("2025-01-07"))
	if err != nil {
		t.Fatal(err)
	}
	want := before.BreakEvenPrice()

	ledger.Append(
		tradeOn("2025-01-08", Sell, "AAPL", 5, 130),
		tradeOn("2025-01-09", Sell, "AAPL", 3, 90),
	)
	for _, day := range []string{"2025-01-08", "2025-01-09"} {
		pos, err := ledger.PositionOn("AAPL", date.MustParse(day))
		if err != nil {
			t.Fatal(err)
		}
		if !pos.BreakEvenPrice().Equal(want) {
			t.Errorf("break-even on %s = %s, want %s", day, pos.BreakEvenPrice(), want)
		}
	}
}

func TestPosition_BreakEvenWeightedAverage(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		tradeOn("2025-01-02", Buy, "AAPL", 10, 100),
		tradeOn("2025-01-03", Buy, "AAPL", 5, 130),
	)
	pos, err := ledger.PositionOn("AAPL", date.MustParse("2025-01-03"))
	if err != nil {
		t.Fatal(err)
	}
	// (1000 + 650) / 15 = 110
	if !pos.BreakEvenPrice().Equal(M(110, "USD")) {
		t.Errorf("break-even = %s, want 110", pos.BreakEvenPrice())
	}
}

func TestPosition_ZeroUnitsBreakEven(t *testing.T) {
	var pos Position
	if !pos.BreakEvenPrice().IsZero() {
		t.Errorf("empty position break-even = %s, want 0", pos.BreakEvenPrice())
	}
}

func TestLedger_PositionOnOversell(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		tradeOn("2025-01-02", Buy, "AAPL", 10, 100),
		tradeOn("2025-01-03", Sell, "AAPL", 11, 130),
	)
	_, err := ledger.PositionOn("AAPL", date.MustParse("2025-01-03"))
	var oversell *OversellError
	if !errors.As(err, &oversell) {
		t.Fatalf("PositionOn() error = %v, want *OversellError", err)
	}
	if oversell.Symbol != "AAPL" || !oversell.Units.Equal(Q(11)) || !oversell.Held.Equal(Q(10)) {
		t.Errorf("unexpected oversell details: %+v", oversell)
	}
}
