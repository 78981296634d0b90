package folio

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_RoundHalfAwayFromZero(t *testing.T) {
	testCases := []struct {
		value float64
		want  float64
	}{
		{2.344, 2.34},
		{2.345, 2.35},
		{2.346, 2.35},
		{-2.345, -2.35},
		{100, 100},
	}
	for _, tc := range testCases {
		got := M(tc.value, "USD").Round()
		if !got.Equal(M(tc.want, "USD")) {
			t.Errorf("M(%v).Round() = %s, want %v", tc.value, got, tc.want)
		}
	}
}

func TestMoney_DivAndRatio(t *testing.T) {
	price := M(1500, "USD").Div(Q(15))
	if !price.Equal(M(100, "USD")) {
		t.Errorf("1500/15 = %s, want 100", price)
	}

	change := M(30, "USD").Ratio(M(100, "USD"))
	if !change.Equal(decimal.NewFromFloat(0.3)) {
		t.Errorf("30/100 = %s, want 0.3", change)
	}
}

func TestMoney_WeakCurrencyMerge(t *testing.T) {
	// The zero Money has no currency and adopts the other operand's.
	var zero Money
	sum := zero.Add(M(10, "EUR"))
	if sum.Currency() != "EUR" {
		t.Errorf("currency = %q, want EUR", sum.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("adding USD to EUR did not panic")
		}
	}()
	M(1, "USD").Add(M(1, "EUR"))
}

func TestMoney_ExactArithmetic(t *testing.T) {
	// 0.1 + 0.2 is exactly 0.3 in decimal, unlike float64.
	sum := M(0.1, "USD").Add(M(0.2, "USD"))
	if !sum.Equal(M(0.3, "USD")) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", sum)
	}
}
