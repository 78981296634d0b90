package folio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// moneyPrecision is the number of decimal places money values carry once
// they are finalized (two, matching USD/EUR minor units).
const moneyPrecision = 2

// Money represents a monetary value with exact decimal arithmetic.
//
// The zero value is a currency-less zero amount that combines freely
// with any other Money.
type Money struct {
	value decimal.Decimal // major unit value
	cur   string
}

// M builds a Money from any supported numeric type and a currency code.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency resolves the full go-money currency for formatting.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency.
	return *money.New(0, m.cur).Currency()
}

// String formats the value with its currency symbol and grouping.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money         { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Div divides the amount by a quantity of units. The caller must guard
// against a zero quantity.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

// Ratio returns m/n as a plain decimal, e.g. for percentage gains.
func (m Money) Ratio(n Money) decimal.Decimal { return m.value.Div(n.value) }

// Round returns the value rounded to the money precision.
// Rounding is half away from zero, uniformly across the engine, so that
// growth reconstruction is reproducible.
func (m Money) Round() Money {
	return Money{value: m.value.Round(moneyPrecision), cur: m.cur}
}

// Decimal exposes the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// InexactFloat64 converts the value for chart plotting. Accounting code
// must stay on the exact representation.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }

// cur merges the currencies of two operands; the "" currency is weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// MarshalJSON encodes the bare decimal amount; the currency travels in a
// sibling field written by the transaction marshalers.
func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

// UnmarshalJSON decodes a bare decimal amount with no currency.
func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }
