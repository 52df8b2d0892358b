package rebalance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the portfolio currency.
// All cash, price and fee arithmetic is exact decimal arithmetic; nothing is
// rounded until display time.
type Money struct {
	value decimal.Decimal
}

// M builds a Money from a float. Convenient for literals in code and tests.
func M(value float64) Money { return Money{value: decimal.NewFromFloat(value)} }

// MoneyFromDecimal builds a Money from an exact decimal value.
func MoneyFromDecimal(value decimal.Decimal) Money { return Money{value: value} }

// String formats the value as currency, rounded to cents. The portfolio is
// single-currency so the dollar formatter is fixed.
func (m Money) String() string {
	cur := money.GetCurrency(money.USD)
	cents := m.value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(cents)
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// MulQuantity returns the value of q units priced at m.
func (m Money) MulQuantity(q int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(q))}
}

// Decimal returns the exact underlying value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Percent represents a fraction, typically in [0, 1] (1 means 100%).
type Percent struct {
	value decimal.Decimal
}

// P builds a Percent from a float fraction (0.25 means 25%).
func P(value float64) Percent { return Percent{value: decimal.NewFromFloat(value)} }

// PercentFromDecimal builds a Percent from an exact decimal fraction.
func PercentFromDecimal(value decimal.Decimal) Percent { return Percent{value: value} }

var percentOne = decimal.NewFromInt(1)

// InRange reports whether the fraction lies in [0, 1].
func (p Percent) InRange() bool {
	return !p.value.IsNegative() && p.value.LessThanOrEqual(percentOne)
}

func (p Percent) Equal(q Percent) bool       { return p.value.Equal(q.value) }
func (p Percent) IsZero() bool               { return p.value.IsZero() }
func (p Percent) Add(q Percent) Percent      { return Percent{value: p.value.Add(q.value)} }
func (p Percent) GreaterThanOne() bool       { return p.value.GreaterThan(percentOne) }

// Of apportions a monetary value by the fraction.
func (p Percent) Of(m Money) Money { return Money{value: m.value.Mul(p.value)} }

// String formats the fraction as a percentage, e.g. "25.0%".
func (p Percent) String() string {
	return p.value.Shift(2).StringFixed(1) + "%"
}
