package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Money is a currency amount held in minor units (cents).
// Storing cents as an integer keeps arithmetic exact; fractions are rounded
// half up when computed. The zero value is a valid zero amount.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money from an amount in minor units.
// Negative amounts are rejected: prices and commission credits are never negative.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Fraction returns num/den of the amount, rounded half up to the nearest cent.
// A 10% commission on 59.90 is Fraction(10, 100) = 5.99.
func (m Money) Fraction(num, den int64) Money {
	return Money{cents: (m.cents*num + den/2) / den}
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount with two decimal places, e.g. "59.90".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
