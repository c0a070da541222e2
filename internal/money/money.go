package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in the ledger currency, held as an integer
// number of minor units (cents). All arithmetic happens on minor units;
// conversion to display form only happens at the boundary.
type Amount int64

// Epsilon is the comparison tolerance: one minor unit (0.01 in ledger
// currency). Inputs arrive as rounded decimals and accumulate up to a
// cent of drift across N-way splits, so comparisons against zero or
// against a target total must use the epsilon forms below.
const Epsilon Amount = 1

// ErrInvalidAmount reports malformed or out-of-range monetary input.
var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

// FromMinorUnits builds an Amount from an integer count of minor units.
func FromMinorUnits(n int64) Amount {
	return Amount(n)
}

// MinorUnits returns the amount as an integer count of minor units.
func (a Amount) MinorUnits() int64 {
	return int64(a)
}

// Parse converts a normalized decimal string ("12.34") into an Amount,
// rounding half-up to two places. Locale formatting (comma separators)
// is an adapter concern and is rejected here.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
	}
	return FromDecimal(d), nil
}

// ParsePositive is Parse restricted to strictly positive values.
func ParsePositive(s string) (Amount, error) {
	a, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if a <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, s)
	}
	return a, nil
}

// FromDecimal rounds a decimal half-up to two places and converts it to
// minor units.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Mul(hundred).Round(0).IntPart())
}

// FromFloat converts a display-form float into an Amount, rejecting
// non-finite input.
func FromFloat(v float64) (Amount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: value is not finite", ErrInvalidAmount)
	}
	return FromDecimal(decimal.NewFromFloat(v)), nil
}

// Decimal returns the amount as a two-place decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Float64 returns the display form of the amount. Boundary use only.
func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// String renders the amount with exactly two fractional digits.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return a - b
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return -a
}

// Abs returns the magnitude of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// IsZero reports whether a is within Epsilon of zero.
func (a Amount) IsZero() bool {
	return a.Abs() <= Epsilon
}

// ApproxEqual reports whether a and b differ by at most Epsilon.
func ApproxEqual(a, b Amount) bool {
	return (a - b).Abs() <= Epsilon
}

// Min returns the smaller of a and b.
func Min(a, b Amount) Amount {
	if a < b {
		return a
	}
	return b
}
