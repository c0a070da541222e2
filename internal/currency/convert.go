// Package currency normalizes foreign-currency amounts into the ledger
// currency. Exchange rates are supplied per expense by the caller; there
// is no live-rate lookup here.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/money"
)

// ErrInvalidRate reports a non-positive exchange rate.
var ErrInvalidRate = errors.New("invalid exchange rate")

// Convert turns an original amount (in its own currency's minor units)
// into the ledger currency: round(original * rate, 2), half up. The
// original amount and currency code stay on the expense record for
// audit; only the converted total participates in the ledger.
func Convert(original money.Amount, rate decimal.Decimal) (money.Amount, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: rate must be positive, got %s", ErrInvalidRate, rate)
	}
	if original <= 0 {
		return 0, fmt.Errorf("%w: original amount must be positive, got %s", money.ErrInvalidAmount, original)
	}
	return money.FromDecimal(original.Decimal().Mul(rate)), nil
}
