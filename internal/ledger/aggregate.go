// Package ledger derives net balances from a group's full expense
// history and reduces them to payment instructions. Everything here is
// pure computation over caller-supplied data: no state is kept between
// calls, so aggregating the same history twice yields the same result.
package ledger

import (
	"errors"
	"fmt"

	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/expense/split"
	"github.com/splitledger/splitledger/internal/money"
)

// BalanceMap holds the signed net position per user. Positive means the
// group owes that user money; negative means the user owes the group.
// For any closed set of records the values sum to (approximately) zero.
type BalanceMap map[string]money.Amount

// ErrInconsistentLedger is returned when the folded balances do not
// conserve. It signals upstream data corruption (a share-sum violation
// in a stored record), not a user input problem.
var ErrInconsistentLedger = errors.New("inconsistent ledger")

// Aggregate folds records into a net balance per user.
//
// A regular expense credits its payer with the full total and debits
// each share's user by the share amount; a payer who also participated
// nets the difference automatically through those two steps. A
// settlement credits the payer and debits the recipient by the settled
// amount, cancelling prior debt without re-splitting anything.
//
// After folding, the conservation invariant is checked: the balances
// must sum to zero within the residue the stored records can
// legitimately carry. PERCENTAGE splits round each share independently
// and may drift from the total by up to one minor unit per share less
// one, so each such record contributes that much headroom; every other
// record contributes a single minor unit (EXACT shares are validated
// within one minor unit of the total at creation). Anything beyond
// that fails with ErrInconsistentLedger rather than returning skewed
// numbers.
func Aggregate(records []expense.Record) (BalanceMap, error) {
	balances := make(BalanceMap)

	for _, r := range records {
		switch rec := r.(type) {
		case *expense.Expense:
			balances[rec.PayerID] = balances[rec.PayerID].Add(rec.Total)
			for _, share := range rec.Shares {
				balances[share.UserID] = balances[share.UserID].Sub(share.Amount)
			}
		case *expense.Settlement:
			balances[rec.FromUserID] = balances[rec.FromUserID].Add(rec.Amount)
			balances[rec.ToUserID] = balances[rec.ToUserID].Sub(rec.Amount)
		default:
			return nil, fmt.Errorf("%w: unknown record type %T", ErrInconsistentLedger, r)
		}
	}

	var sum money.Amount
	for _, b := range balances {
		sum = sum.Add(b)
	}

	if sum.Abs() > conservationTolerance(records) {
		return nil, fmt.Errorf("%w: balances sum to %s", ErrInconsistentLedger, sum)
	}

	return balances, nil
}

// conservationTolerance returns the residue a set of records may carry
// without indicating corruption. A PERCENTAGE expense with n shares can
// drift by up to n-1 minor units; everything else gets one.
func conservationTolerance(records []expense.Record) money.Amount {
	var tolerance money.Amount
	for _, r := range records {
		headroom := money.Epsilon
		if e, ok := r.(*expense.Expense); ok && e.SplitType == split.TypePercentage && len(e.Shares) > 2 {
			headroom = money.Epsilon * money.Amount(len(e.Shares)-1)
		}
		tolerance = tolerance.Add(headroom)
	}
	return max(tolerance, money.Epsilon)
}
