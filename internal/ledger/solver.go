package ledger

import (
	"sort"

	"github.com/splitledger/splitledger/internal/money"
)

// Payment instructs one user to pay another. Amount is always positive.
type Payment struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Amount money.Amount `json:"amount"`
}

// Simplify reduces a balance map to a list of payments that, applied in
// order (subtracting from From, adding to To), bring every balance to
// within one minor unit of zero.
//
// The algorithm greedily matches the largest creditor against the
// largest debtor, emitting min(credit, |debt|) each round. It is
// deterministic (ties break on ascending user ID), terminates in at
// most n-1 payments for n non-settled users, and always zeroes every
// balance given conservation holds. It is a heuristic: the result is
// not guaranteed to be the globally minimal transaction count, so
// callers must rely only on correctness and the n-1 bound.
func Simplify(balances BalanceMap) []Payment {
	type entry struct {
		userID  string
		balance money.Amount
	}

	var creditors, debtors []entry
	for userID, b := range balances {
		switch {
		case b > money.Epsilon:
			creditors = append(creditors, entry{userID, b})
		case b < -money.Epsilon:
			debtors = append(debtors, entry{userID, b.Neg()})
		}
	}

	// Descending magnitude, ascending user ID on ties. Re-sorted after
	// every match so the next round again pairs the largest remaining
	// creditor with the largest remaining debtor.
	byMagnitude := func(entries []entry) func(i, j int) bool {
		return func(i, j int) bool {
			if entries[i].balance != entries[j].balance {
				return entries[i].balance > entries[j].balance
			}
			return entries[i].userID < entries[j].userID
		}
	}

	var payments []Payment
	for len(creditors) > 0 && len(debtors) > 0 {
		sort.Slice(creditors, byMagnitude(creditors))
		sort.Slice(debtors, byMagnitude(debtors))
		creditor := &creditors[0]
		debtor := &debtors[0]

		amount := money.Min(creditor.balance, debtor.balance)
		payments = append(payments, Payment{
			From:   debtor.userID,
			To:     creditor.userID,
			Amount: amount,
		})

		creditor.balance = creditor.balance.Sub(amount)
		debtor.balance = debtor.balance.Sub(amount)
		if creditor.balance <= money.Epsilon {
			creditors = creditors[1:]
		}
		if debtor.balance <= money.Epsilon {
			debtors = debtors[1:]
		}
	}

	return payments
}
