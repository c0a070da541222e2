// Package stats folds a group's expenses into spend totals and
// per-category breakdowns for reporting.
package stats

import (
	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/money"
)

// Stats summarizes a group's spending. Settlements are transfers, not
// spending, so they never count toward the totals.
type Stats struct {
	TotalSpent money.Amount
	Count      int
	ByCategory map[expense.Category]money.Amount
}

// Aggregate sums non-settlement expenses and groups them by category.
// Unlabeled categories land in the OTHER bucket.
func Aggregate(records []expense.Record) Stats {
	s := Stats{ByCategory: make(map[expense.Category]money.Amount)}
	for _, r := range records {
		e, ok := r.(*expense.Expense)
		if !ok {
			continue
		}
		cat := e.Category.Normalize()
		s.TotalSpent = s.TotalSpent.Add(e.Total)
		s.Count++
		s.ByCategory[cat] = s.ByCategory[cat].Add(e.Total)
	}
	return s
}
