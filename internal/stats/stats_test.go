package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/money"
)

func amt(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	require.NoError(t, err)
	return a
}

func expenseWith(t *testing.T, total string, cat expense.Category) *expense.Expense {
	t.Helper()
	return &expense.Expense{
		ID:           "e1",
		GroupID:      "g1",
		PayerID:      "alice",
		Total:        amt(t, total),
		Currency:     "EUR",
		ExchangeRate: decimal.NewFromInt(1),
		Original:     amt(t, total),
		Category:     cat,
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAggregate(t *testing.T) {
	records := []expense.Record{
		expenseWith(t, "40.00", expense.CategoryFood),
		expenseWith(t, "15.50", expense.CategoryFood),
		expenseWith(t, "120.00", expense.CategoryAccommodation),
	}

	s := Aggregate(records)
	assert.Equal(t, amt(t, "175.50"), s.TotalSpent)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, amt(t, "55.50"), s.ByCategory[expense.CategoryFood])
	assert.Equal(t, amt(t, "120.00"), s.ByCategory[expense.CategoryAccommodation])
}

func TestAggregate_ExcludesSettlements(t *testing.T) {
	records := []expense.Record{
		expenseWith(t, "40.00", expense.CategoryFood),
		&expense.Settlement{
			ID: "s1", GroupID: "g1",
			FromUserID: "bob", ToUserID: "alice",
			Amount: amt(t, "20.00"),
		},
	}

	s := Aggregate(records)
	assert.Equal(t, amt(t, "40.00"), s.TotalSpent)
	assert.Equal(t, 1, s.Count)
}

func TestAggregate_UnlabeledGoesToOther(t *testing.T) {
	records := []expense.Record{
		expenseWith(t, "10.00", ""),
		expenseWith(t, "5.00", "GROCERIES"),
	}

	s := Aggregate(records)
	assert.Equal(t, amt(t, "15.00"), s.ByCategory[expense.CategoryOther])
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Zero(t, s.TotalSpent)
	assert.Zero(t, s.Count)
	assert.Empty(t, s.ByCategory)
}
