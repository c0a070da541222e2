package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/expense/split"
	"github.com/splitledger/splitledger/internal/money"
)

// Category classifies what an expense was for.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryAccommodation Category = "ACCOMMODATION"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryOther         Category = "OTHER"
)

// Normalize maps unknown or empty categories to OTHER.
func (c Category) Normalize() Category {
	switch c {
	case CategoryFood, CategoryTransport, CategoryAccommodation, CategoryEntertainment, CategoryOther:
		return c
	default:
		return CategoryOther
	}
}

// Record is the sum type over the two kinds of group ledger entries: a
// regular shared expense or a direct settlement payment between two
// members. Consumers switch on the concrete type, which keeps both
// cases exhaustively checkable instead of branching on a bool flag.
type Record interface {
	Group() string
	record()
}

// Expense is a shared cost paid by one member and split across
// participants. Total is always denominated in the ledger currency;
// Original and Currency preserve the pre-conversion amount for audit.
// Records are immutable once created: edits replace the whole record,
// there is no partial mutation of shares.
type Expense struct {
	ID           string
	GroupID      string
	PayerID      string
	Description  string
	Total        money.Amount
	Currency     string
	ExchangeRate decimal.Decimal
	Original     money.Amount
	Category     Category
	SplitType    split.Type
	Shares       []split.Share
	Date         time.Time
	CreatedAt    time.Time
}

func (e *Expense) Group() string { return e.GroupID }
func (e *Expense) record()       {}

// Settlement records a direct payment from one member to another that
// pays down prior debt. It carries no shares and never re-triggers
// split calculation; the ledger folds it as payer +amount, recipient
// -amount.
type Settlement struct {
	ID         string
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     money.Amount
	Date       time.Time
	CreatedAt  time.Time
}

func (s *Settlement) Group() string { return s.GroupID }
func (s *Settlement) record()       {}
