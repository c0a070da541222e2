package ledger

import (
	"context"

	"github.com/splitledger/splitledger/internal/expense"
)

// RecordSource lists the complete expense history for a group. It must
// return every record for the group; conservation only holds over a
// closed set.
type RecordSource interface {
	ListByGroup(ctx context.Context, groupID string) ([]expense.Record, error)
}

// Service computes group balances and settlement plans. Balances are
// re-derived from the full history on every call, so there is no
// staleness to manage here.
type Service struct {
	records RecordSource
}

// NewService creates a new ledger service.
func NewService(records RecordSource) *Service {
	return &Service{records: records}
}

// Balances returns the net balance per user and the payment
// instructions that settle the group.
func (s *Service) Balances(ctx context.Context, groupID string) (BalanceMap, []Payment, error) {
	records, err := s.records.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	balances, err := Aggregate(records)
	if err != nil {
		return nil, nil, err
	}

	return balances, Simplify(balances), nil
}
