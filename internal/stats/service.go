package stats

import (
	"context"

	"github.com/splitledger/splitledger/internal/expense"
)

// RecordSource lists the expense history for a group.
type RecordSource interface {
	ListByGroup(ctx context.Context, groupID string) ([]expense.Record, error)
}

// Service computes spending statistics for a group.
type Service struct {
	records RecordSource
}

// NewService creates a new stats service.
func NewService(records RecordSource) *Service {
	return &Service{records: records}
}

// GroupStats aggregates the group's expense history.
func (s *Service) GroupStats(ctx context.Context, groupID string) (Stats, error) {
	records, err := s.records.ListByGroup(ctx, groupID)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(records), nil
}
