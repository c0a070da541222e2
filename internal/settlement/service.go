package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/money"
)

// Common errors
var (
	ErrCannotSettleSelf = errors.New("cannot create settlement with yourself")
	ErrNotGroupMember   = errors.New("settlement user is not a group member")
)

// Store persists settlement records. Implemented by expense.Repository:
// a settlement is a synthetic entry in the same ledger, not a separate
// entity with its own lifecycle.
type Store interface {
	CreateSettlement(ctx context.Context, s *expense.Settlement) error
}

// Service records direct payments between group members. A recorded
// settlement takes effect immediately in the ledger; there is no
// pending/confirmed workflow here.
type Service struct {
	store   Store
	members expense.MemberLister
}

// NewService creates a new settlement service.
func NewService(store Store, members expense.MemberLister) *Service {
	return &Service{store: store, members: members}
}

// CreateSettlement validates and records a payment of amount from one
// user to another within a group.
func (s *Service) CreateSettlement(ctx context.Context, req *CreateSettlementRequest) (*expense.Settlement, error) {
	if req.GroupID == "" || req.FromUserID == "" || req.ToUserID == "" {
		return nil, fmt.Errorf("%w: group_id, from_user_id and to_user_id are required", expense.ErrMissingField)
	}
	if req.FromUserID == req.ToUserID {
		return nil, ErrCannotSettleSelf
	}

	amount, err := money.FromFloat(req.Amount)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: settlement amount must be positive", money.ErrInvalidAmount)
	}

	memberIDs, err := s.members.ListMemberIDs(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	members := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}
	for _, userID := range []string{req.FromUserID, req.ToUserID} {
		if _, ok := members[userID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotGroupMember, userID)
		}
	}

	record := &expense.Settlement{
		GroupID:    req.GroupID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     amount,
		Date:       time.Now().UTC(),
	}
	if err := s.store.CreateSettlement(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
