package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/expense/split"
	"github.com/splitledger/splitledger/internal/money"
)

// Common errors
var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrNotGroupMember    = errors.New("participant is not a group member")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidRecordKind = errors.New("record is not a regular expense")
)

// MemberLister reports the members of a group. Used to validate that
// every split participant belongs to the group before any shares are
// computed.
type MemberLister interface {
	ListMemberIDs(ctx context.Context, groupID string) ([]string, error)
}

// Store persists expense records. Implemented by Repository.
type Store interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id string) (Record, error)
	ListByGroup(ctx context.Context, groupID string) ([]Record, error)
	Delete(ctx context.Context, id string) error
}

// Service handles expense business logic: share calculation, currency
// normalization, and persistence orchestration. The computation itself
// lives in the split and currency packages; this layer validates input
// and wires them to the store.
type Service struct {
	repo           Store
	members        MemberLister
	splitFactory   *split.Factory
	ledgerCurrency string
}

// NewService creates a new expense service with dependencies injected.
func NewService(repo Store, members MemberLister, splitFactory *split.Factory, ledgerCurrency string) *Service {
	return &Service{
		repo:           repo,
		members:        members,
		splitFactory:   splitFactory,
		ledgerCurrency: ledgerCurrency,
	}
}

// CreateExpense validates the request, converts the amount into the
// ledger currency, computes the shares with the requested strategy, and
// persists the resulting record.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	if req.GroupID == "" || req.PayerID == "" || strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: group_id, payer_id and description are required", ErrMissingField)
	}

	original, err := money.FromFloat(req.Amount)
	if err != nil {
		return nil, err
	}
	if original <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", money.ErrInvalidAmount)
	}

	code := strings.ToUpper(req.Currency)
	if code == "" {
		code = s.ledgerCurrency
	}
	rate := decimal.NewFromFloat(req.ExchangeRate)
	if code == s.ledgerCurrency && req.ExchangeRate == 0 {
		rate = decimal.NewFromInt(1)
	}

	total, err := currency.Convert(original, rate)
	if err != nil {
		return nil, err
	}

	if err := s.checkMembership(ctx, req); err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	participants := make([]split.Participant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i], err = p.ToParticipant()
		if err != nil {
			return nil, err
		}
	}

	shares, err := strategy.Calculate(total, participants)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	e := &Expense{
		GroupID:      req.GroupID,
		PayerID:      req.PayerID,
		Description:  strings.TrimSpace(req.Description),
		Total:        total,
		Currency:     code,
		ExchangeRate: rate,
		Original:     original,
		Category:     Category(req.Category).Normalize(),
		SplitType:    strategy.Type(),
		Shares:       shares,
		Date:         date,
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// checkMembership verifies the payer and every participant belong to
// the group.
func (s *Service) checkMembership(ctx context.Context, req *CreateExpenseRequest) error {
	memberIDs, err := s.members.ListMemberIDs(ctx, req.GroupID)
	if err != nil {
		return err
	}
	members := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}

	if _, ok := members[req.PayerID]; !ok {
		return fmt.Errorf("%w: payer %s", ErrNotGroupMember, req.PayerID)
	}
	for _, p := range req.Participants {
		if _, ok := members[p.UserID]; !ok {
			return fmt.Errorf("%w: %s", ErrNotGroupMember, p.UserID)
		}
	}
	return nil
}

// GetExpenseByID retrieves a regular expense by its ID.
func (s *Service) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e, ok := record.(*Expense)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecordKind, id)
	}
	return e, nil
}

// ListByGroup retrieves all records (expenses and settlements) for a
// group, oldest first.
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]Record, error) {
	return s.repo.ListByGroup(ctx, groupID)
}

// DeleteExpense removes a record entirely. There is no partial
// mutation of shares: edits are modeled as delete-and-recreate.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
