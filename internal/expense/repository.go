package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/expense/split"
	"github.com/splitledger/splitledger/internal/money"
)

// Repository persists expense and settlement records. Both kinds share
// one table with an is_settlement flag; the flag is mapped back onto
// the Record sum type at scan time so nothing above this layer ever
// branches on it.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a regular expense and its shares. The record's
// ID and CreatedAt are filled in on success.
func (r *Repository) CreateExpense(ctx context.Context, e *Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO expenses (id, group_id, payer_id, description, total_amount, currency, exchange_rate, original_amount, category, split_type, is_settlement, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11, $12)
	`
	_, err = tx.ExecContext(ctx, query,
		e.ID,
		e.GroupID,
		e.PayerID,
		e.Description,
		e.Total.String(),
		e.Currency,
		e.ExchangeRate.String(),
		e.Original.String(),
		string(e.Category),
		string(e.SplitType),
		e.Date,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	shareQuery := `
		INSERT INTO expense_shares (expense_id, user_id, amount)
		VALUES ($1, $2, $3)
	`
	for _, share := range e.Shares {
		if _, err := tx.ExecContext(ctx, shareQuery, e.ID, share.UserID, share.Amount.String()); err != nil {
			return fmt.Errorf("failed to create share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// CreateSettlement inserts a settlement record. Settlements reuse the
// expenses table: payer_id holds the paying user, settle_to_user_id
// the recipient.
func (r *Repository) CreateSettlement(ctx context.Context, s *Settlement) error {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO expenses (id, group_id, payer_id, settle_to_user_id, description, total_amount, currency, exchange_rate, original_amount, category, split_type, is_settlement, date, created_at)
		VALUES ($1, $2, $3, $4, 'Settlement', $5, '', '1', $5, 'OTHER', '', TRUE, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.GroupID,
		s.FromUserID,
		s.ToUserID,
		s.Amount.String(),
		s.Date,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create settlement: %w", err)
	}
	return nil
}

// GetByID retrieves a single record by ID.
func (r *Repository) GetByID(ctx context.Context, id string) (Record, error) {
	query := `
		SELECT id, group_id, payer_id, settle_to_user_id, description, total_amount, currency, exchange_rate, original_amount, category, split_type, is_settlement, date, created_at
		FROM expenses
		WHERE id = $1
	`
	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if e, ok := record.(*Expense); ok {
		if err := r.loadShares(ctx, map[string]*Expense{e.ID: e}); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// ListByGroup retrieves every record for a group, oldest first. The
// full history is always returned; ledger conservation only holds over
// a closed set.
func (r *Repository) ListByGroup(ctx context.Context, groupID string) ([]Record, error) {
	query := `
		SELECT id, group_id, payer_id, settle_to_user_id, description, total_amount, currency, exchange_rate, original_amount, category, split_type, is_settlement, date, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY date ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var records []Record
	expenses := make(map[string]*Expense)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		records = append(records, record)
		if e, ok := record.(*Expense); ok {
			expenses[e.ID] = e
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	if err := r.loadShares(ctx, expenses); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes a record and its shares entirely.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrExpenseNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// loadShares attaches shares to the given expenses in one query.
func (r *Repository) loadShares(ctx context.Context, expenses map[string]*Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	ids := make([]string, 0, len(expenses))
	for id := range expenses {
		ids = append(ids, id)
	}

	query := `
		SELECT expense_id, user_id, amount
		FROM expense_shares
		WHERE expense_id = ANY($1)
		ORDER BY user_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, userID, amountStr string
		if err := rows.Scan(&expenseID, &userID, &amountStr); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		amount, err := money.Parse(amountStr)
		if err != nil {
			return fmt.Errorf("corrupt share amount for expense %s: %w", expenseID, err)
		}
		if e, ok := expenses[expenseID]; ok {
			e.Shares = append(e.Shares, split.Share{UserID: userID, Amount: amount})
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord maps one expenses row onto the Record sum type.
func scanRecord(row rowScanner) (Record, error) {
	var (
		id, groupID, payerID, description            string
		settleTo                                     sql.NullString
		totalStr, currencyCode, rateStr, originalStr string
		category, splitType                          string
		isSettlement                                 bool
		date, createdAt                              time.Time
	)
	err := row.Scan(&id, &groupID, &payerID, &settleTo, &description, &totalStr, &currencyCode, &rateStr, &originalStr, &category, &splitType, &isSettlement, &date, &createdAt)
	if err != nil {
		return nil, err
	}

	total, err := money.Parse(totalStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt total for record %s: %w", id, err)
	}

	if isSettlement {
		return &Settlement{
			ID:         id,
			GroupID:    groupID,
			FromUserID: payerID,
			ToUserID:   settleTo.String,
			Amount:     total,
			Date:       date,
			CreatedAt:  createdAt,
		}, nil
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt exchange rate for record %s: %w", id, err)
	}
	original, err := money.Parse(originalStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt original amount for record %s: %w", id, err)
	}

	return &Expense{
		ID:           id,
		GroupID:      groupID,
		PayerID:      payerID,
		Description:  description,
		Total:        total,
		Currency:     currencyCode,
		ExchangeRate: rate,
		Original:     original,
		Category:     Category(category),
		SplitType:    split.Type(splitType),
		Date:         date,
		CreatedAt:    createdAt,
	}, nil
}
