package expense

import (
	"time"

	"github.com/splitledger/splitledger/internal/expense/split"
	"github.com/splitledger/splitledger/internal/money"
)

// ParticipantInput is one split participant as supplied by the caller.
// Percentage applies to PERCENTAGE splits, Amount to EXACT splits.
type ParticipantInput struct {
	UserID     string   `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
}

// CreateExpenseRequest represents the request to create an expense.
// Amount is in the expense's own currency; ExchangeRate converts it
// into the ledger currency (1.0 when already in ledger currency).
type CreateExpenseRequest struct {
	GroupID      string             `json:"group_id"`
	PayerID      string             `json:"payer_id"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency,omitempty"`
	ExchangeRate float64            `json:"exchange_rate,omitempty"`
	Category     string             `json:"category,omitempty"`
	SplitType    string             `json:"split_type"`
	Participants []ParticipantInput `json:"participants"`
	Date         time.Time          `json:"date,omitempty"`
}

// ShareResponse is the display form of one computed share.
type ShareResponse struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// ExpenseResponse represents the response for an expense.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	GroupID        string          `json:"group_id"`
	PayerID        string          `json:"payer_id"`
	Description    string          `json:"description"`
	TotalAmount    float64         `json:"total_amount"`
	Currency       string          `json:"currency"`
	ExchangeRate   float64         `json:"exchange_rate"`
	OriginalAmount float64         `json:"original_amount"`
	Category       string          `json:"category"`
	SplitType      string          `json:"split_type"`
	Shares         []ShareResponse `json:"shares"`
	Date           string          `json:"date"`
	IsSettlement   bool            `json:"is_settlement"`
	CreatedAt      string          `json:"created_at"`
}

// SettlementResponse represents the response for a settlement record.
type SettlementResponse struct {
	ID         string  `json:"id"`
	GroupID    string  `json:"group_id"`
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	CreatedAt  string  `json:"created_at"`
}

const timeFormat = time.RFC3339

// ToResponse converts an Expense model to an ExpenseResponse DTO.
func (e *Expense) ToResponse() *ExpenseResponse {
	rate, _ := e.ExchangeRate.Float64()
	resp := &ExpenseResponse{
		ID:             e.ID,
		GroupID:        e.GroupID,
		PayerID:        e.PayerID,
		Description:    e.Description,
		TotalAmount:    e.Total.Float64(),
		Currency:       e.Currency,
		ExchangeRate:   rate,
		OriginalAmount: e.Original.Float64(),
		Category:       string(e.Category),
		SplitType:      string(e.SplitType),
		Shares:         make([]ShareResponse, len(e.Shares)),
		Date:           e.Date.Format(timeFormat),
		CreatedAt:      e.CreatedAt.Format(timeFormat),
	}
	for i, s := range e.Shares {
		resp.Shares[i] = ShareResponse{UserID: s.UserID, Amount: s.Amount.Float64()}
	}
	return resp
}

// ToResponse converts a Settlement model to a SettlementResponse DTO.
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:         s.ID,
		GroupID:    s.GroupID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount.Float64(),
		Date:       s.Date.Format(timeFormat),
		CreatedAt:  s.CreatedAt.Format(timeFormat),
	}
}

// ToParticipant converts caller input to the split package's type.
// Share amounts round half-up to minor units on the way in.
func (p ParticipantInput) ToParticipant() (split.Participant, error) {
	out := split.Participant{
		UserID:     p.UserID,
		Percentage: p.Percentage,
	}
	if p.Amount != nil {
		a, err := money.FromFloat(*p.Amount)
		if err != nil {
			return split.Participant{}, err
		}
		out.Amount = &a
	}
	return out, nil
}
