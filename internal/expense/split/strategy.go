package split

import (
	"errors"
	"fmt"
	"sort"

	"github.com/splitledger/splitledger/internal/money"
)

// Type identifies a split policy.
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypePercentage Type = "PERCENTAGE"
	TypeExact      Type = "EXACT"
)

// Participant is one member of a split. Percentage is set for
// PERCENTAGE splits, Amount for EXACT splits; both are ignored for
// EQUAL. A nil Amount on an EXACT split defaults to zero.
type Participant struct {
	UserID     string        `json:"user_id"`
	Percentage *float64      `json:"percentage,omitempty"`
	Amount     *money.Amount `json:"amount,omitempty"`
}

// Share is the computed obligation of a single participant for one
// expense. Shares cover every participant, the payer included; how the
// payer nets out is the ledger's concern, not the calculator's.
type Share struct {
	UserID string       `json:"user_id"`
	Amount money.Amount `json:"amount"`
}

// Strategy is the interface all split policies implement.
type Strategy interface {
	// Calculate computes each participant's share of the total.
	// Shares come back in ascending UserID order.
	Calculate(total money.Amount, participants []Participant) ([]Share, error)

	// Type returns the policy identifier.
	Type() Type

	// Validate checks the inputs without computing shares.
	Validate(total money.Amount, participants []Participant) error
}

// Factory creates split strategies based on the requested type.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation for the type.
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrValidation, t)
	}
}

// CreateFromString creates a strategy from a raw string type (useful
// for API requests).
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}

// ErrValidation is the base error every split validation failure wraps;
// callers match the whole family with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("invalid split")

var (
	ErrNoParticipants       = fmt.Errorf("%w: at least one participant is required", ErrValidation)
	ErrDuplicateParticipant = fmt.Errorf("%w: duplicate participant", ErrValidation)
	ErrNonPositiveTotal     = fmt.Errorf("%w: total amount must be positive", ErrValidation)
	ErrSharesMismatch       = fmt.Errorf("%w: shares must equal total", ErrValidation)
	ErrPercentagesSum       = fmt.Errorf("%w: percentages must sum to 100", ErrValidation)
	ErrNegativeShare        = fmt.Errorf("%w: share amounts cannot be negative", ErrValidation)
	ErrPercentageRange      = fmt.Errorf("%w: percentage must be between 0 and 100", ErrValidation)
)

// validateCommon enforces the rules shared by every policy: at least
// one participant, a positive total, no duplicate user IDs.
func validateCommon(total money.Amount, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if total <= 0 {
		return ErrNonPositiveTotal
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, dup := seen[p.UserID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.UserID)
		}
		seen[p.UserID] = struct{}{}
	}
	return nil
}

// sortedByUserID returns a copy of participants in ascending UserID
// order. Remainder cents are handed out in this order, so results are
// reproducible regardless of input ordering.
func sortedByUserID(participants []Participant) []Participant {
	out := make([]Participant, len(participants))
	copy(out, participants)
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
