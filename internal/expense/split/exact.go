package split

import (
	"fmt"

	"github.com/splitledger/splitledger/internal/money"
)

// ExactStrategy lets each participant owe a caller-specified amount.
// The amounts must reconcile to the total within one minor unit.
type ExactStrategy struct{}

// Type returns the split type identifier.
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks if the inputs are valid for an exact split. A
// participant without an amount defaults to zero.
func (s *ExactStrategy) Validate(total money.Amount, participants []Participant) error {
	if err := validateCommon(total, participants); err != nil {
		return err
	}

	var sum money.Amount
	for _, p := range participants {
		amount := participantAmount(p)
		if amount < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeShare, p.UserID)
		}
		sum = sum.Add(amount)
	}

	if !money.ApproxEqual(sum, total) {
		return fmt.Errorf("%w: got %s, want %s", ErrSharesMismatch, sum, total)
	}
	return nil
}

// Calculate returns the specified amount for each participant.
func (s *ExactStrategy) Calculate(total money.Amount, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	ordered := sortedByUserID(participants)
	shares := make([]Share, len(ordered))
	for i, p := range ordered {
		shares[i] = Share{
			UserID: p.UserID,
			Amount: participantAmount(p),
		}
	}

	return shares, nil
}

func participantAmount(p Participant) money.Amount {
	if p.Amount == nil {
		return 0
	}
	return *p.Amount
}
