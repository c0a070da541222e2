package split

import "github.com/splitledger/splitledger/internal/money"

// EqualStrategy divides the expense equally among all participants.
type EqualStrategy struct{}

// Type returns the split type identifier.
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split.
func (s *EqualStrategy) Validate(total money.Amount, participants []Participant) error {
	return validateCommon(total, participants)
}

// Calculate divides the total into n shares of equal minor-unit base,
// then hands the remainder out one cent at a time to the first
// participants in ascending UserID order. The shares sum to the total
// exactly, never approximately: 100.00 over {a,b,c} yields
// 33.34/33.33/33.33.
func (s *EqualStrategy) Calculate(total money.Amount, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	ordered := sortedByUserID(participants)
	n := int64(len(ordered))
	base := total.MinorUnits() / n
	remainder := total.MinorUnits() - base*n

	shares := make([]Share, len(ordered))
	for i, p := range ordered {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares[i] = Share{
			UserID: p.UserID,
			Amount: money.FromMinorUnits(amount),
		}
	}

	return shares, nil
}
