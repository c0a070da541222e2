package split

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/money"
)

// PercentageStrategy divides the expense according to a percentage per
// participant. Percentages must sum to 100 within 0.01.
type PercentageStrategy struct{}

// Type returns the split type identifier.
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks if the inputs are valid for a percentage split. A
// participant without a percentage counts as 0.
func (s *PercentageStrategy) Validate(total money.Amount, participants []Participant) error {
	if err := validateCommon(total, participants); err != nil {
		return err
	}

	var sum float64
	for _, p := range participants {
		pct := participantPercentage(p)
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: %s has %v", ErrPercentageRange, p.UserID, pct)
		}
		sum += pct
	}

	if math.Abs(sum-100) > 0.01 {
		return fmt.Errorf("%w: got %v", ErrPercentagesSum, sum)
	}
	return nil
}

// Calculate rounds each participant's slice of the total to two places
// independently: share = round(total * pct / 100, 2). Because the
// shares round independently, their sum can drift from the total by up
// to n-1 minor units; that residue is accepted and not redistributed,
// unlike EQUAL.
func (s *PercentageStrategy) Calculate(total money.Amount, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	totalDec := total.Decimal()
	ordered := sortedByUserID(participants)
	shares := make([]Share, len(ordered))
	for i, p := range ordered {
		pct := decimal.NewFromFloat(participantPercentage(p))
		amount := totalDec.Mul(pct).Div(decimal.NewFromInt(100))
		shares[i] = Share{
			UserID: p.UserID,
			Amount: money.FromDecimal(amount),
		}
	}

	return shares, nil
}

func participantPercentage(p Participant) float64 {
	if p.Percentage == nil {
		return 0
	}
	return *p.Percentage
}
