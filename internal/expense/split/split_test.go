package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/money"
)

func amt(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	require.NoError(t, err)
	return a
}

func amtPtr(t *testing.T, s string) *money.Amount {
	a := amt(t, s)
	return &a
}

func pct(v float64) *float64 {
	return &v
}

func users(ids ...string) []Participant {
	out := make([]Participant, len(ids))
	for i, id := range ids {
		out[i] = Participant{UserID: id}
	}
	return out
}

func sumShares(shares []Share) money.Amount {
	var sum money.Amount
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for _, typ := range []Type{TypeEqual, TypeExact, TypePercentage} {
		strategy, err := f.Create(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, strategy.Type())
	}

	_, err := f.CreateFromString("HALFSIES")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEqual_ExactDistribution(t *testing.T) {
	strategy := &EqualStrategy{}

	shares, err := strategy.Calculate(amt(t, "100.00"), users("c", "a", "b"))
	require.NoError(t, err)
	require.Len(t, shares, 3)

	// Deterministic order: ascending user ID, first participant takes
	// the extra cent.
	assert.Equal(t, Share{UserID: "a", Amount: amt(t, "33.34")}, shares[0])
	assert.Equal(t, Share{UserID: "b", Amount: amt(t, "33.33")}, shares[1])
	assert.Equal(t, Share{UserID: "c", Amount: amt(t, "33.33")}, shares[2])
	assert.Equal(t, amt(t, "100.00"), sumShares(shares))
}

func TestEqual_NoRemainder(t *testing.T) {
	strategy := &EqualStrategy{}

	shares, err := strategy.Calculate(amt(t, "90.00"), users("a", "b", "c"))
	require.NoError(t, err)
	for _, s := range shares {
		assert.Equal(t, amt(t, "30.00"), s.Amount)
	}
}

func TestEqual_SumIsExactForAwkwardTotals(t *testing.T) {
	strategy := &EqualStrategy{}

	tests := []struct {
		total string
		n     int
	}{
		{total: "0.01", n: 3},
		{total: "0.05", n: 4},
		{total: "99.99", n: 7},
		{total: "1.00", n: 6},
	}

	for _, tt := range tests {
		ids := make([]string, tt.n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		shares, err := strategy.Calculate(amt(t, tt.total), users(ids...))
		require.NoError(t, err)
		assert.Equal(t, amt(t, tt.total).MinorUnits(), sumShares(shares).MinorUnits(),
			"total %s over %d participants", tt.total, tt.n)
	}
}

func TestEqual_InputOrderDoesNotMatter(t *testing.T) {
	strategy := &EqualStrategy{}
	total := amt(t, "10.00")

	a, err := strategy.Calculate(total, users("u1", "u2", "u3"))
	require.NoError(t, err)
	b, err := strategy.Calculate(total, users("u3", "u1", "u2"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestExact_Valid(t *testing.T) {
	strategy := &ExactStrategy{}

	shares, err := strategy.Calculate(amt(t, "100.00"), []Participant{
		{UserID: "b", Amount: amtPtr(t, "40.00")},
		{UserID: "a", Amount: amtPtr(t, "60.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, Share{UserID: "a", Amount: amt(t, "60.00")}, shares[0])
	assert.Equal(t, Share{UserID: "b", Amount: amt(t, "40.00")}, shares[1])
}

func TestExact_RejectsMismatch(t *testing.T) {
	strategy := &ExactStrategy{}

	_, err := strategy.Calculate(amt(t, "100.00"), []Participant{
		{UserID: "a", Amount: amtPtr(t, "60.00")},
		{UserID: "b", Amount: amtPtr(t, "30.00")},
	})
	assert.ErrorIs(t, err, ErrSharesMismatch)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExact_MissingAmountDefaultsToZero(t *testing.T) {
	strategy := &ExactStrategy{}

	shares, err := strategy.Calculate(amt(t, "50.00"), []Participant{
		{UserID: "a", Amount: amtPtr(t, "50.00")},
		{UserID: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, amt(t, "0.00"), shares[1].Amount)
}

func TestExact_ToleratesOneCentDrift(t *testing.T) {
	strategy := &ExactStrategy{}

	_, err := strategy.Calculate(amt(t, "100.00"), []Participant{
		{UserID: "a", Amount: amtPtr(t, "50.00")},
		{UserID: "b", Amount: amtPtr(t, "50.01")},
	})
	assert.NoError(t, err)
}

func TestExact_RejectsNegativeShare(t *testing.T) {
	strategy := &ExactStrategy{}

	_, err := strategy.Calculate(amt(t, "100.00"), []Participant{
		{UserID: "a", Amount: amtPtr(t, "110.00")},
		{UserID: "b", Amount: amtPtr(t, "-10.00")},
	})
	assert.ErrorIs(t, err, ErrNegativeShare)
}

func TestPercentage_Valid(t *testing.T) {
	strategy := &PercentageStrategy{}

	shares, err := strategy.Calculate(amt(t, "200.00"), []Participant{
		{UserID: "a", Percentage: pct(25)},
		{UserID: "b", Percentage: pct(75)},
	})
	require.NoError(t, err)
	assert.Equal(t, amt(t, "50.00"), shares[0].Amount)
	assert.Equal(t, amt(t, "150.00"), shares[1].Amount)
}

func TestPercentage_RejectsBadSum(t *testing.T) {
	strategy := &PercentageStrategy{}

	_, err := strategy.Calculate(amt(t, "100.00"), []Participant{
		{UserID: "a", Percentage: pct(60)},
		{UserID: "b", Percentage: pct(35)},
	})
	assert.ErrorIs(t, err, ErrPercentagesSum)
}

func TestPercentage_RejectsOutOfRange(t *testing.T) {
	strategy := &PercentageStrategy{}

	_, err := strategy.Calculate(amt(t, "100.00"), []Participant{
		{UserID: "a", Percentage: pct(150)},
		{UserID: "b", Percentage: pct(-50)},
	})
	assert.ErrorIs(t, err, ErrPercentageRange)
}

func TestPercentage_ResidueNotRedistributed(t *testing.T) {
	strategy := &PercentageStrategy{}

	// Three-way 33.33/33.33/33.34 of 0.10: each share rounds
	// independently, so the sum may miss the total by a cent or two.
	shares, err := strategy.Calculate(amt(t, "0.10"), []Participant{
		{UserID: "a", Percentage: pct(33.33)},
		{UserID: "b", Percentage: pct(33.33)},
		{UserID: "c", Percentage: pct(33.34)},
	})
	require.NoError(t, err)

	// round(0.10*33.33/100) = 0.03, round(0.10*33.34/100) = 0.03
	assert.Equal(t, int64(3), shares[0].Amount.MinorUnits())
	assert.Equal(t, int64(3), shares[1].Amount.MinorUnits())
	assert.Equal(t, int64(3), shares[2].Amount.MinorUnits())
	assert.Equal(t, int64(9), sumShares(shares).MinorUnits())
}

func TestPercentage_ToleranceOnSum(t *testing.T) {
	strategy := &PercentageStrategy{}

	err := strategy.Validate(amt(t, "100.00"), []Participant{
		{UserID: "a", Percentage: pct(33.33)},
		{UserID: "b", Percentage: pct(33.33)},
		{UserID: "c", Percentage: pct(33.33)},
	})
	assert.NoError(t, err, "99.99 is within the 0.01 tolerance")
}

func TestCommonValidation(t *testing.T) {
	for _, strategy := range []Strategy{&EqualStrategy{}, &ExactStrategy{}, &PercentageStrategy{}} {
		t.Run(string(strategy.Type()), func(t *testing.T) {
			_, err := strategy.Calculate(amt(t, "10.00"), nil)
			assert.ErrorIs(t, err, ErrNoParticipants)

			_, err = strategy.Calculate(amt(t, "0.00"), users("a"))
			assert.ErrorIs(t, err, ErrNonPositiveTotal)

			_, err = strategy.Calculate(amt(t, "-5.00"), users("a"))
			assert.ErrorIs(t, err, ErrNonPositiveTotal)

			_, err = strategy.Calculate(amt(t, "10.00"), users("a", "a"))
			assert.ErrorIs(t, err, ErrDuplicateParticipant)
		})
	}
}
