package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "plain", in: "12.34", want: 1234},
		{name: "integer", in: "40", want: 4000},
		{name: "one decimal place", in: "0.5", want: 50},
		{name: "rounds half up", in: "10.005", want: 1001},
		{name: "rounds sub-cent down", in: "33.333", want: 3333},
		{name: "negative allowed", in: "-5.00", want: -500},
		{name: "empty", in: "", wantErr: true},
		{name: "non-numeric", in: "abc", wantErr: true},
		{name: "comma separator rejected", in: "1,50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.MinorUnits())
		})
	}
}

func TestParsePositive(t *testing.T) {
	_, err := ParsePositive("-1.00")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParsePositive("0")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	a, err := ParsePositive("0.01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.MinorUnits())
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.34", FromMinorUnits(1234).String())
	assert.Equal(t, "0.05", FromMinorUnits(5).String())
	assert.Equal(t, "-7.00", FromMinorUnits(-700).String())
}

func TestFromDecimalRounding(t *testing.T) {
	d := decimal.RequireFromString("36.004999")
	assert.Equal(t, int64(3600), FromDecimal(d).MinorUnits())

	d = decimal.RequireFromString("36.005")
	assert.Equal(t, int64(3601), FromDecimal(d).MinorUnits())
}

func TestEpsilonComparisons(t *testing.T) {
	assert.True(t, FromMinorUnits(0).IsZero())
	assert.True(t, FromMinorUnits(1).IsZero())
	assert.True(t, FromMinorUnits(-1).IsZero())
	assert.False(t, FromMinorUnits(2).IsZero())

	assert.True(t, ApproxEqual(FromMinorUnits(1000), FromMinorUnits(1001)))
	assert.False(t, ApproxEqual(FromMinorUnits(1000), FromMinorUnits(1002)))
}

func TestArithmetic(t *testing.T) {
	a := FromMinorUnits(7550)
	b := FromMinorUnits(2450)
	assert.Equal(t, int64(10000), a.Add(b).MinorUnits())
	assert.Equal(t, int64(5100), a.Sub(b).MinorUnits())
	assert.Equal(t, int64(-7550), a.Neg().MinorUnits())
	assert.Equal(t, int64(7550), a.Neg().Abs().MinorUnits())
	assert.Equal(t, b, Min(a, b))
}
