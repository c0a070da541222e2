package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/money"
)

func balancesFrom(entries map[string]string) BalanceMap {
	out := make(BalanceMap, len(entries))
	for userID, s := range entries {
		a, err := money.Parse(s)
		if err != nil {
			panic(err)
		}
		out[userID] = a
	}
	return out
}

// applyPayments replays instructions against a copy of the balances.
func applyPayments(balances BalanceMap, payments []Payment) BalanceMap {
	out := make(BalanceMap, len(balances))
	for userID, b := range balances {
		out[userID] = b
	}
	for _, p := range payments {
		out[p.From] = out[p.From].Add(p.Amount)
		out[p.To] = out[p.To].Sub(p.Amount)
	}
	return out
}

func assertAllSettled(t *testing.T, balances BalanceMap) {
	t.Helper()
	for userID, b := range balances {
		assert.True(t, b.IsZero(), "%s left with %s", userID, b)
	}
}

func TestSimplify_TwoParties(t *testing.T) {
	balances := balancesFrom(map[string]string{
		"alice": "10.00",
		"bob":   "-10.00",
	})

	payments := Simplify(balances)
	require.Len(t, payments, 1)
	assert.Equal(t, Payment{From: "bob", To: "alice", Amount: mustAmt("10.00")}, payments[0])
	assertAllSettled(t, applyPayments(balances, payments))
}

func TestSimplify_ThreeWayResidue(t *testing.T) {
	balances := balancesFrom(map[string]string{
		"alice": "6.67",
		"bob":   "-3.33",
		"carol": "-3.34",
	})

	payments := Simplify(balances)
	require.Len(t, payments, 2)
	// Largest debtor first.
	assert.Equal(t, Payment{From: "carol", To: "alice", Amount: mustAmt("3.34")}, payments[0])
	assert.Equal(t, Payment{From: "bob", To: "alice", Amount: mustAmt("3.33")}, payments[1])
	assertAllSettled(t, applyPayments(balances, payments))
}

func TestSimplify_Chain(t *testing.T) {
	balances := balancesFrom(map[string]string{
		"a": "50.00",
		"b": "30.00",
		"c": "-20.00",
		"d": "-60.00",
	})

	payments := Simplify(balances)
	assert.LessOrEqual(t, len(payments), 3, "at most n-1 payments")
	assertAllSettled(t, applyPayments(balances, payments))
}

func TestSimplify_SettledUsersExcluded(t *testing.T) {
	balances := balancesFrom(map[string]string{
		"alice": "5.00",
		"bob":   "-5.00",
		"carol": "0.00",
		"dave":  "0.01", // within epsilon: already settled
	})

	payments := Simplify(balances)
	require.Len(t, payments, 1)
	for _, p := range payments {
		assert.NotEqual(t, "carol", p.From)
		assert.NotEqual(t, "carol", p.To)
		assert.NotEqual(t, "dave", p.From)
		assert.NotEqual(t, "dave", p.To)
	}
}

func TestSimplify_Deterministic(t *testing.T) {
	balances := balancesFrom(map[string]string{
		"b": "10.00",
		"a": "10.00",
		"c": "-10.00",
		"d": "-10.00",
	})

	first := Simplify(balances)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Simplify(balances))
	}
	// Equal magnitudes tie-break on ascending user ID.
	require.Len(t, first, 2)
	assert.Equal(t, "a", first[0].To)
	assert.Equal(t, "c", first[0].From)
}

func TestSimplify_Boundedness(t *testing.T) {
	balances := balancesFrom(map[string]string{
		"u1": "25.00",
		"u2": "25.00",
		"u3": "25.00",
		"u4": "-15.00",
		"u5": "-30.00",
		"u6": "-30.00",
	})

	payments := Simplify(balances)
	assert.LessOrEqual(t, len(payments), 5)
	assertAllSettled(t, applyPayments(balances, payments))

	for _, p := range payments {
		assert.Positive(t, p.Amount.MinorUnits())
	}
}

func TestSimplify_Empty(t *testing.T) {
	assert.Empty(t, Simplify(BalanceMap{}))
	assert.Empty(t, Simplify(nil))
}

func mustAmt(s string) money.Amount {
	a, err := money.Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}
