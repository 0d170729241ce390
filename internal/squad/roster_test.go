package squad

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/model"
)

func ath(name string, pos model.Position, price float64) model.Athlete {
	return model.Athlete{Name: name, Club: "Club", Position: pos, Price: price}
}

func TestCanAdmit_Budget(t *testing.T) {
	r := New("user", 10, model.DefaultQuotas())
	r.Add(ath("A", model.Defender, 6))

	err := r.CanAdmit(ath("B", model.Defender, 4.5))
	assert.True(t, errors.Is(err, apperr.ErrInsufficientBudget))

	assert.NoError(t, r.CanAdmit(ath("C", model.Defender, 4)), "spending to exactly zero is allowed")
}

func TestCanAdmit_Quota(t *testing.T) {
	r := New("user", 100, model.DefaultQuotas())
	r.Add(ath("G1", model.Goalkeeper, 5))
	r.Add(ath("G2", model.Goalkeeper, 6))

	err := r.CanAdmit(ath("G3", model.Goalkeeper, 1))
	assert.True(t, errors.Is(err, apperr.ErrPositionLimitReached))
	assert.NoError(t, r.CanAdmit(ath("D1", model.Defender, 1)))
}

func TestSell_InvalidIndex(t *testing.T) {
	r := New("user", 100, model.DefaultQuotas())
	_, err := r.Sell(1)
	assert.True(t, errors.Is(err, apperr.ErrInvalidIndex), "empty roster")

	r.Add(ath("A", model.Attacker, 7))
	r.Add(ath("B", model.Defender, 5))
	for _, idx := range []int{0, -1, 3} {
		_, err := r.Sell(idx)
		assert.True(t, errors.Is(err, apperr.ErrInvalidIndex), "index %d", idx)
	}
	assert.Equal(t, 2, r.Len(), "roster unchanged after failed sells")
	assert.Equal(t, 88.0, r.Remaining())
}

func TestSell_ShiftsAndRefunds(t *testing.T) {
	r := New("user", 100, model.DefaultQuotas())
	r.Add(ath("A", model.Attacker, 7))
	r.Add(ath("B", model.Defender, 5))
	r.Add(ath("C", model.Midfielder, 6.5))

	sold, err := r.Sell(2)
	require.NoError(t, err)
	assert.Equal(t, "B", sold.Name)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Index)
	assert.Equal(t, "C", list[1].Name)
	assert.Equal(t, 2, list[1].Index)
	assert.Equal(t, 100-7-6.5, r.Remaining())
}

func TestBuyThenSellRestoresBudget(t *testing.T) {
	r := New("user", 100, model.DefaultQuotas())
	r.Add(ath("A", model.Attacker, 7.3))
	r.Add(ath("B", model.Defender, 4.1))
	before := r.Remaining()

	r.Add(ath("C", model.Midfielder, 6.7))
	_, err := r.Sell(3)
	require.NoError(t, err)
	assert.Equal(t, before, r.Remaining())
}

func TestClear_RestoresInitialBudget(t *testing.T) {
	r := New("user", 100, model.DefaultQuotas())
	prices := []float64{4.5, 5.5, 7.1, 9.9, 3.3}
	for i, p := range prices {
		r.Add(ath(string(rune('A'+i)), model.Midfielder, p))
	}

	out := r.Clear()
	assert.Len(t, out, len(prices))
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 100.0, r.Remaining())
}

func TestFullAndCounts(t *testing.T) {
	r := New("user", 1000, model.DefaultQuotas())
	assert.False(t, r.Full())
	for pos, n := range model.DefaultQuotas() {
		for i := 0; i < n; i++ {
			r.Add(ath(string(pos)+string(rune('0'+i)), pos, 1))
		}
	}
	assert.True(t, r.Full())
	assert.Equal(t, model.SquadSize, r.Len())
	assert.Equal(t, 3, r.Counts()[model.Attacker])
}

func TestAdd_ResetsPoints(t *testing.T) {
	r := New("user", 100, model.DefaultQuotas())
	a := ath("A", model.Attacker, 7)
	a.Points = 12
	r.Add(a)
	assert.Equal(t, 0, r.Members()[0].Points)

	r.SetPoints(0, 5)
	assert.Equal(t, 5, r.List()[0].Points)
}

func TestCanAdmit_ExactRemainingWithInexactPrices(t *testing.T) {
	r := New("user", 1.0, model.DefaultQuotas())
	r.Add(ath("A", model.Midfielder, 0.1))
	r.Add(ath("B", model.Midfielder, 0.2))

	// 1.0 - (0.1 + 0.2) is 0.6999999999999999 in float64.
	assert.NoError(t, r.CanAdmit(ath("C", model.Midfielder, 0.7)))
	assert.True(t, errors.Is(r.CanAdmit(ath("D", model.Midfielder, 0.71)), apperr.ErrInsufficientBudget))
}
