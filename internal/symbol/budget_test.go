package symbol

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_WithinLimit(t *testing.T) {
	b := NewBudget(3)

	got := slices.Collect(b.Wrap(Word(1, 0, 1)))

	assert.Equal(t, []Symbol{1, 0, 1}, got)
	assert.Equal(t, 3, b.Consumed())
	assert.NoError(t, b.Err())
}

func TestBudget_Exceeded(t *testing.T) {
	b := NewBudget(2)

	got := slices.Collect(b.Wrap(Word(1, 0, 1, 1)))

	assert.Equal(t, []Symbol{1, 0}, got)
	assert.Equal(t, 2, b.Consumed())

	err := b.Err()
	require.Error(t, err)

	var exceeded *BudgetExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 2, exceeded.Limit)
	assert.Contains(t, err.Error(), "budget of 2")
}

func TestBudget_Unlimited(t *testing.T) {
	b := NewBudget(0)

	got := slices.Collect(b.Wrap(Digits(1<<40, 2)))

	assert.Len(t, got, 41)
	assert.NoError(t, b.Err())
	assert.Equal(t, 0, b.Max())
}

func TestBudget_ConsumerStopsEarly(t *testing.T) {
	b := NewBudget(2)

	for range b.Wrap(Word(1, 1, 1, 1)) {
		break
	}

	// the consumer stopped, the budget was never overrun
	assert.Equal(t, 1, b.Consumed())
	assert.NoError(t, b.Err())
}
