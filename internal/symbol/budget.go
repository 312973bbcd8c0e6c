package symbol

import (
	"fmt"
	"iter"
)

// Budget bounds how many symbols a caller feeds into a membership query.
//
// Membership queries themselves have no iteration limit: a query over an
// unbounded sequence runs until the sequence ends. Callers that accept
// sequences from outside (the harness, the CLI) wrap them in a Budget.
//
// A Budget is single-use and not safe for concurrent use.
type Budget struct {
	max      int // <= 0 means unlimited
	consumed int
	exceeded bool
}

// NewBudget creates a budget allowing at most max symbols.
// A non-positive max disables the limit.
func NewBudget(max int) *Budget {
	return &Budget{max: max}
}

// Wrap returns a sequence yielding at most the budgeted number of symbols
// from seq. If seq has more, the overrun is recorded and reported by Err.
func (b *Budget) Wrap(seq iter.Seq[Symbol]) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for s := range seq {
			if b.max > 0 && b.consumed >= b.max {
				b.exceeded = true
				return
			}
			b.consumed++
			if !yield(s) {
				return
			}
		}
	}
}

// Consumed returns how many symbols have passed through the budget.
func (b *Budget) Consumed() int {
	return b.consumed
}

// Max returns the configured limit (<= 0 when unlimited).
func (b *Budget) Max() int {
	return b.max
}

// Err returns a *BudgetExceededError if a wrapped sequence was cut short.
func (b *Budget) Err() error {
	if !b.exceeded {
		return nil
	}
	return &BudgetExceededError{Limit: b.max}
}

// BudgetExceededError reports a sequence longer than its budget. The query
// result computed over the truncated prefix must be discarded.
type BudgetExceededError struct {
	Limit int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("symbol sequence exceeds budget of %d symbols", e.Limit)
}
