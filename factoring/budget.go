package factoring

import "sync/atomic"

// Budget is a cooperative operation-count allowance shared by the stages of
// one factorization call. A non-positive limit means unlimited. Safe for
// concurrent use so the parallel driver can share one budget across workers.
type Budget struct {
	unlimited bool
	remaining atomic.Int64
}

// NewBudget returns a budget allowing limit operations, or an unlimited one
// for limit <= 0.
func NewBudget(limit int64) *Budget {
	b := &Budget{unlimited: limit <= 0}
	if !b.unlimited {
		b.remaining.Add(limit)
	}
	return b
}

// Spend consumes n operations and reports whether the budget still holds.
func (b *Budget) Spend(n int64) bool {
	if b.unlimited {
		return true
	}
	return b.remaining.Add(-n) >= 0
}

// Exhausted reports whether the budget has run out.
func (b *Budget) Exhausted() bool {
	return !b.unlimited && b.remaining.Load() < 0
}
