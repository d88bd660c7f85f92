// Package policy defines the capacity accounting used by the LRU engine.
//
// A Policy is an immutable accounting value: Add and Remove return a new
// Policy instead of mutating the receiver. The engine relies on this to apply
// a change, inspect the outcome, and keep or discard the result.
package policy

import "errors"

// ErrInvalidLimit is returned when a bounded policy is built with a limit <= 0.
var ErrInvalidLimit = errors.New("policy: capacity limit must be positive")

// Outcome reports whether an accounting state is within budget.
type Outcome int

const (
	Accepted Outcome = iota
	Overflow
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Policy accounts for the entries resident in a cache.
//
// Semantics:
//   - Add absorbs one entry and reports Overflow if the result exceeds the budget.
//   - Remove releases an entry previously added with the same key and value.
//   - Empty returns the zero-accounting state with the same configured limit.
//   - Status reports the outcome of the current state without changing it.
//   - ValueAware reports whether the accounting reads values at all; policies
//     that only count entries may be handed zero values.
type Policy[K comparable, V any] interface {
	Add(key K, value V) (Policy[K, V], Outcome)
	Remove(key K, value V) Policy[K, V]
	Empty() Policy[K, V]
	Status() Outcome
	Used() int
	Limit() (int, bool)
	ValueAware() bool
}

func outcome(used, limit int) Outcome {
	if used > limit {
		return Overflow
	}
	return Accepted
}
