package policy

// count bounds the number of resident entries.
type count[K comparable, V any] struct {
	n     int
	limit int
}

// Count returns an entry-count policy admitting at most limit entries.
func Count[K comparable, V any](limit int) (Policy[K, V], error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return count[K, V]{limit: limit}, nil
}

func (c count[K, V]) Add(_ K, _ V) (Policy[K, V], Outcome) {
	c.n++
	return c, outcome(c.n, c.limit)
}

func (c count[K, V]) Remove(_ K, _ V) Policy[K, V] {
	if c.n > 0 {
		c.n--
	}
	return c
}

func (c count[K, V]) Empty() Policy[K, V] { return count[K, V]{limit: c.limit} }

func (c count[K, V]) Status() Outcome { return outcome(c.n, c.limit) }

func (c count[K, V]) Used() int { return c.n }

func (c count[K, V]) Limit() (int, bool) { return c.limit, true }

func (c count[K, V]) ValueAware() bool { return false }

// unlimited accepts everything and keeps no accounting.
type unlimited[K comparable, V any] struct{}

// Unlimited returns a policy that never overflows.
func Unlimited[K comparable, V any]() Policy[K, V] { return unlimited[K, V]{} }

func (u unlimited[K, V]) Add(_ K, _ V) (Policy[K, V], Outcome) { return u, Accepted }

func (u unlimited[K, V]) Remove(_ K, _ V) Policy[K, V] { return u }

func (u unlimited[K, V]) Empty() Policy[K, V] { return u }

func (unlimited[K, V]) Status() Outcome { return Accepted }

func (unlimited[K, V]) Used() int { return 0 }

func (unlimited[K, V]) Limit() (int, bool) { return 0, false }

func (unlimited[K, V]) ValueAware() bool { return false }
