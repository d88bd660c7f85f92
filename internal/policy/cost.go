package policy

// CostFunc weighs a single entry. Negative costs count as zero.
type CostFunc[K comparable, V any] func(key K, value V) int

// cost bounds the summed cost of resident entries.
type cost[K comparable, V any] struct {
	used  int
	limit int
	fn    CostFunc[K, V]
}

// Cost returns a policy that keeps the sum of fn over resident entries <= limit.
//
// An entry whose own cost exceeds limit can never be admitted; the engine
// rejects it before it is linked.
func Cost[K comparable, V any](limit int, fn CostFunc[K, V]) (Policy[K, V], error) {
	if fn == nil {
		panic("policy: nil cost func")
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return cost[K, V]{limit: limit, fn: fn}, nil
}

type blob interface {
	~[]byte | ~string
}

// Bytes returns a Cost policy weighing each entry by len(value).
func Bytes[K comparable, V blob](limit int) (Policy[K, V], error) {
	return Cost[K, V](limit, func(_ K, v V) int { return len(v) })
}

func (c cost[K, V]) weigh(key K, value V) int {
	if w := c.fn(key, value); w > 0 {
		return w
	}
	return 0
}

func (c cost[K, V]) Add(key K, value V) (Policy[K, V], Outcome) {
	c.used += c.weigh(key, value)
	return c, outcome(c.used, c.limit)
}

func (c cost[K, V]) Remove(key K, value V) Policy[K, V] {
	c.used -= c.weigh(key, value)
	if c.used < 0 {
		c.used = 0
	}
	return c
}

func (c cost[K, V]) Empty() Policy[K, V] { return cost[K, V]{limit: c.limit, fn: c.fn} }

func (c cost[K, V]) Status() Outcome { return outcome(c.used, c.limit) }

func (c cost[K, V]) Used() int { return c.used }

func (c cost[K, V]) Limit() (int, bool) { return c.limit, true }

func (c cost[K, V]) ValueAware() bool { return true }
