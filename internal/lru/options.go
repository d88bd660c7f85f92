package lru

// Strictness controls when values passed to InsertFunc are computed.
//
// It only changes how long a pending func and its captures are retained;
// the values callers observe are the same either way.
type Strictness int

const (
	// Eager computes the value during InsertFunc.
	Eager Strictness = iota
	// Lazy stores the func and computes it on first read.
	Lazy
)

func (s Strictness) String() string {
	switch s {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// Option configures a Cache at construction.
type Option func(*options)

type options struct {
	strictness Strictness
}

// WithStrictness selects Eager (default) or Lazy evaluation for InsertFunc.
func WithStrictness(s Strictness) Option {
	return func(o *options) {
		o.strictness = s
	}
}
