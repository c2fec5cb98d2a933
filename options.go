package isam

import (
	"time"

	"github.com/google/uuid"
	"github.com/npillmayer/isam/btree"
	"github.com/npillmayer/isam/rwlock"
)

// Option configures a collection at construction time.
type Option func(*options)

type options struct {
	name        string
	lock        rwlock.Locker
	strict      btree.Strictness
	events      bool
	onIntegrity func(error)
}

func collectOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.name == "" {
		o.name = uuid.NewString()
	}
	return o
}

// WithLock guards the collection with a caller-provided lock. Lookups and
// iteration acquire it for reading, mutations for writing.
func WithLock(l rwlock.Locker) Option {
	return func(o *options) {
		o.lock = l
	}
}

// WithLockTimeout guards the collection with a new read/write lock. Acquiring
// the lock fails with ErrLockTimeout after d; d = 0 waits forever.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lock = rwlock.New(d)
	}
}

// WithStrict selects panics (true) or ErrIntegrity errors (false) for
// detected corruption. Without this option the build default applies.
func WithStrict(strict bool) Option {
	return func(o *options) {
		if strict {
			o.strict = btree.StrictOn
		} else {
			o.strict = btree.StrictOff
		}
	}
}

// WithIntegrityHandler installs a function called for every detected
// integrity violation.
func WithIntegrityHandler(fn func(error)) Option {
	return func(o *options) {
		o.onIntegrity = fn
	}
}

// WithName names the collection, e.g. for metrics. Unnamed collections get
// a random UUID.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithEvents makes the collection publish structural tree events (node
// spawns and dissolves, root grows and shrinks). See Watch.
func WithEvents() Option {
	return func(o *options) {
		o.events = true
	}
}
