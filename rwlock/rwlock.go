/*
Package rwlock provides the read/write lock guarding isam collections.

Readers share the lock, writers hold it exclusively. Acquisition is first come,
first served: a waiting writer blocks readers arriving after it. Every
acquisition may be bounded by a timeout, in which case it fails with
ErrLockTimeout.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package rwlock

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/semaphore"
)

// tracer writes to trace with key 'isam'
func tracer() tracing.Trace {
	return tracing.Select("isam")
}

// ErrLockTimeout is returned if a lock could not be acquired in time.
var ErrLockTimeout = errors.New("rwlock: timeout acquiring lock")

// Locker is the mutual exclusion interface collections use. Release releases
// whatever the caller acquired last.
type Locker interface {
	AcquireRead(ctx context.Context) error
	AcquireWrite(ctx context.Context) error
	Release()
}

// capacity is the weight of a writer; every reader holds weight 1.
const capacity = 1 << 30

// Lock is a Locker on top of a weighted semaphore.
type Lock struct {
	sem     *semaphore.Weighted
	timeout time.Duration
	writer  atomic.Bool
}

var _ Locker = (*Lock)(nil)

// New creates a lock. A timeout of 0 waits forever (or until the context
// passed to an acquire call is done).
func New(timeout time.Duration) *Lock {
	return &Lock{
		sem:     semaphore.NewWeighted(capacity),
		timeout: timeout,
	}
}

// Timeout returns the acquisition timeout of the lock.
func (l *Lock) Timeout() time.Duration {
	return l.timeout
}

// AcquireRead acquires shared access.
func (l *Lock) AcquireRead(ctx context.Context) error {
	return l.acquire(ctx, 1, "read")
}

// AcquireWrite acquires exclusive access.
func (l *Lock) AcquireWrite(ctx context.Context) error {
	if err := l.acquire(ctx, capacity, "write"); err != nil {
		return err
	}
	l.writer.Store(true)
	return nil
}

// TryAcquireRead acquires shared access without blocking.
func (l *Lock) TryAcquireRead() bool {
	return l.sem.TryAcquire(1)
}

// TryAcquireWrite acquires exclusive access without blocking.
func (l *Lock) TryAcquireWrite() bool {
	if !l.sem.TryAcquire(capacity) {
		return false
	}
	l.writer.Store(true)
	return true
}

// Release releases shared or exclusive access. While a writer holds the lock
// no reader does, so the writer flag tells which one to release.
func (l *Lock) Release() {
	if l.writer.CompareAndSwap(true, false) {
		l.sem.Release(capacity)
		return
	}
	l.sem.Release(1)
}

func (l *Lock) acquire(ctx context.Context, weight int64, mode string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	err := l.sem.Acquire(ctx, weight)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		tracer().Infof("isam: %s lock not acquired within %v", mode, l.timeout)
		return fmt.Errorf("%w: %s access", ErrLockTimeout, mode)
	}
	return err
}
