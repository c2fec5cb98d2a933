package rwlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadersShareLock(t *testing.T) {
	l := New(50 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, l.AcquireRead(ctx))
	require.NoError(t, l.AcquireRead(ctx))
	assert.False(t, l.TryAcquireWrite(), "writer must wait for readers")
	l.Release()
	l.Release()
	assert.True(t, l.TryAcquireWrite())
	l.Release()
}

func TestWriterExcludesReaders(t *testing.T) {
	l := New(20 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, l.AcquireWrite(ctx))
	err := l.AcquireRead(ctx)
	assert.ErrorIs(t, err, ErrLockTimeout)
	err = l.AcquireWrite(ctx)
	assert.ErrorIs(t, err, ErrLockTimeout)
	l.Release()
	require.NoError(t, l.AcquireRead(ctx))
	l.Release()
}

func TestCancelledContextIsNotTimeout(t *testing.T) {
	l := New(0)
	require.NoError(t, l.AcquireWrite(context.Background()))
	defer l.Release()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.AcquireRead(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLockTimeout)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWritersAreExclusive(t *testing.T) {
	l := New(0)
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if err := l.AcquireWrite(context.Background()); err != nil {
					t.Error(err)
					return
				}
				n := inside.Add(1)
				if n > maxInside.Load() {
					maxInside.Store(n)
				}
				inside.Add(-1)
				l.Release()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside.Load())
}
