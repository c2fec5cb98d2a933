package isam

import (
	"context"

	"github.com/npillmayer/isam/btree"
)

// Watch subscribes to the structural events of a collection created with
// WithEvents. Events arrive on the returned channel, which is closed when ctx
// is done or the collection is closed. Events are dropped for a subscriber
// whose channel buffer of size capacity is full.
func (c *collection[K, V]) Watch(ctx context.Context, capacity int) (<-chan btree.Event, error) {
	if c.cast == nil {
		return nil, ErrNoEvents
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if capacity < 0 {
		capacity = 0
	}
	sub, ok := c.cast.Sub(ctx, uint(capacity))
	if !ok {
		return nil, ErrNoEvents
	}
	out := make(chan btree.Event, capacity)
	go func() {
		defer close(out)
		for msg := range sub {
			e, ok := msg.(btree.Event)
			if !ok {
				continue
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
