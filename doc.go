/*
Package isam offers in-memory indexed collections with both positional and
keyed access.

ISAM

Every collection of this package is backed by an order-statistics B+ tree
(package btree). Elements are addressed either by their absolute position
(rank) or by key, and both kinds of lookup run in logarithmic time. This makes
the collections useful where a sorted set has to answer "what is the 1000th
element?" or a sequence has to support inserts in the middle without
shifting a large slice around.

Collections

  - Vector: a sequence addressed by rank,
  - Set: unique keys in ascending order,
  - Map: one value per key, in ascending key order,
  - MultiMap: many values per key, kept in insertion order within a key,
  - StringMap: a Map with string keys, optionally case-insensitive.

All collections may be guarded by a read/write lock (see WithLock and
WithLockTimeout), report structural changes of their tree to subscribers (see
WithEvents and Watch), and may be shared with explicit reference counting
(see Shared).

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the License file for details.

*/
package isam

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
