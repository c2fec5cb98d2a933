package isam

import (
	"errors"

	"github.com/npillmayer/isam/btree"
	"github.com/npillmayer/isam/rwlock"
)

// Errors of collection operations. They are shared with package btree, so
// errors.Is works with either.
var (
	// ErrNotFound signals that no element matches a key.
	ErrNotFound = btree.ErrNotFound
	// ErrIndexOutOfBounds is flagged whenever a position is not less than the
	// length of a collection (or greater, for inserts).
	ErrIndexOutOfBounds = btree.ErrOutOfRange
	// ErrDuplicate signals an insert of an existing key into a unique
	// collection.
	ErrDuplicate = btree.ErrDuplicate
	// ErrIntegrity signals a corrupted collection. A collection which
	// reported ErrIntegrity rejects all further operations.
	ErrIntegrity = btree.ErrIntegrity
	// ErrLockTimeout signals that a collection's lock could not be acquired
	// in time.
	ErrLockTimeout = rwlock.ErrLockTimeout
	// ErrPolicy signals an operation the collection's kind does not support.
	ErrPolicy = btree.ErrPolicy
	// ErrIllegalArguments is flagged whenever function parameters are invalid.
	ErrIllegalArguments = btree.ErrInvalidConfig
	// ErrReleased signals use of a shared handle after its last release.
	ErrReleased = errors.New("isam: shared collection has been released")
	// ErrNoEvents signals a subscription to a collection created without
	// WithEvents.
	ErrNoEvents = errors.New("isam: collection does not publish events")
)
