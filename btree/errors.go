package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrOutOfRange signals a rank outside of the tree's elements.
	ErrOutOfRange = errors.New("btree: rank out of range")
	// ErrNotFound signals that no element matches a key.
	ErrNotFound = errors.New("btree: key not found")
	// ErrDuplicate signals an insert of an existing key into a unique tree.
	ErrDuplicate = errors.New("btree: duplicate key")
	// ErrPolicy signals an operation which the tree's policy does not support,
	// e.g. positional insert into a key-ordered tree.
	ErrPolicy = errors.New("btree: operation not supported by policy")
	// ErrIntegrity signals a violated structural invariant. A tree which
	// reported ErrIntegrity cannot be trusted any more.
	ErrIntegrity = errors.New("btree: integrity violation")
)
