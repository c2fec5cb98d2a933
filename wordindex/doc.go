/*
Package wordindex builds a concordance of words over a set of documents.

Every occurrence of a word is recorded with its document and byte offset in an
isam.MultiMap keyed by the normalized word, so occurrences of a word form a
contiguous run in document insertion order, and words sharing a prefix are
neighbors. Text is split at Unicode line break opportunities (UAX #14);
HTML documents contribute the content of their text nodes.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package wordindex

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'isam'
func tracer() tracing.Trace {
	return tracing.Select("isam")
}
