package k2tree

import "fmt"

// IndexError is returned when a bit, row or column index falls outside the
// valid range of the structure being addressed.
type IndexError struct {
	Index uint64
	Bound uint64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("k2tree: index %d out of range [0, %d)", e.Index, e.Bound)
}

// ShapeError is returned when a caller-supplied sequence doesn't match the
// length an operation requires (map(iter) against a partition of a
// different size, for instance).
type ShapeError struct {
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("k2tree: expected %d items, got %d", e.Want, e.Got)
}

// ArgumentError is returned for invalid construction parameters: k < 2,
// grow() to a size that isn't a power of k or is smaller than the current
// size, or an addEdges() call that would need to grow the tree behind its
// current origin.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return "k2tree: " + e.Msg
}

// invariantViolation panics to signal internal inconsistency (a bug, not a
// caller error). The hosting framework is expected to abandon and retry the
// partition's upstream construction, the same way the teacher's trie panics
// with "logic error, wrong node type" on a corrupted node union.
func invariantViolation(msg string) {
	panic("k2tree: invariant violation: " + msg)
}

// mustNotError converts an error from a call site where every index was
// computed by this package itself, against bounds it already validated, into
// an invariant violation. A non-nil err here means a bug in this package's
// own bookkeeping, not a caller mistake, so it is never propagated as
// IndexError/ArgumentError/ShapeError.
func mustNotError(err error) {
	if err != nil {
		invariantViolation(err.Error())
	}
}
