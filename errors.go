package octree

import "fmt"

// ErrEmptyTree is returned by [Tree.Root] when the tree holds no items.
var ErrEmptyTree = fmt.Errorf("octree: empty tree has no root")

// ErrUnderspecifiedPoint is returned by bound construction when a position
// with NaN coordinates is supplied but the enclosing bound cannot be
// derived from the remaining, well-defined points.
var ErrUnderspecifiedPoint = fmt.Errorf("octree: underspecified point")

// ErrBoundMismatch is returned by [Build] when the supplied construction
// bound does not contain every item position.
var ErrBoundMismatch = fmt.Errorf("octree: construction bound does not contain all items")

// invariantViolation is panicked when code that assumes a builder
// invariant observes a contradiction. It never represents a caller
// mistake: seeing one means the builder or compactor has a bug.
type invariantViolation struct {
	what     string
	index    int32
	expected string
	observed string
}

func (v invariantViolation) String() string {
	return fmt.Sprintf("octree: invariant violation at index %d: %s (expected %s, observed %s)",
		v.index, v.what, v.expected, v.observed)
}

func panicInvariant(what string, index int32, expected, observed string) {
	panic(invariantViolation{what: what, index: index, expected: expected, observed: observed})
}
