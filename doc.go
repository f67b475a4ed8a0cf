// Package octree implements a parallel, pointer-free octree spatial index
// built from Morton (Z-order) codes.
//
// A tree is built once from a snapshot of items and a bounding box (see
// [Build]), queried through read-only [Node] handles, and optionally
// compacted to remove internal nodes that construction left unreachable
// (see [Tree.Compress]). Trees are immutable after construction: there is
// no in-place update, no persistence, and no wire format. Callers that
// need to track a moving scene rebuild the tree every frame instead of
// mutating it.
//
// Internally, nodes are not linked by pointers but by signed deltas into
// two flat slices (see [Tree]), so that construction and compaction can
// run as bulk-synchronous, data-parallel phases over a bounded worker
// pool rather than as pointer-chasing tree walks.
package octree
