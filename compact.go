package octree

import (
	"context"
	"time"

	"github.com/gfhcs/octree/parallel"
)

// Compress returns a tree with the same leaf ordering and the same
// observable child structure as t, but with every internal slot that
// Build left unreachable (the losing twin of a boundary race, or the
// global root's redundant mirror at the far end of the array) dropped
// from the backing array. It is a pure function: t is left untouched,
// and the result is a new *Tree sharing no mutable state with it. An
// optional [PhaseObserver] receives the name and duration of each
// phase as it completes; pass none to skip this.
//
// Compress on an already-fully-packed tree returns t itself without
// allocating a new tree, which makes repeated calls idempotent for the
// same cost as a single reachability scan.
//
// The relocation is the parallel-prefix-count idiom: a 0/1 indicator
// over which slots survive, prefix-summed into each survivor's new
// index, then one parallel pass over the internals and one over the
// leaves rewrite every delta (which may target a slot that moved) in
// terms of the new layout. No pointer in
// the tree is ever traversed to find what needs updating; every
// internal and every leaf is revisited exactly once.
func (t *Tree[T]) Compress(ctx context.Context, onPhase ...PhaseObserver) *Tree[T] {
	observe := firstObserver(onPhase)

	if err := ctx.Err(); err != nil {
		return t
	}
	n := len(t.internals)
	if n < 2 {
		return t
	}

	start := time.Now()
	reachable := func(in Internal) bool { return in.RightSiblingDelta != -1 }
	newIdx := parallel.PrefixCount(t.internals, reachable)

	count := newIdx[n-1]
	if reachable(t.internals[n-1]) {
		count++
	}
	timePhase(observe, "scan", start)
	if count == n {
		return t
	}

	start = time.Now()
	newInternals := make([]Internal, count)
	parallel.For(0, n, func(i int) {
		old := t.internals[i]
		if !reachable(old) {
			return
		}
		self := int32(i)
		newSelf := int32(newIdx[i])
		newInternals[newSelf] = Internal{
			FirstChildDelta:   translateDelta(self, newSelf, old.FirstChildDelta, newIdx),
			RightSiblingDelta: translateDelta(self, newSelf, old.RightSiblingDelta, newIdx),
		}
	})

	numLeaves := len(t.leaves)
	newLeaves := make([]Leaf[T], numLeaves)
	parallel.For(0, numLeaves, func(p int) {
		old := t.leaves[p]
		self := int32(p - numLeaves)
		newLeaves[p] = Leaf[T]{
			Value:             old.Value,
			Pos:               old.Pos,
			RightSiblingDelta: translateDelta(self, self, old.RightSiblingDelta, newIdx),
		}
	})
	timePhase(observe, "relocate", start)

	return &Tree[T]{leaves: newLeaves, internals: newInternals}
}

// translateDelta rewrites a single delta (target - oldSelf) in terms
// of a node whose own address may have moved from oldSelf to newSelf,
// and whose target, if it is an internal index, may also have moved.
// Leaf targets are untouched: compaction never relocates Leaves.
// A delta of exactly 0 is the "no sibling" terminator, not a pointer
// to self, and passes through unchanged.
func translateDelta(oldSelf, newSelf int32, oldDelta int32, newIdx []int) int32 {
	if oldDelta == 0 {
		return 0
	}
	oldTarget := oldSelf + oldDelta
	if oldTarget < 0 {
		return oldTarget - newSelf
	}
	return int32(newIdx[oldTarget]) - newSelf
}
