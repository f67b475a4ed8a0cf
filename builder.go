package octree

import (
	"context"
	"sort"
	"time"

	"github.com/gfhcs/octree/morton"
	"github.com/gfhcs/octree/parallel"
)

// Build constructs a Tree over items, using bound to quantize each
// item's position into a 63-bit Morton key. Construction runs in three
// bulk-synchronous phases joined by barriers: key computation, a
// stable sort by key, and a data-parallel pass that resolves every
// leaf's node-boundary role independently (Karras's construction,
// generalized from binary radix trees to 8-ary octrees). ctx is
// checked only at phase boundaries; no single phase is preemptible
// mid-flight. An optional [PhaseObserver] receives the name and
// duration of each phase as it completes; pass none to skip this.
//
// Build fails with ErrBoundMismatch if bound does not contain every
// item's position (items with a NaN coordinate are exempt, since they
// quantize to the low boundary on the affected axis regardless of
// bound). It never fails because items is empty: an empty items slice
// produces a valid, empty Tree.
func Build[T any](ctx context.Context, items []Item[T], bound AABB, onPhase ...PhaseObserver) (*Tree[T], error) {
	observe := firstObserver(onPhase)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	for _, it := range items {
		if !it.Pos.IsNaV() && !bound.Contains(it.Pos) {
			return nil, ErrBoundMismatch
		}
	}
	timePhase(observe, "validate", start)

	L := len(items)
	if L == 0 {
		return &Tree[T]{}, nil
	}

	lo := bound.Origin
	hi := bound.Max()

	start = time.Now()
	codes := make([]uint64, L)
	parallel.For(0, L, func(i int) {
		p := items[i].Pos
		codes[i] = morton.Key(
			morton.Quantize(p.X, lo.X, hi.X),
			morton.Quantize(p.Y, lo.Y, hi.Y),
			morton.Quantize(p.Z, lo.Z, hi.Z),
		)
	})
	timePhase(observe, "morton", start)

	start = time.Now()
	order := make([]int, L)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return codes[order[a]] < codes[order[b]]
	})

	sortedCodes := make([]uint64, L)
	leaves := make([]Leaf[T], L)
	for rank, orig := range order {
		sortedCodes[rank] = codes[orig]
		leaves[rank] = Leaf[T]{Value: items[orig].Value, Pos: items[orig].Pos}
	}
	timePhase(observe, "sort", start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	internals := make([]Internal, L)
	parallel.For(0, L, func(i int) {
		buildIndex(sortedCodes, leaves, internals, i)
	})
	internals[L-1].RightSiblingDelta = -1
	timePhase(observe, "construct", start)

	return &Tree[T]{leaves: leaves, internals: internals}, nil
}

// buildIndex resolves index i's role in the tree, if any: whether it
// is the left or right boundary of some node's leaf range, and if so,
// writes that node's first_child_delta, chains its children's
// right_sibling_delta, and marks the end slot of every multi-leaf
// middle child (the redundant twin of the start slot that represents
// it) unreachable. An index that is neither boundary of any range
// (the common case for an interior sibling of a fan-out node) writes
// nothing.
func buildIndex[T any](codes []uint64, leaves []Leaf[T], internals []Internal, i int) {
	L := len(leaves)

	sigLeft := morton.SlottedSigma(codes, i, i-1)
	sigRight := morton.SlottedSigma(codes, i, i+1)
	s := sign(sigRight - sigLeft)
	if s == 0 {
		return
	}

	t := morton.SlottedSigma(codes, i, i-s)
	j := findOppositeBoundary(codes, i, s, t)

	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	hi++ // half-open

	self := int32(i)

	if morton.SlottedSigma(codes, lo, hi-1) == morton.Bits {
		firstLeaf := int32(lo - L)
		internals[self].FirstChildDelta = firstLeaf - self
		if s > 0 {
			for k := lo; k < hi-1; k++ {
				leaves[k].RightSiblingDelta = 1
			}
		}
		return
	}

	level := morton.SlottedSigma(codes, lo, hi-1)
	p := 63 - 3*level
	starts := octantStarts(codes, p, lo, hi)

	havePrev := false
	var prevEntry int32
	for k := 0; k < 8; k++ {
		a, b := starts[k], starts[k+1]
		if a == b {
			continue
		}
		width := b - a

		var entry int32
		if width == 1 {
			entry = int32(a - L)
		} else if !havePrev {
			entry = int32(b - 1)
		} else {
			entry = int32(a)
			if b < hi {
				writeRightSiblingDelta(leaves, internals, int32(b-1), -1)
			}
		}

		if !havePrev {
			internals[self].FirstChildDelta = entry - self
		} else {
			writeRightSiblingDelta(leaves, internals, prevEntry, entry-prevEntry)
		}
		prevEntry = entry
		havePrev = true
	}
}

func writeRightSiblingDelta[T any](leaves []Leaf[T], internals []Internal, idx, delta int32) {
	if idx < 0 {
		leaves[len(leaves)+int(idx)].RightSiblingDelta = delta
		return
	}
	internals[idx].RightSiblingDelta = delta
}

// findOppositeBoundary extends from i in direction s by exponential
// search followed by binary search, landing on the farthest index
// that still shares more than t whole levels with i.
func findOppositeBoundary(codes []uint64, i, s, t int) int {
	lMax := 2
	for morton.SlottedSigma(codes, i, i+lMax*s) > t {
		lMax *= 2
	}
	l := 0
	for step := lMax / 2; step >= 1; step /= 2 {
		if morton.SlottedSigma(codes, i, i+(l+step)*s) > t {
			l += step
		}
	}
	return i + l*s
}

// octantStarts splits [lo, hi) into the 8 octants determined by bits
// p-1, p-2, p-3 (most significant first), by three nested binary
// searches following Morton bit order. Result[k] is the start of
// octant k, and result[8] is hi.
func octantStarts(codes []uint64, p, lo, hi int) [9]int {
	s4 := morton.Split(codes, p-1, lo, hi)
	s2a := morton.Split(codes, p-2, lo, s4)
	s2b := morton.Split(codes, p-2, s4, hi)
	s1a := morton.Split(codes, p-3, lo, s2a)
	s1c := morton.Split(codes, p-3, s2a, s4)
	s1e := morton.Split(codes, p-3, s4, s2b)
	s1g := morton.Split(codes, p-3, s2b, hi)
	return [9]int{lo, s1a, s2a, s1c, s4, s1e, s2b, s1g, hi}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
