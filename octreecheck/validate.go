// Package octreecheck validates structural invariants of an
// [octree.Tree] that the core package does not check at construction
// time: child arity bounds, spatial disjointness and coverage between
// siblings, and conservation of the original item set across the
// tree's two traversal paths (the recursive Children() walk and the
// direct-descent Items() shortcut).
package octreecheck

import (
	"fmt"
	"strings"

	set3 "github.com/TomTonic/Set3"

	"github.com/gfhcs/octree"
)

// defaultEpsilon is the tolerance used when comparing the union of a
// node's children's bounds against the node's own bound, to absorb
// floating-point round-off in repeated AABB unions.
const defaultEpsilon = 1e-9

type config struct {
	epsilon float64
}

// Option configures Validate.
type Option func(*config)

// WithEpsilon sets the floating-point tolerance used for the
// child-coverage and sibling-disjointness checks. The default is 1e-9.
func WithEpsilon(epsilon float64) Option {
	return func(c *config) { c.epsilon = epsilon }
}

// Violation describes one confirmed structural defect.
type Violation struct {
	Kind   string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

// ViolationError collects every Violation found by Validate. It is
// always non-empty when returned.
type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}
	return fmt.Sprintf("octreecheck: %d violation(s):\n%s", len(e.Violations), strings.Join(lines, "\n"))
}

// Validate walks tree from its root and reports every violation of:
//
//   - every internal node has at least two children; an internal node
//     with more than eight children is only legitimate when every one
//     of those children is itself a leaf, the degenerate all-in-one
//     fan-out Build emits when a whole range of items shares one Morton
//     key (duplicate or quantization-colliding positions) and so can
//     never be split into 8 octants. A node with any internal child is
//     held to the ordinary 8-way split bound.
//   - no internal node has exactly one child that is itself internal.
//   - a node's children's bounds, unioned, equal the node's own bound
//     within epsilon, and no two siblings' bounds overlap beyond
//     epsilon.
//   - the Children()-recursive traversal and the Items() direct
//     shortcut agree on both the count and the set of items reachable
//     from the root.
//
// Validate returns nil for an empty tree. It never mutates tree.
func Validate[T comparable](tree *octree.Tree[T], opts ...Option) error {
	cfg := config{epsilon: defaultEpsilon}
	for _, opt := range opts {
		opt(&cfg)
	}

	root, err := tree.Root()
	if err != nil {
		if err == octree.ErrEmptyTree {
			return nil
		}
		return err
	}

	v := &validator[T]{epsilon: cfg.epsilon, recurSet: set3.Empty[T]()}
	_, recurCount := v.walk(root)

	directSet, directCount := collectItems(root)
	if recurCount != directCount {
		v.addf("leaf-conservation", "Children()-recursive traversal visited %d items but Items() yields %d", recurCount, directCount)
	} else if !v.recurSet.Equals(directSet) {
		v.addf("leaf-conservation", "Children()-recursive traversal and Items() disagree on which values are reachable")
	}

	if len(v.violations) == 0 {
		return nil
	}
	return &ViolationError{Violations: v.violations}
}

type validator[T comparable] struct {
	epsilon    float64
	violations []Violation
	recurSet   *set3.Set3[T]
}

func (v *validator[T]) addf(kind, format string, args ...any) {
	v.violations = append(v.violations, Violation{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// walk returns the node's own bound and its subtree's item count,
// adding every leaf value it encounters to v.recurSet along the way.
func (v *validator[T]) walk(n octree.Node[T]) (octree.AABB, int) {
	if n.IsLeaf() {
		var box octree.AABB
		for val, pos := range n.Items() {
			v.recurSet.Add(val)
			box, _ = octree.Bound([]octree.Vec3{pos})
		}
		return box, 1
	}

	childBoxes := make([]octree.AABB, 0, 8)
	arity := 0
	internalChildren := 0
	total := 0
	for child := range n.Children() {
		arity++
		if !child.IsLeaf() {
			internalChildren++
		}
		box, count := v.walk(child)
		childBoxes = append(childBoxes, box)
		total += count
	}

	if arity < 2 {
		v.addf("arity", "internal node has %d children, want at least 2", arity)
	}
	// A node with an internal child came from a real 8-way octant split
	// and must stay within it. A node whose children are all leaves may
	// legitimately exceed 8: that is the degenerate fan-out described
	// above, bounded only by how many items share the colliding key.
	if arity > 8 && internalChildren > 0 {
		v.addf("arity", "internal node has %d children (with %d internal), want at most 8", arity, internalChildren)
	}
	if internalChildren == 1 {
		v.addf("redundant-internal", "internal node has exactly one internal child")
	}

	own := octree.BoundBoxes(childBoxes)
	v.checkCoverage(own, childBoxes)
	v.checkDisjoint(childBoxes)

	return own, total
}

func (v *validator[T]) checkCoverage(own octree.AABB, children []octree.AABB) {
	union := octree.BoundBoxes(children)
	if !boxesApproxEqual(own, union, v.epsilon) {
		v.addf("coverage", "union of children %s does not match node bound %s", union, own)
	}
}

func (v *validator[T]) checkDisjoint(children []octree.AABB) {
	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			overlap := octree.IntersectTwo(children[i], children[j])
			if overlap.IsEmpty() {
				continue
			}
			if overlap.Size.X <= v.epsilon && overlap.Size.Y <= v.epsilon && overlap.Size.Z <= v.epsilon {
				continue
			}
			v.addf("disjointness", "sibling bounds %s and %s overlap by more than epsilon", children[i], children[j])
		}
	}
}

func boxesApproxEqual(a, b octree.AABB, epsilon float64) bool {
	if a.IsEmpty() != b.IsEmpty() {
		return false
	}
	if a.IsEmpty() {
		return true
	}
	aMax, bMax := a.Max(), b.Max()
	return approxEqual(a.Origin.X, b.Origin.X, epsilon) &&
		approxEqual(a.Origin.Y, b.Origin.Y, epsilon) &&
		approxEqual(a.Origin.Z, b.Origin.Z, epsilon) &&
		approxEqual(aMax.X, bMax.X, epsilon) &&
		approxEqual(aMax.Y, bMax.Y, epsilon) &&
		approxEqual(aMax.Z, bMax.Z, epsilon)
}

func approxEqual(a, b, epsilon float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= epsilon
}

func collectItems[T comparable](n octree.Node[T]) (*set3.Set3[T], int) {
	set := set3.Empty[T]()
	count := 0
	for val, _ := range n.Items() {
		set.Add(val)
		count++
	}
	return set, count
}
