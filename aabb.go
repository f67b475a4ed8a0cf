package octree

import "math"

// AABB is an axis-aligned bounding box represented as an origin (minimum
// corner) and a non-negative size (extent along each axis).
//
// The unique empty box has Origin = [NaV] and Size = the zero vector; the
// full box has Origin = (-Inf, -Inf, -Inf) and Size = (+Inf, +Inf, +Inf).
// Box equality is structural, except that every empty box compares equal
// to every other empty box regardless of how it was produced.
type AABB struct {
	Origin Vec3
	Size   Vec3
}

// NewAABB builds a box from an origin and a size, canonicalizing any
// negative size component by swapping it with the origin on that axis so
// that the resulting Size is non-negative on every axis.
func NewAABB(origin, size Vec3) AABB {
	if size.X < 0 {
		origin.X += size.X
		size.X = -size.X
	}
	if size.Y < 0 {
		origin.Y += size.Y
		size.Y = -size.Y
	}
	if size.Z < 0 {
		origin.Z += size.Z
		size.Z = -size.Z
	}
	return AABB{Origin: origin, Size: size}
}

// Empty returns the unique empty box.
func Empty() AABB {
	return AABB{Origin: NaV}
}

// Full returns the box spanning all of R^3.
func Full() AABB {
	inf := math.Inf(1)
	return AABB{
		Origin: Vec3{X: -inf, Y: -inf, Z: -inf},
		Size:   Vec3{X: inf, Y: inf, Z: inf},
	}
}

// IsEmpty reports whether b is the empty box.
func (b AABB) IsEmpty() bool {
	return b.Origin.IsNaV()
}

// IsFull reports whether b is exactly the full box.
func (b AABB) IsFull() bool {
	inf := math.Inf(1)
	return b.Origin.X == -inf && b.Origin.Y == -inf && b.Origin.Z == -inf &&
		b.Size.X == inf && b.Size.Y == inf && b.Size.Z == inf
}

// Max returns the box's maximum corner (Origin + Size).
func (b AABB) Max() Vec3 {
	return b.Origin.Add(b.Size)
}

// Equal reports structural equality; all empty boxes compare equal to
// one another.
func (b AABB) Equal(o AABB) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return b.IsEmpty() == o.IsEmpty()
	}
	return b.Origin.Equal(o.Origin) && b.Size.Equal(o.Size)
}

// String renders b with stable, locale-invariant numeric formatting.
func (b AABB) String() string {
	if b.IsEmpty() {
		return "AABB(empty)"
	}
	return invariantPrinter.Sprintf("AABB(origin=%v, size=%v)", b.Origin, b.Size)
}

// Bound returns the smallest box containing every point in points. It is
// empty iff points is empty.
//
// A point may have a NaN coordinate on some axis and still contribute to
// the other axes; Bound fails with [ErrUnderspecifiedPoint] only if every
// point is NaN on some axis that therefore cannot be bounded at all.
func Bound(points []Vec3) (AABB, error) {
	if len(points) == 0 {
		return Empty(), nil
	}
	minV := Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	maxV := Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	var sawX, sawY, sawZ bool
	for _, p := range points {
		if !math.IsNaN(p.X) {
			sawX = true
			minV.X = math.Min(minV.X, p.X)
			maxV.X = math.Max(maxV.X, p.X)
		}
		if !math.IsNaN(p.Y) {
			sawY = true
			minV.Y = math.Min(minV.Y, p.Y)
			maxV.Y = math.Max(maxV.Y, p.Y)
		}
		if !math.IsNaN(p.Z) {
			sawZ = true
			minV.Z = math.Min(minV.Z, p.Z)
			maxV.Z = math.Max(maxV.Z, p.Z)
		}
	}
	if !sawX || !sawY || !sawZ {
		return AABB{}, ErrUnderspecifiedPoint
	}
	return NewAABB(minV, maxV.Sub(minV)), nil
}

// BoundBoxes returns the smallest box containing every non-empty box in
// boxes, ignoring empty boxes. It is empty iff every box is empty or
// boxes is empty.
func BoundBoxes(boxes []AABB) AABB {
	result := Empty()
	for _, b := range boxes {
		result = Union(result, b)
	}
	return result
}

// Union returns the smallest box enclosing both a and b.
func Union(a, b AABB) AABB {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	aMax, bMax := a.Max(), b.Max()
	minV := Vec3{
		X: math.Min(a.Origin.X, b.Origin.X),
		Y: math.Min(a.Origin.Y, b.Origin.Y),
		Z: math.Min(a.Origin.Z, b.Origin.Z),
	}
	maxV := Vec3{
		X: math.Max(aMax.X, bMax.X),
		Y: math.Max(aMax.Y, bMax.Y),
		Z: math.Max(aMax.Z, bMax.Z),
	}
	return NewAABB(minV, maxV.Sub(minV))
}

// Intersect returns the largest box contained in every box in boxes, or
// the empty box if boxes is empty or any pair leaves a gap on some axis.
func Intersect(boxes []AABB) AABB {
	if len(boxes) == 0 {
		return Empty()
	}
	result := boxes[0]
	for _, b := range boxes[1:] {
		result = IntersectTwo(result, b)
		if result.IsEmpty() {
			return result
		}
	}
	return result
}

// IntersectTwo returns the largest box contained in both a and b, or the
// empty box if their interiors (and boundaries) do not overlap.
func IntersectTwo(a, b AABB) AABB {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty()
	}
	aMax, bMax := a.Max(), b.Max()
	minV := Vec3{
		X: math.Max(a.Origin.X, b.Origin.X),
		Y: math.Max(a.Origin.Y, b.Origin.Y),
		Z: math.Max(a.Origin.Z, b.Origin.Z),
	}
	maxV := Vec3{
		X: math.Min(aMax.X, bMax.X),
		Y: math.Min(aMax.Y, bMax.Y),
		Z: math.Min(aMax.Z, bMax.Z),
	}
	if maxV.X < minV.X || maxV.Y < minV.Y || maxV.Z < minV.Z {
		return Empty()
	}
	return NewAABB(minV, maxV.Sub(minV))
}

// Contains reports whether p lies within b, inclusive of the boundary.
func (b AABB) Contains(p Vec3) bool {
	if b.IsEmpty() || p.IsNaV() {
		return false
	}
	max := b.Max()
	return p.X >= b.Origin.X && p.X <= max.X &&
		p.Y >= b.Origin.Y && p.Y <= max.Y &&
		p.Z >= b.Origin.Z && p.Z <= max.Z
}
