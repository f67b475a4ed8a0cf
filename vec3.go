package octree

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// invariantPrinter renders floats the same way regardless of the host
// process's locale. Box and Vec3 dumps get compared across machines (and
// across test runs), so formatting must not depend on $LANG.
var invariantPrinter = message.NewPrinter(language.English)

// Vec3 is a 3-component double vector.
type Vec3 struct {
	X, Y, Z float64
}

// NaV ("not a vector") is the distinguished sentinel used to denote the
// absence of a position. It is recognized by [Vec3.IsNaV], not by
// component-wise equality: NaN never compares equal to itself.
var NaV = Vec3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}

// IsNaV reports whether v has any NaN component.
func (v Vec3) IsNaV() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// Add returns the component-wise sum of v and w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns the component-wise difference v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v multiplied component-wise by scalar s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v divided component-wise by scalar s.
func (v Vec3) Div(s float64) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Dot returns the Euclidean dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Length returns the Euclidean magnitude of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Equal reports exact component equality under ==, with no tolerance.
// NaV never equals anything, including another NaV, because NaN != NaN.
func (v Vec3) Equal(w Vec3) bool {
	return v.X == w.X && v.Y == w.Y && v.Z == w.Z
}

// Less defines a total order over Vec3: NaV sorts before every other
// vector, and non-NaV vectors compare lexicographically on X, then Y,
// then Z.
func (v Vec3) Less(w Vec3) bool {
	vNaV, wNaV := v.IsNaV(), w.IsNaV()
	if vNaV != wNaV {
		return vNaV
	}
	if vNaV {
		return false // both NaV: equal under the total order
	}
	if v.X != w.X {
		return v.X < w.X
	}
	if v.Y != w.Y {
		return v.Y < w.Y
	}
	return v.Z < w.Z
}

// String renders v with stable, locale-invariant numeric formatting, so
// that dumps of the same tree compare equal across machines regardless
// of process locale.
func (v Vec3) String() string {
	if v.IsNaV() {
		return "NaV"
	}
	return invariantPrinter.Sprintf("(%v, %v, %v)",
		number.Decimal(v.X), number.Decimal(v.Y), number.Decimal(v.Z))
}
