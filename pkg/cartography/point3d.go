package cartography

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
)

// adjacent3D lists the six face offsets: the four compass neighbours in
// the plane, then below and above.
var adjacent3D = [6][3]int64{
	{0, -1, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0},
	{0, 0, -1}, {0, 0, 1},
}

// surrounding3D is the 3x3x3 cube minus its centre, built layer by layer
// from z-1 to z+1. Each layer walks the 2D ring clockwise; the bottom and
// top layers then add the point straight below or above.
var surrounding3D = func() [26][3]int64 {
	var offs [26][3]int64
	i := 0
	for _, dz := range [3]int64{-1, 0, 1} {
		for _, ring := range surrounding2D {
			offs[i] = [3]int64{ring[0], ring[1], dz}
			i++
		}
		if dz != 0 {
			offs[i] = [3]int64{0, 0, dz}
			i++
		}
	}
	return offs
}()

// Point3D is a location in three-dimensional space with integer co-ordinates.
type Point3D struct {
	x, y, z int64
}

// NewPoint3D returns the point (x, y, z).
func NewPoint3D(x, y, z int64) Point3D {
	return Point3D{x: x, y: y, z: z}
}

// X returns the x co-ordinate.
func (p Point3D) X() int64 { return p.x }

// Y returns the y co-ordinate.
func (p Point3D) Y() int64 { return p.y }

// Z returns the z co-ordinate.
func (p Point3D) Z() int64 { return p.z }

// SetX sets the x co-ordinate.
func (p *Point3D) SetX(x int64) { p.x = x }

// SetY sets the y co-ordinate.
func (p *Point3D) SetY(y int64) { p.y = y }

// SetZ sets the z co-ordinate.
func (p *Point3D) SetZ(z int64) { p.z = z }

func (p Point3D) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.x, p.y, p.z)
}

// Shift moves the point in place by the given deltas.
//
// Panics with *OverflowError if any co-ordinate would overflow.
func (p *Point3D) Shift(dx, dy, dz int64) {
	*p = p.PeekShift(dx, dy, dz)
}

// PeekShift returns the point that shifting p by the given deltas would
// produce, leaving p untouched.
//
// Panics with *OverflowError if any co-ordinate would overflow.
func (p Point3D) PeekShift(dx, dy, dz int64) Point3D {
	return Point3D{
		x: checkedAdd("Point3D.PeekShift", p.x, dx),
		y: checkedAdd("Point3D.PeekShift", p.y, dy),
		z: checkedAdd("Point3D.PeekShift", p.z, dz),
	}
}

// GetSurroundingPoints returns the 26 points around p: the bottom layer,
// the middle layer and the top layer in that order.
//
// Panics with *OverflowError if p sits on the edge of the int64 range.
func (p Point3D) GetSurroundingPoints() []Point3D {
	points := make([]Point3D, 0, len(surrounding3D))
	for _, off := range surrounding3D {
		points = append(points, p.PeekShift(off[0], off[1], off[2]))
	}
	return points
}

// GetAdjacentPoints returns the six points sharing a face with p. The
// diagonal points returned by GetSurroundingPoints are excluded.
//
// Panics with *OverflowError if p sits on the edge of the int64 range.
func (p Point3D) GetAdjacentPoints() []Point3D {
	points := make([]Point3D, 0, len(adjacent3D))
	for _, off := range adjacent3D {
		points = append(points, p.PeekShift(off[0], off[1], off[2]))
	}
	return points
}

// GetManhattanDistance returns |dx| + |dy| + |dz| between p and other.
func (p Point3D) GetManhattanDistance(other Point3D) uint64 {
	return sumDistances("Point3D.GetManhattanDistance",
		absDiff(p.x, other.x),
		absDiff(p.y, other.y),
		absDiff(p.z, other.z),
	)
}

// GetManhattanDistanceOrigin returns the Manhattan distance of p from (0, 0, 0).
func (p Point3D) GetManhattanDistanceOrigin() uint64 {
	return p.GetManhattanDistance(Point3D{})
}

// GetAbsoluteValue returns the Euclidean distance of p from the origin.
func (p Point3D) GetAbsoluteValue() float64 {
	return p.Vec().Length()
}

// GetAbsoluteValueFrom returns the Euclidean distance between p and other.
func (p Point3D) GetAbsoluteValueFrom(other Point3D) float64 {
	return other.Vec().Sub(p.Vec()).Length()
}

// Vec converts p to an sdfx floating point vector.
func (p Point3D) Vec() v3.Vec {
	return v3.Vec{X: float64(p.x), Y: float64(p.y), Z: float64(p.z)}
}

// Vec3i converts p to an sdfx integer vector.
func (p Point3D) Vec3i() v3i.Vec {
	return v3i.Vec{X: int(p.x), Y: int(p.y), Z: int(p.z)}
}

// Point3DFromVec3i converts an sdfx integer vector to a Point3D.
func Point3DFromVec3i(v v3i.Vec) Point3D {
	return Point3D{x: int64(v.X), y: int64(v.Y), z: int64(v.Z)}
}
