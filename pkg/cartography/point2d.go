package cartography

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/deadsy/sdfx/vec/v2i"
)

// surrounding2D lists the Moore neighbourhood offsets clockwise,
// starting directly above the point.
var surrounding2D = [8][2]int64{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// adjacent2D lists the von Neumann offsets: up, right, down, left.
var adjacent2D = [4][2]int64{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

// Point2D is a location in two-dimensional space with integer co-ordinates.
type Point2D struct {
	x, y int64
}

// NewPoint2D returns the point (x, y).
func NewPoint2D(x, y int64) Point2D {
	return Point2D{x: x, y: y}
}

// X returns the x co-ordinate.
func (p Point2D) X() int64 { return p.x }

// Y returns the y co-ordinate.
func (p Point2D) Y() int64 { return p.y }

// SetX sets the x co-ordinate.
func (p *Point2D) SetX(x int64) { p.x = x }

// SetY sets the y co-ordinate.
func (p *Point2D) SetY(y int64) { p.y = y }

func (p Point2D) String() string {
	return fmt.Sprintf("(%d, %d)", p.x, p.y)
}

// Shift moves the point in place by the given deltas.
//
// Panics with *OverflowError if either co-ordinate would overflow.
func (p *Point2D) Shift(dx, dy int64) {
	*p = p.PeekShift(dx, dy)
}

// PeekShift returns the point that shifting p by the given deltas would
// produce, leaving p untouched.
//
// Panics with *OverflowError if either co-ordinate would overflow.
func (p Point2D) PeekShift(dx, dy int64) Point2D {
	return Point2D{
		x: checkedAdd("Point2D.PeekShift", p.x, dx),
		y: checkedAdd("Point2D.PeekShift", p.y, dy),
	}
}

// Step returns the neighbouring point one unit away in direction d.
func (p Point2D) Step(d CardinalDirection) Point2D {
	dx, dy := d.Delta()
	return p.PeekShift(dx, dy)
}

// GetSurroundingPoints returns the eight points around p, clockwise from
// the one directly above it.
//
// Panics with *OverflowError if p sits on the edge of the int64 range.
func (p Point2D) GetSurroundingPoints() []Point2D {
	points := make([]Point2D, 0, len(surrounding2D))
	for _, off := range surrounding2D {
		points = append(points, p.PeekShift(off[0], off[1]))
	}
	return points
}

// GetAdjacentPoints returns the four points up, right, down and left of p.
//
// Panics with *OverflowError if p sits on the edge of the int64 range.
func (p Point2D) GetAdjacentPoints() []Point2D {
	points := make([]Point2D, 0, len(adjacent2D))
	for _, off := range adjacent2D {
		points = append(points, p.PeekShift(off[0], off[1]))
	}
	return points
}

// GetManhattanDistance returns |dx| + |dy| between p and other.
func (p Point2D) GetManhattanDistance(other Point2D) uint64 {
	return sumDistances("Point2D.GetManhattanDistance",
		absDiff(p.x, other.x),
		absDiff(p.y, other.y),
	)
}

// GetManhattanDistanceOrigin returns the Manhattan distance of p from (0, 0).
func (p Point2D) GetManhattanDistanceOrigin() uint64 {
	return p.GetManhattanDistance(Point2D{})
}

// GetAbsoluteValue returns the Euclidean distance of p from the origin.
func (p Point2D) GetAbsoluteValue() float64 {
	return p.Vec().Length()
}

// GetAbsoluteValueFrom returns the Euclidean distance between p and other.
// Differences are taken in floating point so extreme co-ordinates cannot
// overflow.
func (p Point2D) GetAbsoluteValueFrom(other Point2D) float64 {
	return other.Vec().Sub(p.Vec()).Length()
}

// Vec converts p to an sdfx floating point vector.
func (p Point2D) Vec() v2.Vec {
	return v2.Vec{X: float64(p.x), Y: float64(p.y)}
}

// Vec2i converts p to an sdfx integer vector.
func (p Point2D) Vec2i() v2i.Vec {
	return v2i.Vec{X: int(p.x), Y: int(p.y)}
}

// Point2DFromVec2i converts an sdfx integer vector to a Point2D.
func Point2DFromVec2i(v v2i.Vec) Point2D {
	return Point2D{x: int64(v.X), y: int64(v.Y)}
}
