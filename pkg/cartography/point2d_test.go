package cartography

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/vec/v2i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint2DAccessors(t *testing.T) {
	p := NewPoint2D(3, -7)
	assert.Equal(t, int64(3), p.X())
	assert.Equal(t, int64(-7), p.Y())

	p.SetX(10)
	p.SetY(20)
	assert.Equal(t, NewPoint2D(10, 20), p)
	assert.Equal(t, "(10, 20)", p.String())
}

func TestPoint2DShift(t *testing.T) {
	deltas := [][2]int64{{0, 0}, {1, -1}, {-5, 12}, {1 << 40, -(1 << 40)}}

	for _, d := range deltas {
		p := NewPoint2D(4, -2)
		peeked := p.PeekShift(d[0], d[1])
		assert.Equal(t, NewPoint2D(4, -2), p, "PeekShift must not mutate")

		q := p
		q.Shift(d[0], d[1])
		assert.Equal(t, peeked, q)
		assert.Equal(t, NewPoint2D(4+d[0], -2+d[1]), q)
	}
}

func TestPoint2DShiftOverflowPanics(t *testing.T) {
	tests := []struct {
		name    string
		p       Point2D
		dx, dy  int64
		wantErr string
	}{
		{
			name:    "x overflow",
			p:       NewPoint2D(math.MaxInt64, 0),
			dx:      1,
			wantErr: "cartography: Point2D.PeekShift: integer overflow adding 9223372036854775807 and 1",
		},
		{
			name:    "y underflow",
			p:       NewPoint2D(0, math.MinInt64),
			dy:      -1,
			wantErr: "cartography: Point2D.PeekShift: integer overflow adding -9223372036854775808 and -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithError(t, tt.wantErr, func() { tt.p.PeekShift(tt.dx, tt.dy) })

			p := tt.p
			assert.Panics(t, func() { p.Shift(tt.dx, tt.dy) })
			assert.Equal(t, tt.p, p, "failed Shift must leave the point unchanged")
		})
	}
}

func TestPoint2DSurroundingPoints(t *testing.T) {
	got := NewPoint2D(0, 0).GetSurroundingPoints()
	want := []Point2D{
		NewPoint2D(0, -1),
		NewPoint2D(1, -1),
		NewPoint2D(1, 0),
		NewPoint2D(1, 1),
		NewPoint2D(0, 1),
		NewPoint2D(-1, 1),
		NewPoint2D(-1, 0),
		NewPoint2D(-1, -1),
	}
	assert.Equal(t, want, got)
}

func TestPoint2DAdjacentPoints(t *testing.T) {
	p := NewPoint2D(5, 5)
	got := p.GetAdjacentPoints()
	assert.Equal(t, []Point2D{
		NewPoint2D(5, 4),
		NewPoint2D(6, 5),
		NewPoint2D(5, 6),
		NewPoint2D(4, 5),
	}, got)

	surrounding := p.GetSurroundingPoints()
	for _, a := range got {
		assert.Contains(t, surrounding, a)
		assert.Equal(t, uint64(1), p.GetManhattanDistance(a))
	}
}

func TestPoint2DNeighboursOverflowPanics(t *testing.T) {
	edge := NewPoint2D(math.MaxInt64, 0)
	assert.Panics(t, func() { edge.GetSurroundingPoints() })
	assert.Panics(t, func() { edge.GetAdjacentPoints() })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		var oe *OverflowError
		require.ErrorAs(t, r.(error), &oe)
		assert.Equal(t, "Point2D.PeekShift", oe.Op)
	}()
	NewPoint2D(0, math.MinInt64).GetAdjacentPoints()
}

func TestPoint2DManhattanDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want uint64
	}{
		{"same point", NewPoint2D(7, -3), NewPoint2D(7, -3), 0},
		{"axis aligned", NewPoint2D(0, 0), NewPoint2D(0, 9), 9},
		{"mixed signs", NewPoint2D(-2, 3), NewPoint2D(4, -1), 10},
		{"full range", NewPoint2D(math.MinInt64, 0), NewPoint2D(math.MaxInt64, 0), math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.GetManhattanDistance(tt.b))
			assert.Equal(t, tt.want, tt.b.GetManhattanDistance(tt.a))
		})
	}

	assert.Equal(t, uint64(7), NewPoint2D(3, -4).GetManhattanDistanceOrigin())
	assert.Equal(t, uint64(1)<<63, NewPoint2D(math.MinInt64, 0).GetManhattanDistanceOrigin())
	assert.Panics(t, func() {
		NewPoint2D(math.MinInt64, math.MinInt64).GetManhattanDistance(NewPoint2D(math.MaxInt64, math.MaxInt64))
	})
}

func TestPoint2DAbsoluteValue(t *testing.T) {
	assert.Equal(t, 5.0, NewPoint2D(3, 4).GetAbsoluteValue())
	assert.Equal(t, 0.0, NewPoint2D(0, 0).GetAbsoluteValue())
	assert.Equal(t, 5.0, NewPoint2D(1, 1).GetAbsoluteValueFrom(NewPoint2D(4, 5)))
	assert.Equal(t, 13.0, NewPoint2D(-5, 0).GetAbsoluteValueFrom(NewPoint2D(0, -12)))

	// Squaring in floating point keeps extreme values finite.
	big := NewPoint2D(math.MaxInt64, math.MaxInt64)
	assert.False(t, math.IsInf(big.GetAbsoluteValue(), 0))
	assert.InDelta(t, math.Sqrt2*float64(math.MaxInt64), big.GetAbsoluteValue(), 1e6)
	assert.False(t, math.IsInf(NewPoint2D(math.MinInt64, 0).GetAbsoluteValueFrom(big), 0))
}

func TestPoint2DMapKey(t *testing.T) {
	seen := map[Point2D]int{}
	seen[NewPoint2D(1, 2)]++
	seen[NewPoint2D(1, 2)]++
	seen[NewPoint2D(2, 1)]++
	assert.Equal(t, 2, seen[NewPoint2D(1, 2)])
	assert.Len(t, seen, 2)
}

func TestPoint2DVecConversions(t *testing.T) {
	p := NewPoint2D(-3, 8)
	assert.Equal(t, v2i.Vec{X: -3, Y: 8}, p.Vec2i())
	assert.Equal(t, p, Point2DFromVec2i(p.Vec2i()))
	assert.Equal(t, -3.0, p.Vec().X)
	assert.Equal(t, 8.0, p.Vec().Y)
}
