package engine

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eval runs source and fails the test on any error.
func eval(t *testing.T, source string) string {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.NotNil(t, res)
	return res.Value
}

// evalErr runs source and expects a non-fatal script error.
func evalErr(t *testing.T, source string) EvalError {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	require.NoError(t, err)
	require.Nil(t, res)
	require.NotEmpty(t, evalErrs)
	return evalErrs[0]
}

func TestPointConstructors(t *testing.T) {
	assert.Equal(t, "(point2d 1 -2)", eval(t, "(point2d 1 -2)"))
	assert.Equal(t, "(point3d 1 2 3)", eval(t, "(point3d 1 2 3)"))
	assert.Equal(t, "-2", eval(t, "(py (point2d 1 -2))"))
	assert.Equal(t, "3", eval(t, "(pz (point3d 1 2 3))"))
}

func TestPointConstructorErrors(t *testing.T) {
	evalErr(t, "(point2d 1)")
	evalErr(t, `(point2d 1 "two")`)
	evalErr(t, "(point3d 1 2)")
	evalErr(t, "(pz (point2d 1 2))")
}

func TestPeekShiftBuiltin(t *testing.T) {
	source := `
(def p (point2d 4 -2))
(def q (peek-shift p 1 1))
(px p)
`
	assert.Equal(t, "4", eval(t, source), "peek-shift must not change its argument")
	assert.Equal(t, "(point2d 5 -1)", eval(t, "(peek-shift (point2d 4 -2) 1 1)"))
	assert.Equal(t, "(point3d 0 0 0)", eval(t, "(peek-shift (point3d 1 1 1) -1 -1 -1)"))

	evalErr(t, "(peek-shift (point2d 0 0) 1 1 1)")
	evalErr(t, "(peek-shift (point3d 0 0 0) 1 1)")
}

func TestNeighbourBuiltins(t *testing.T) {
	assert.Equal(t,
		"[(point2d 0 -1) (point2d 1 -1) (point2d 1 0) (point2d 1 1) (point2d 0 1) (point2d -1 1) (point2d -1 0) (point2d -1 -1)]",
		eval(t, "(surrounding (point2d 0 0))"))
	assert.Equal(t,
		"[(point3d 1 0 1) (point3d 2 1 1) (point3d 1 2 1) (point3d 0 1 1) (point3d 1 1 0) (point3d 1 1 2)]",
		eval(t, "(adjacent (point3d 1 1 1))"))
	assert.Equal(t, "26", eval(t, "(count-points (surrounding (point3d 0 0 0)))"))
	assert.Equal(t, "4", eval(t, "(count-points (adjacent (point2d 0 0)))"))
	assert.Equal(t, "(point2d 1 0)", eval(t, "(nth-point (adjacent (point2d 0 0)) 1)"))

	evalErr(t, "(nth-point (adjacent (point2d 0 0)) 4)")
	evalErr(t, "(count-points 3)")
}

func TestDistanceBuiltins(t *testing.T) {
	assert.Equal(t, "7", eval(t, "(manhattan (point2d 3 -4))"))
	assert.Equal(t, "10", eval(t, "(manhattan (point2d -2 3) (point2d 4 -1))"))
	assert.Equal(t, "15", eval(t, "(manhattan (point3d 1 -2 3) (point3d -4 5 0))"))

	f, err := strconv.ParseFloat(eval(t, "(magnitude (point2d 3 4))"), 64)
	require.NoError(t, err)
	assert.Equal(t, 5.0, f)

	f, err = strconv.ParseFloat(eval(t, "(magnitude (point3d 1 1 1) (point3d 2 3 3))"), 64)
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	evalErr(t, "(manhattan (point2d 0 0) (point3d 0 0 0))")
	evalErr(t, "(magnitude 5)")
	evalErr(t, "(manhattan (point2d -9223372036854775807 0) (point2d 9223372036854775807 0))")
}

func TestDirectionBuiltins(t *testing.T) {
	assert.Equal(t, "(direction :north)", eval(t, "(direction :north)"))
	assert.Equal(t, "(direction :east)", eval(t, "(rotate-cw :north 1)"))
	assert.Equal(t, "(direction :west)", eval(t, "(rotate-cw :S 1)"))
	assert.Equal(t, "(direction :north)", eval(t, `(direction "n")`))
	assert.Equal(t, "(direction :north)", eval(t, "(rotate-cw :north 4)"))
	assert.Equal(t, "(direction :west)", eval(t, "(rotate-ccw (direction :north))"))
	assert.Equal(t, "(direction :south)", eval(t, `(rotate-cw (rotate-ccw "e" 1) 2)`))

	evalErr(t, "(direction :up)")
	evalErr(t, "(rotate-cw :north -1)")
}

func TestStepBuiltin(t *testing.T) {
	source := `
(def heading (rotate-cw :north 1))
(step-point (step-point (point2d 0 0) heading) :south)
`
	assert.Equal(t, "(point2d 1 1)", eval(t, source))
	evalErr(t, "(step-point (point3d 0 0 0) :north)")
}

func TestOverflowBuiltinsAreFatal(t *testing.T) {
	sources := []string{
		"(surrounding (point2d 9223372036854775807 0))",
		"(adjacent (point3d 0 0 9223372036854775807))",
		"(step-point (point2d 0 9223372036854775807) :south)",
	}
	for _, src := range sources {
		res, evalErrs, err := NewEngine().Evaluate(src)
		require.Error(t, err, src)
		assert.Nil(t, res)
		assert.Nil(t, evalErrs)
		assert.True(t, IsOverflow(err), "%s: %v", src, err)
	}
}
