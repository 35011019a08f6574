package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/cartography/pkg/cartography"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing cartography values through zygomys
// ---------------------------------------------------------------------------

// sexpPoint2D wraps a cartography.Point2D.
type sexpPoint2D struct {
	p cartography.Point2D
}

func (s *sexpPoint2D) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point2d %d %d)", s.p.X(), s.p.Y())
}
func (s *sexpPoint2D) Type() *zygo.RegisteredType { return nil }

// sexpPoint3D wraps a cartography.Point3D.
type sexpPoint3D struct {
	p cartography.Point3D
}

func (s *sexpPoint3D) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point3d %d %d %d)", s.p.X(), s.p.Y(), s.p.Z())
}
func (s *sexpPoint3D) Type() *zygo.RegisteredType { return nil }

// sexpDirection wraps a cartography.CardinalDirection.
type sexpDirection struct {
	d cartography.CardinalDirection
}

func (s *sexpDirection) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(direction :%s)", strings.ToLower(s.d.String()))
}
func (s *sexpDirection) Type() *zygo.RegisteredType { return nil }

// sexpPoints is an ordered neighbour list returned by surrounding/adjacent.
// Every element is a *sexpPoint2D or every element is a *sexpPoint3D.
type sexpPoints struct {
	items []zygo.Sexp
}

func (s *sexpPoints) SexpString(ps *zygo.PrintState) string {
	parts := make([]string, len(s.items))
	for i, it := range s.items {
		parts[i] = it.SexpString(ps)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
func (s *sexpPoints) Type() *zygo.RegisteredType { return nil }

func wrapPoints2D(pts []cartography.Point2D) *sexpPoints {
	items := make([]zygo.Sexp, len(pts))
	for i, p := range pts {
		items[i] = &sexpPoint2D{p: p}
	}
	return &sexpPoints{items: items}
}

func wrapPoints3D(pts []cartography.Point3D) *sexpPoints {
	items := make([]zygo.Sexp, len(pts))
	for i, p := range pts {
		items[i] = &sexpPoint3D{p: p}
	}
	return &sexpPoints{items: items}
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toInt64(s zygo.Sexp) (int64, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toTurns extracts a non-negative rotation count.
func toTurns(s zygo.Sexp) (uint64, error) {
	n, err := toInt64(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("turn count must not be negative, got %d", n)
	}
	return uint64(n), nil
}

// toDirection accepts a direction value or a plain string such as "north"
// or "n". Keywords arrive as direction values after preprocessSource.
func toDirection(s zygo.Sexp) (cartography.CardinalDirection, error) {
	switch v := s.(type) {
	case *sexpDirection:
		return v.d, nil
	case *zygo.SexpStr:
		return cartography.ParseCardinalDirection(v.S)
	}
	return 0, fmt.Errorf("expected direction, got %T (%s)", s, s.SexpString(nil))
}

// fromDistance converts a Manhattan distance to a zygomys integer.
func fromDistance(d uint64) (zygo.Sexp, error) {
	if d > math.MaxInt64 {
		return zygo.SexpNull, fmt.Errorf("distance %d does not fit in a script integer", d)
	}
	return &zygo.SexpInt{Val: int64(d)}, nil
}

func checkArity(name string, args []zygo.Sexp, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return fmt.Errorf("%s expects %d arguments, got %d", name, min, len(args))
		}
		return fmt.Errorf("%s expects %d to %d arguments, got %d", name, min, max, len(args))
	}
	return nil
}

func ints(name string, args []zygo.Sexp) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		n, err := toInt64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = n
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Overflow guard
// ---------------------------------------------------------------------------

// evalState carries per-evaluation state shared by the builtins.
type evalState struct {
	// overflow records the first coordinate overflow raised by a builtin.
	overflow *cartography.OverflowError
}

type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// guard converts a cartography overflow panic into a script error and
// records it on st so Evaluate can report it as fatal. Other panics are
// re-raised.
func guard(st *evalState, fn builtinFunc) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (result zygo.Sexp, err error) {
		defer func() {
			if r := recover(); r != nil {
				oe, ok := r.(*cartography.OverflowError)
				if !ok {
					panic(r)
				}
				if st.overflow == nil {
					st.overflow = oe
				}
				result, err = zygo.SexpNull, fmt.Errorf("%s: %w", name, oe)
			}
		}()
		return fn(env, name, args)
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the cartography builtins into a zygomys
// environment. Source must pass through preprocessSource first so that
// kebab-case names and compass keywords resolve.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	add := func(name string, fn builtinFunc) {
		env.AddFunction(name, guard(st, fn))
	}

	// (point2d x y)
	add("point2d", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 2, 2); err != nil {
			return zygo.SexpNull, err
		}
		n, err := ints(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint2D{p: cartography.NewPoint2D(n[0], n[1])}, nil
	})

	// (point3d x y z)
	add("point3d", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 3, 3); err != nil {
			return zygo.SexpNull, err
		}
		n, err := ints(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint3D{p: cartography.NewPoint3D(n[0], n[1], n[2])}, nil
	})

	// (px p) (py p) (pz p)
	for _, axis := range []string{"px", "py", "pz"} {
		add(axis, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if err := checkArity(name, args, 1, 1); err != nil {
				return zygo.SexpNull, err
			}
			switch p := args[0].(type) {
			case *sexpPoint2D:
				switch axis {
				case "px":
					return &zygo.SexpInt{Val: p.p.X()}, nil
				case "py":
					return &zygo.SexpInt{Val: p.p.Y()}, nil
				}
				return zygo.SexpNull, fmt.Errorf("%s: point2d has no z co-ordinate", name)
			case *sexpPoint3D:
				switch axis {
				case "px":
					return &zygo.SexpInt{Val: p.p.X()}, nil
				case "py":
					return &zygo.SexpInt{Val: p.p.Y()}, nil
				}
				return &zygo.SexpInt{Val: p.p.Z()}, nil
			}
			return zygo.SexpNull, fmt.Errorf("%s: expected point, got %T", name, args[0])
		})
	}

	// (peek-shift p dx dy) or (peek-shift p dx dy dz)
	add("peek_shift", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 3, 4); err != nil {
			return zygo.SexpNull, err
		}
		d, err := ints(name, args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		switch p := args[0].(type) {
		case *sexpPoint2D:
			if len(d) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s: point2d takes 2 deltas, got %d", name, len(d))
			}
			return &sexpPoint2D{p: p.p.PeekShift(d[0], d[1])}, nil
		case *sexpPoint3D:
			if len(d) != 3 {
				return zygo.SexpNull, fmt.Errorf("%s: point3d takes 3 deltas, got %d", name, len(d))
			}
			return &sexpPoint3D{p: p.p.PeekShift(d[0], d[1], d[2])}, nil
		}
		return zygo.SexpNull, fmt.Errorf("%s: expected point, got %T", name, args[0])
	})

	// (surrounding p)
	add("surrounding", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return zygo.SexpNull, err
		}
		switch p := args[0].(type) {
		case *sexpPoint2D:
			return wrapPoints2D(p.p.GetSurroundingPoints()), nil
		case *sexpPoint3D:
			return wrapPoints3D(p.p.GetSurroundingPoints()), nil
		}
		return zygo.SexpNull, fmt.Errorf("%s: expected point, got %T", name, args[0])
	})

	// (adjacent p)
	add("adjacent", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return zygo.SexpNull, err
		}
		switch p := args[0].(type) {
		case *sexpPoint2D:
			return wrapPoints2D(p.p.GetAdjacentPoints()), nil
		case *sexpPoint3D:
			return wrapPoints3D(p.p.GetAdjacentPoints()), nil
		}
		return zygo.SexpNull, fmt.Errorf("%s: expected point, got %T", name, args[0])
	})

	// (manhattan p) from the origin, or (manhattan p q)
	add("manhattan", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 1, 2); err != nil {
			return zygo.SexpNull, err
		}
		switch p := args[0].(type) {
		case *sexpPoint2D:
			if len(args) == 1 {
				return fromDistance(p.p.GetManhattanDistanceOrigin())
			}
			q, ok := args[1].(*sexpPoint2D)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: expected point2d, got %T", name, args[1])
			}
			return fromDistance(p.p.GetManhattanDistance(q.p))
		case *sexpPoint3D:
			if len(args) == 1 {
				return fromDistance(p.p.GetManhattanDistanceOrigin())
			}
			q, ok := args[1].(*sexpPoint3D)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: expected point3d, got %T", name, args[1])
			}
			return fromDistance(p.p.GetManhattanDistance(q.p))
		}
		return zygo.SexpNull, fmt.Errorf("%s: expected point, got %T", name, args[0])
	})

	// (magnitude p) from the origin, or (magnitude p q)
	add("magnitude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 1, 2); err != nil {
			return zygo.SexpNull, err
		}
		switch p := args[0].(type) {
		case *sexpPoint2D:
			if len(args) == 1 {
				return &zygo.SexpFloat{Val: p.p.GetAbsoluteValue()}, nil
			}
			q, ok := args[1].(*sexpPoint2D)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: expected point2d, got %T", name, args[1])
			}
			return &zygo.SexpFloat{Val: p.p.GetAbsoluteValueFrom(q.p)}, nil
		case *sexpPoint3D:
			if len(args) == 1 {
				return &zygo.SexpFloat{Val: p.p.GetAbsoluteValue()}, nil
			}
			q, ok := args[1].(*sexpPoint3D)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: expected point3d, got %T", name, args[1])
			}
			return &zygo.SexpFloat{Val: p.p.GetAbsoluteValueFrom(q.p)}, nil
		}
		return zygo.SexpNull, fmt.Errorf("%s: expected point, got %T", name, args[0])
	})

	// (direction "north"); :north expands to this form
	add("direction", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return zygo.SexpNull, err
		}
		d, err := toDirection(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return &sexpDirection{d: d}, nil
	})

	// (rotate-cw d n) and (rotate-ccw d n)
	rotate := func(clockwise bool) builtinFunc {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if err := checkArity(name, args, 1, 2); err != nil {
				return zygo.SexpNull, err
			}
			d, err := toDirection(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			turns := uint64(1)
			if len(args) == 2 {
				if turns, err = toTurns(args[1]); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
				}
			}
			if clockwise {
				return &sexpDirection{d: d.Rotate90Clockwise(turns)}, nil
			}
			return &sexpDirection{d: d.Rotate90Counterclockwise(turns)}, nil
		}
	}
	add("rotate_cw", rotate(true))
	add("rotate_ccw", rotate(false))

	// (step-point p d) moves a point2d one unit towards a direction.
	add("step_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 2, 2); err != nil {
			return zygo.SexpNull, err
		}
		p, ok := args[0].(*sexpPoint2D)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("%s: expected point2d, got %T", name, args[0])
		}
		d, err := toDirection(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return &sexpPoint2D{p: p.p.Step(d)}, nil
	})

	// (count-points pts)
	add("count_points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return zygo.SexpNull, err
		}
		pts, ok := args[0].(*sexpPoints)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("%s: expected point list, got %T", name, args[0])
		}
		return &zygo.SexpInt{Val: int64(len(pts.items))}, nil
	})

	// (nth-point pts i)
	add("nth_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := checkArity(name, args, 2, 2); err != nil {
			return zygo.SexpNull, err
		}
		pts, ok := args[0].(*sexpPoints)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("%s: expected point list, got %T", name, args[0])
		}
		i, err := toInt64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		if i < 0 || i >= int64(len(pts.items)) {
			return zygo.SexpNull, fmt.Errorf("%s: index %d out of range [0, %d)", name, i, len(pts.items))
		}
		return pts.items[i], nil
	})
}
