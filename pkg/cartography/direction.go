package cartography

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned when a name does not match any compass direction.
var ErrUnknownDirection = errors.New("unknown cardinal direction")

// CardinalDirection is one of the four compass directions. The constants
// are declared in clockwise order so that rotation is index arithmetic
// modulo 4.
type CardinalDirection int

const (
	North CardinalDirection = iota
	East
	South
	West
)

const numDirections = 4

// AllCardinalDirections returns the four directions in clockwise order,
// starting from North.
func AllCardinalDirections() []CardinalDirection {
	return []CardinalDirection{North, East, South, West}
}

func (d CardinalDirection) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("CardinalDirection(%d)", int(d))
	}
}

// IsValid reports whether d is one of the four declared directions.
func (d CardinalDirection) IsValid() bool {
	return d >= North && d <= West
}

// Rotate90Clockwise returns the direction reached by turning 90 degrees
// clockwise n times. Invalid directions are returned unchanged.
func (d CardinalDirection) Rotate90Clockwise(n uint64) CardinalDirection {
	if !d.IsValid() {
		return d
	}
	return CardinalDirection((uint64(d) + n%numDirections) % numDirections)
}

// Rotate90Counterclockwise returns the direction reached by turning 90
// degrees counterclockwise n times. Invalid directions are returned unchanged.
func (d CardinalDirection) Rotate90Counterclockwise(n uint64) CardinalDirection {
	if !d.IsValid() {
		return d
	}
	// A counterclockwise quarter turn is three clockwise ones.
	return d.Rotate90Clockwise(numDirections - n%numDirections)
}

// Opposite returns the direction facing the other way.
func (d CardinalDirection) Opposite() CardinalDirection {
	return d.Rotate90Clockwise(2)
}

// Delta returns the unit step for d on a grid whose y axis grows
// downward, matching the neighbour order used by Point2D: North is
// (0, -1) and East is (1, 0).
func (d CardinalDirection) Delta() (dx, dy int64) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// ParseCardinalDirection parses a direction name. Matching is
// case-insensitive and accepts the full name or its first letter.
func ParseCardinalDirection(s string) (CardinalDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}
