package model

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
)

// Coordinate identifies a cell on the grid
type Coordinate struct {
	X uint16 // 0-indexed from left
	Y uint16 // 0-indexed from the first row
}

// squareOffsets is the Moore neighbourhood, in iteration order
var squareOffsets = [8][2]int8{
	{-1, -1},
	{0, -1},
	{1, -1},
	{-1, 0},
	{1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
}

// Offset returns the coordinate shifted by (dx, dy).
// The second result is false when either axis leaves the uint16 range,
// so a shift off the zero edge never aliases the opposite edge.
func (c Coordinate) Offset(dx, dy int8) (Coordinate, bool) {
	x := int(c.X) + int(dx)
	y := int(c.Y) + int(dy)
	if x < 0 || y < 0 || x > math.MaxUint16 || y > math.MaxUint16 {
		return Coordinate{}, false
	}
	return Coordinate{X: uint16(x), Y: uint16(y)}, true
}

// Neighbors yields the up to 8 surrounding coordinates.
// Grid bounds are not checked here; see TileMap.AdjacentTo.
func (c Coordinate) Neighbors() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		for _, off := range squareOffsets {
			n, ok := c.Offset(off[0], off[1])
			if !ok {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// String returns the coordinate as "(x, y)"
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// MarshalText encodes the coordinate as "x,y" so it can key JSON objects
func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(int(c.X)) + "," + strconv.Itoa(int(c.Y))), nil
}

// UnmarshalText parses the "x,y" form produced by MarshalText
func (c *Coordinate) UnmarshalText(text []byte) error {
	xs, ys, ok := strings.Cut(string(text), ",")
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCoordinate, text)
	}
	x, err := strconv.ParseUint(strings.TrimSpace(xs), 10, 16)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCoordinate, text)
	}
	y, err := strconv.ParseUint(strings.TrimSpace(ys), 10, 16)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCoordinate, text)
	}
	c.X = uint16(x)
	c.Y = uint16(y)
	return nil
}
