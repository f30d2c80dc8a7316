package model

import "math"

// Point is a position in board-local space, e.g. a pointer location
type Point struct {
	X float64
	Y float64
}

// Geometry places the grid in board-local space
type Geometry struct {
	Origin   Point   // Position of the (0, 0) corner
	TileSize float64 // Pitch of one cell on both axes
}

// DefaultGeometry maps one unit to one cell with the origin at zero
func DefaultGeometry() Geometry {
	return Geometry{TileSize: 1}
}

// Rect is an axis-aligned rectangle, half-open on its far edges
type Rect struct {
	Min Point
	Max Point
}

// Contains returns true if p is inside [Min, Max)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Bounds returns the rectangle covered by a width x height grid
func (g Geometry) Bounds(width, height uint16) Rect {
	return Rect{
		Min: g.Origin,
		Max: Point{
			X: g.Origin.X + float64(width)*g.TileSize,
			Y: g.Origin.Y + float64(height)*g.TileSize,
		},
	}
}

// ToCoordinate floor-divides p by the tile size.
// Returns false for points outside the grid or a degenerate geometry.
func (g Geometry) ToCoordinate(p Point, width, height uint16) (Coordinate, bool) {
	if g.TileSize <= 0 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return Coordinate{}, false
	}
	if !g.Bounds(width, height).Contains(p) {
		return Coordinate{}, false
	}
	x := math.Floor((p.X - g.Origin.X) / g.TileSize)
	y := math.Floor((p.Y - g.Origin.Y) / g.TileSize)
	// Guard against rounding at the far edge
	if x < 0 || y < 0 || x >= float64(width) || y >= float64(height) {
		return Coordinate{}, false
	}
	return Coordinate{X: uint16(x), Y: uint16(y)}, true
}
