package model

// TileHandle is an opaque per-cell identifier handed to presentation layers
type TileHandle uint32

// OutcomeKind tags the result of a trigger
type OutcomeKind string

const (
	OutcomeNoOp            OutcomeKind = "noop"
	OutcomeExplosion       OutcomeKind = "explosion"
	OutcomeUncovered       OutcomeKind = "uncovered"
	OutcomeUncoveredAndWon OutcomeKind = "uncovered_and_won"
)

// RevealedTile is one cell uncovered by a trigger
type RevealedTile struct {
	Coordinate Coordinate
	Handle     TileHandle
	Tile       Tile
}

// TriggerOutcome is the result of Board.Trigger
type TriggerOutcome struct {
	Kind      OutcomeKind
	Uncovered []RevealedTile // In the order the cells were uncovered
}

// Board tracks a session's covered and marked cells over a fixed TileMap
type Board struct {
	TileMap  *TileMap
	Geometry Geometry

	// Covered holds every cell not yet revealed. It only ever shrinks.
	Covered map[Coordinate]TileHandle
	// Marked is always a subset of Covered's keys
	Marked map[Coordinate]bool
}

// HandleFor returns the default row-major handle of a coordinate
func HandleFor(c Coordinate, width uint16) TileHandle {
	return TileHandle(uint32(c.Y)*uint32(width) + uint32(c.X))
}

// NewBoard covers every cell of the tile map
func NewBoard(tileMap *TileMap, geometry Geometry) *Board {
	covered := make(map[Coordinate]TileHandle, tileMap.CellCount())
	for y := uint16(0); y < tileMap.Height; y++ {
		for x := uint16(0); x < tileMap.Width; x++ {
			c := Coordinate{X: x, Y: y}
			covered[c] = HandleFor(c, tileMap.Width)
		}
	}
	return &Board{
		TileMap:  tileMap,
		Geometry: geometry,
		Covered:  covered,
		Marked:   make(map[Coordinate]bool),
	}
}

// MapPointer translates a board-local point into a grid coordinate
func (b *Board) MapPointer(p Point) (Coordinate, bool) {
	return b.Geometry.ToCoordinate(p, b.TileMap.Width, b.TileMap.Height)
}

// Bounds returns the board's rectangle in board-local space
func (b *Board) Bounds() Rect {
	return b.Geometry.Bounds(b.TileMap.Width, b.TileMap.Height)
}

// IsCovered returns true if the cell has not been revealed
func (b *Board) IsCovered(c Coordinate) bool {
	_, ok := b.Covered[c]
	return ok
}

// IsMarked returns true if the cell is covered and flagged
func (b *Board) IsMarked(c Coordinate) bool {
	return b.IsCovered(c) && b.Marked[c]
}

// IsMine returns true if the cell holds a mine
func (b *Board) IsMine(c Coordinate) bool {
	return b.TileMap.IsMineAt(c)
}

// IsCompleted returns true once only mines remain covered
func (b *Board) IsCompleted() bool {
	return len(b.Covered) == int(b.TileMap.MineTotal)
}

// CoveredCount returns the number of cells still covered
func (b *Board) CoveredCount() int {
	return len(b.Covered)
}

// MarkedCount returns the number of flagged cells
func (b *Board) MarkedCount() int {
	return len(b.Marked)
}

// RemainingMines is the mine total minus the flags placed. It goes negative
// when the player over-flags.
func (b *Board) RemainingMines() int {
	return int(b.TileMap.MineTotal) - len(b.Marked)
}

// ToggleMark flips the flag on a covered cell and reports the new state.
// ok is false when the cell is not covered.
func (b *Board) ToggleMark(c Coordinate) (handle TileHandle, marked bool, ok bool) {
	handle, ok = b.Covered[c]
	if !ok {
		return 0, false, false
	}
	if b.Marked[c] {
		delete(b.Marked, c)
		return handle, false, true
	}
	b.Marked[c] = true
	return handle, true, true
}

// Trigger uncovers c. Marked or already uncovered cells are left alone.
// A mine uncovers everything still covered, flags included. An empty tile
// floods outward through connected empty tiles, stopping at numbered ones.
func (b *Board) Trigger(c Coordinate) TriggerOutcome {
	if !b.IsCovered(c) || b.Marked[c] {
		return TriggerOutcome{Kind: OutcomeNoOp}
	}

	if b.IsMine(c) {
		return TriggerOutcome{Kind: OutcomeExplosion, Uncovered: b.uncoverAll(c)}
	}

	revealed := b.flood(c)
	if len(revealed) == 0 {
		return TriggerOutcome{Kind: OutcomeNoOp}
	}
	kind := OutcomeUncovered
	if b.IsCompleted() {
		kind = OutcomeUncoveredAndWon
	}
	return TriggerOutcome{Kind: kind, Uncovered: revealed}
}

// flood reveals start and, if it is empty, every covered cell reachable
// through empty tiles. Cells leave Covered when queued so each is visited once.
func (b *Board) flood(start Coordinate) []RevealedTile {
	var revealed []RevealedTile

	tile, handle, ok := b.take(start)
	if !ok {
		return nil
	}
	revealed = append(revealed, RevealedTile{Coordinate: start, Handle: handle, Tile: tile})
	if !tile.IsEmpty() {
		return revealed
	}

	queue := []Coordinate{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for n := range b.TileMap.AdjacentTo(current) {
			if !b.IsCovered(n) || b.IsMine(n) {
				continue
			}
			nt, nh, ok := b.take(n)
			if !ok {
				continue
			}
			revealed = append(revealed, RevealedTile{Coordinate: n, Handle: nh, Tile: nt})
			if nt.IsEmpty() {
				queue = append(queue, n)
			}
		}
	}
	return revealed
}

// uncoverAll reveals every covered cell, starting with the detonated one
func (b *Board) uncoverAll(first Coordinate) []RevealedTile {
	revealed := make([]RevealedTile, 0, len(b.Covered))
	if tile, handle, ok := b.take(first); ok {
		revealed = append(revealed, RevealedTile{Coordinate: first, Handle: handle, Tile: tile})
	}
	for y := uint16(0); y < b.TileMap.Height; y++ {
		for x := uint16(0); x < b.TileMap.Width; x++ {
			c := Coordinate{X: x, Y: y}
			if tile, handle, ok := b.take(c); ok {
				revealed = append(revealed, RevealedTile{Coordinate: c, Handle: handle, Tile: tile})
			}
		}
	}
	return revealed
}

// take removes c from Covered (and Marked) and returns its tile.
// A covered cell without a backing tile is left in place and reported as not
// ok; CheckInvariants flags it.
func (b *Board) take(c Coordinate) (Tile, TileHandle, bool) {
	handle, ok := b.Covered[c]
	if !ok {
		return Tile{}, 0, false
	}
	tile, ok := b.TileMap.TileAt(c)
	if !ok {
		return Tile{}, 0, false
	}
	delete(b.Marked, c)
	delete(b.Covered, c)
	return tile, handle, true
}

// CheckInvariants reports the first broken board invariant, if any
func (b *Board) CheckInvariants() error {
	for c := range b.Marked {
		if !b.IsCovered(c) {
			return ErrMarkedNotCovered
		}
	}
	if len(b.Covered) > b.TileMap.CellCount() {
		return ErrCoveredOverflow
	}
	for c := range b.Covered {
		if !b.TileMap.InBounds(c) {
			return ErrCoveredOffGrid
		}
	}
	return nil
}
