package model

import "iter"

// RandomSource supplies the uniform draws used for mine placement
type RandomSource interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// TileMap is the fixed layout of mines and neighbour counts for a session
type TileMap struct {
	Width     uint16
	Height    uint16
	MineTotal uint16
	Cells     [][]Tile // Row-major: Cells[y][x]
}

// NewEmptyTileMap creates a grid with no mines
func NewEmptyTileMap(width, height uint16) *TileMap {
	cells := make([][]Tile, height)
	for y := range cells {
		cells[y] = make([]Tile, width)
		for x := range cells[y] {
			cells[y][x] = EmptyTile()
		}
	}
	return &TileMap{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// CellCount returns width*height
func (m *TileMap) CellCount() int {
	return int(m.Width) * int(m.Height)
}

// InBounds returns true if the coordinate lies on the grid
func (m *TileMap) InBounds(c Coordinate) bool {
	return c.X < m.Width && c.Y < m.Height
}

// TileAt returns the tile at c, or false if c is off the grid
func (m *TileMap) TileAt(c Coordinate) (Tile, bool) {
	if !m.InBounds(c) {
		return Tile{}, false
	}
	return m.Cells[c.Y][c.X], true
}

// IsMineAt returns true if there is a mine at c. Off-grid is never a mine.
func (m *TileMap) IsMineAt(c Coordinate) bool {
	t, ok := m.TileAt(c)
	return ok && t.IsMine()
}

// AdjacentTo yields the on-grid neighbours of c
func (m *TileMap) AdjacentTo(c Coordinate) iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		for n := range c.Neighbors() {
			if !m.InBounds(n) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// MineCountAt counts the mines around c. Mines themselves report 0.
func (m *TileMap) MineCountAt(c Coordinate) uint8 {
	if !m.InBounds(c) || m.IsMineAt(c) {
		return 0
	}
	var count uint8
	for n := range m.AdjacentTo(c) {
		if m.IsMineAt(n) {
			count++
		}
	}
	return count
}

// PlaceMines scatters mineCount mines by rejection sampling and then
// classifies every other cell by its neighbour count.
// mineCount must be strictly less than the number of cells.
func (m *TileMap) PlaceMines(rnd RandomSource, mineCount uint16) error {
	if m.Width == 0 || m.Height == 0 {
		return ErrInvalidDimensions
	}
	if int(mineCount) >= m.CellCount() {
		return ErrTooManyMines
	}

	remaining := mineCount
	for remaining > 0 {
		x := rnd.Intn(int(m.Width))
		y := rnd.Intn(int(m.Height))
		if x < 0 || x >= int(m.Width) || y < 0 || y >= int(m.Height) {
			continue
		}
		if m.Cells[y][x].IsMine() {
			continue
		}
		m.Cells[y][x] = MineTile()
		remaining--
	}
	m.MineTotal = mineCount

	m.classify()
	return nil
}

// PlaceMinesAt puts mines on exactly the given coordinates, for fixed
// layouts and replays
func (m *TileMap) PlaceMinesAt(mines []Coordinate) error {
	if m.Width == 0 || m.Height == 0 {
		return ErrInvalidDimensions
	}
	if len(mines) >= m.CellCount() {
		return ErrTooManyMines
	}
	for _, c := range mines {
		if !m.InBounds(c) {
			return ErrInvalidPosition
		}
		if m.Cells[c.Y][c.X].IsMine() {
			return ErrDuplicateMine
		}
		m.Cells[c.Y][c.X] = MineTile()
	}
	m.MineTotal = uint16(len(mines))

	m.classify()
	return nil
}

// classify recomputes every non-mine tile from its neighbours
func (m *TileMap) classify() {
	for y := uint16(0); y < m.Height; y++ {
		for x := uint16(0); x < m.Width; x++ {
			if m.Cells[y][x].IsMine() {
				continue
			}
			m.Cells[y][x] = MineAdjacentTile(m.MineCountAt(Coordinate{X: x, Y: y}))
		}
	}
}

// FirstEmpty returns the first empty tile in row-major order
func (m *TileMap) FirstEmpty() (Coordinate, bool) {
	for y := uint16(0); y < m.Height; y++ {
		for x := uint16(0); x < m.Width; x++ {
			if m.Cells[y][x].IsEmpty() {
				return Coordinate{X: x, Y: y}, true
			}
		}
	}
	return Coordinate{}, false
}

// CountMines returns the number of mine tiles actually on the grid
func (m *TileMap) CountMines() int {
	count := 0
	for _, row := range m.Cells {
		for _, t := range row {
			if t.IsMine() {
				count++
			}
		}
	}
	return count
}
