package model

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minesweeper-go/internal/dependencies/random"
)

type TileMapSuite struct {
	suite.Suite
}

func TestTileMapSuite(t *testing.T) {
	suite.Run(t, new(TileMapSuite))
}

// bruteForceCount counts mines around (x, y) with plain index arithmetic
func bruteForceCount(m *TileMap, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= int(m.Width) || ny >= int(m.Height) {
				continue
			}
			if m.Cells[ny][nx].IsMine() {
				count++
			}
		}
	}
	return count
}

// NewEmptyTileMap tests

func (s *TileMapSuite) TestNewEmptyTileMapIsAllEmpty() {
	m := NewEmptyTileMap(4, 3)

	s.Equal(uint16(4), m.Width)
	s.Equal(uint16(3), m.Height)
	s.Len(m.Cells, 3)
	for _, row := range m.Cells {
		s.Len(row, 4)
		for _, t := range row {
			s.True(t.IsEmpty())
		}
	}
	s.Equal(0, m.CountMines())
}

// PlaceMines tests

func (s *TileMapSuite) TestPlaceMinesExactCount() {
	for seed := uint64(0); seed < 50; seed++ {
		m := NewEmptyTileMap(10, 8)
		s.Require().NoError(m.PlaceMines(random.NewSeeded(seed), 20))

		s.Equal(20, m.CountMines(), "seed %d", seed)
		s.Equal(uint16(20), m.MineTotal)
	}
}

func (s *TileMapSuite) TestPlaceMinesNearlyFull() {
	m := NewEmptyTileMap(3, 3)
	s.Require().NoError(m.PlaceMines(random.NewSeeded(7), 8))

	s.Equal(8, m.CountMines())
	_, ok := m.FirstEmpty()
	s.False(ok, "the only safe cell must be numbered")
}

func (s *TileMapSuite) TestPlaceMinesNeighbourCounts() {
	for seed := uint64(0); seed < 30; seed++ {
		m := NewEmptyTileMap(12, 9)
		s.Require().NoError(m.PlaceMines(random.NewSeeded(seed), 25))

		for y := 0; y < int(m.Height); y++ {
			for x := 0; x < int(m.Width); x++ {
				t := m.Cells[y][x]
				if t.IsMine() {
					continue
				}
				want := bruteForceCount(m, x, y)
				if want == 0 {
					s.True(t.IsEmpty(), "(%d, %d) seed %d", x, y, seed)
					s.Equal(uint8(0), t.Count)
				} else {
					s.True(t.IsMineAdjacent(), "(%d, %d) seed %d", x, y, seed)
					s.Equal(uint8(want), t.Count)
				}
			}
		}
	}
}

// queuedSource replays fixed draws
type queuedSource struct{ draws []int }

func (q *queuedSource) Intn(int) int {
	v := q.draws[0]
	q.draws = q.draws[1:]
	return v
}

func (s *TileMapSuite) TestPlaceMinesRetriesOnCollision() {
	// (1,1) twice, then (0,2)
	rnd := &queuedSource{draws: []int{1, 1, 1, 1, 0, 2}}

	m := NewEmptyTileMap(3, 3)
	s.Require().NoError(m.PlaceMines(rnd, 2))

	s.True(m.IsMineAt(Coordinate{X: 1, Y: 1}))
	s.True(m.IsMineAt(Coordinate{X: 0, Y: 2}))
	s.Equal(2, m.CountMines())
}

func (s *TileMapSuite) TestPlaceMinesRejectsFullBoard() {
	m := NewEmptyTileMap(3, 3)

	s.ErrorIs(m.PlaceMines(random.NewSeeded(1), 9), ErrTooManyMines)
	s.ErrorIs(m.PlaceMines(random.NewSeeded(1), 10), ErrTooManyMines)
	s.Equal(0, m.CountMines(), "nothing placed on rejection")
}

func (s *TileMapSuite) TestPlaceMinesRejectsZeroDimension() {
	m := NewEmptyTileMap(0, 5)
	s.ErrorIs(m.PlaceMines(random.NewSeeded(1), 0), ErrInvalidDimensions)
}

func (s *TileMapSuite) TestPlaceZeroMines() {
	m := NewEmptyTileMap(5, 5)
	s.Require().NoError(m.PlaceMines(random.NewSeeded(3), 0))

	s.Equal(0, m.CountMines())
	first, ok := m.FirstEmpty()
	s.True(ok)
	s.Equal(Coordinate{X: 0, Y: 0}, first)
}

// PlaceMinesAt tests

func (s *TileMapSuite) TestPlaceMinesAtCorner() {
	m := NewEmptyTileMap(3, 3)
	s.Require().NoError(m.PlaceMinesAt([]Coordinate{{X: 0, Y: 0}}))

	s.Equal(MineTile(), m.Cells[0][0])
	s.Equal(MineAdjacentTile(1), m.Cells[0][1])
	s.Equal(MineAdjacentTile(1), m.Cells[1][0])
	s.Equal(MineAdjacentTile(1), m.Cells[1][1])
	s.Equal(EmptyTile(), m.Cells[2][2])
	s.Equal(EmptyTile(), m.Cells[0][2])
}

func (s *TileMapSuite) TestPlaceMinesAtSurrounded() {
	m := NewEmptyTileMap(3, 3)
	var mines []Coordinate
	for c := range (Coordinate{X: 1, Y: 1}).Neighbors() {
		mines = append(mines, c)
	}
	s.Require().NoError(m.PlaceMinesAt(mines))

	s.Equal(MineAdjacentTile(8), m.Cells[1][1])
}

func (s *TileMapSuite) TestPlaceMinesAtValidation() {
	s.ErrorIs(NewEmptyTileMap(3, 3).PlaceMinesAt([]Coordinate{{X: 3, Y: 0}}), ErrInvalidPosition)
	s.ErrorIs(NewEmptyTileMap(3, 3).PlaceMinesAt([]Coordinate{{X: 1, Y: 1}, {X: 1, Y: 1}}), ErrDuplicateMine)
}

// Query tests

func (s *TileMapSuite) TestIsMineAtOutOfBounds() {
	m := NewEmptyTileMap(2, 2)
	s.Require().NoError(m.PlaceMinesAt([]Coordinate{{X: 1, Y: 1}}))

	s.False(m.IsMineAt(Coordinate{X: 2, Y: 1}))
	s.False(m.IsMineAt(Coordinate{X: 100, Y: 100}))
	s.True(m.IsMineAt(Coordinate{X: 1, Y: 1}))
}

func (s *TileMapSuite) TestMineCountAtMineIsZero() {
	m := NewEmptyTileMap(3, 3)
	s.Require().NoError(m.PlaceMinesAt([]Coordinate{{X: 1, Y: 1}, {X: 0, Y: 0}}))

	s.Equal(uint8(0), m.MineCountAt(Coordinate{X: 1, Y: 1}))
	s.Equal(uint8(2), m.MineCountAt(Coordinate{X: 1, Y: 0}))
	s.Equal(uint8(0), m.MineCountAt(Coordinate{X: 9, Y: 9}))
}

func (s *TileMapSuite) TestAdjacentToFiltersGrid() {
	m := NewEmptyTileMap(3, 2)

	count := 0
	for c := range m.AdjacentTo(Coordinate{X: 2, Y: 1}) {
		s.True(m.InBounds(c))
		count++
	}
	s.Equal(3, count)
}
