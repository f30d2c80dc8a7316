package model

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minesweeper-go/internal/dependencies/random"
)

type BoardSuite struct {
	suite.Suite
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

// newBoardWithMines builds a board with mines at fixed positions
func (s *BoardSuite) newBoardWithMines(width, height uint16, mines ...Coordinate) *Board {
	m := NewEmptyTileMap(width, height)
	s.Require().NoError(m.PlaceMinesAt(mines))
	return NewBoard(m, DefaultGeometry())
}

func coords(revealed []RevealedTile) map[Coordinate]bool {
	out := make(map[Coordinate]bool, len(revealed))
	for _, r := range revealed {
		out[r.Coordinate] = true
	}
	return out
}

// NewBoard tests

func (s *BoardSuite) TestNewBoardCoversEverything() {
	b := s.newBoardWithMines(4, 3)

	s.Equal(12, b.CoveredCount())
	s.Equal(0, b.MarkedCount())
	s.Equal(TileHandle(7), b.Covered[Coordinate{X: 3, Y: 1}])
	s.NoError(b.CheckInvariants())
}

// Trigger tests

func (s *BoardSuite) TestTriggerEmptyBoardFloodsAndWins() {
	for _, start := range []Coordinate{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 1}} {
		b := s.newBoardWithMines(5, 5)
		out := b.Trigger(start)

		s.Equal(OutcomeUncoveredAndWon, out.Kind)
		s.Len(out.Uncovered, 25)
		s.Len(coords(out.Uncovered), 25, "no cell revealed twice")
		s.Equal(start, out.Uncovered[0].Coordinate)
		s.Equal(0, b.CoveredCount())
	}
}

func (s *BoardSuite) TestTriggerNumberedTileDoesNotPropagate() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 0, Y: 0})

	out := b.Trigger(Coordinate{X: 1, Y: 1})

	s.Equal(OutcomeUncovered, out.Kind)
	s.Require().Len(out.Uncovered, 1)
	s.Equal(MineAdjacentTile(1), out.Uncovered[0].Tile)
	s.Equal(8, b.CoveredCount())
}

func (s *BoardSuite) TestTriggerFloodStopsAtNumberedBorder() {
	// Column x=2 is a wall of mines on a 5x3 board
	b := s.newBoardWithMines(5, 3,
		Coordinate{X: 2, Y: 0}, Coordinate{X: 2, Y: 1}, Coordinate{X: 2, Y: 2})

	out := b.Trigger(Coordinate{X: 0, Y: 1})

	s.Equal(OutcomeUncovered, out.Kind)
	got := coords(out.Uncovered)
	s.Len(got, 6)
	for y := uint16(0); y < 3; y++ {
		s.True(got[Coordinate{X: 0, Y: y}])
		s.True(got[Coordinate{X: 1, Y: y}], "numbered border is uncovered")
		s.False(got[Coordinate{X: 2, Y: y}], "mines are never propagated into")
		s.False(got[Coordinate{X: 3, Y: y}])
	}
	s.True(b.IsCovered(Coordinate{X: 4, Y: 1}))
}

func (s *BoardSuite) TestTriggerWinsWhenLastSafeCellUncovered() {
	b := s.newBoardWithMines(2, 1, Coordinate{X: 0, Y: 0})

	out := b.Trigger(Coordinate{X: 1, Y: 0})

	s.Equal(OutcomeUncoveredAndWon, out.Kind)
	s.True(b.IsCompleted())
	s.Equal(1, b.CoveredCount())
}

func (s *BoardSuite) TestTriggerMineExplodesAndRevealsEverything() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 1, Y: 1})
	_, marked, ok := b.ToggleMark(Coordinate{X: 0, Y: 0})
	s.Require().True(ok)
	s.Require().True(marked)

	out := b.Trigger(Coordinate{X: 1, Y: 1})

	s.Equal(OutcomeExplosion, out.Kind)
	s.Len(out.Uncovered, 9)
	s.Equal(Coordinate{X: 1, Y: 1}, out.Uncovered[0].Coordinate)
	s.True(coords(out.Uncovered)[Coordinate{X: 0, Y: 0}], "marked cell force-revealed")
	s.Equal(0, b.CoveredCount())
	s.Equal(0, b.MarkedCount())
}

func (s *BoardSuite) TestTriggerMarkedCellIsNoOp() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 1, Y: 1})
	c := Coordinate{X: 2, Y: 2}
	b.ToggleMark(c)

	out := b.Trigger(c)

	s.Equal(OutcomeNoOp, out.Kind)
	s.Empty(out.Uncovered)
	s.True(b.IsCovered(c))
	s.True(b.IsMarked(c))
}

func (s *BoardSuite) TestTriggerMarkedMineIsNoOp() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 1, Y: 1})
	b.ToggleMark(Coordinate{X: 1, Y: 1})

	out := b.Trigger(Coordinate{X: 1, Y: 1})

	s.Equal(OutcomeNoOp, out.Kind)
	s.Equal(9, b.CoveredCount())
}

func (s *BoardSuite) TestTriggerUncoveredCellIsNoOp() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 0, Y: 0})
	b.Trigger(Coordinate{X: 2, Y: 2})
	before := b.CoveredCount()

	out := b.Trigger(Coordinate{X: 2, Y: 2})

	s.Equal(OutcomeNoOp, out.Kind)
	s.Equal(before, b.CoveredCount())
}

func (s *BoardSuite) TestTriggerOutOfBoundsIsNoOp() {
	b := s.newBoardWithMines(3, 3)

	out := b.Trigger(Coordinate{X: 3, Y: 0})

	s.Equal(OutcomeNoOp, out.Kind)
	s.Equal(9, b.CoveredCount())
}

func (s *BoardSuite) TestFloodRemovesMarksOnRevealedCells() {
	b := s.newBoardWithMines(4, 4, Coordinate{X: 3, Y: 3})
	b.ToggleMark(Coordinate{X: 0, Y: 3})

	// (0,3) is marked so it cannot be the trigger, but the fill may reach it
	out := b.Trigger(Coordinate{X: 0, Y: 0})

	s.Equal(OutcomeUncoveredAndWon, out.Kind)
	s.False(b.IsMarked(Coordinate{X: 0, Y: 3}))
	s.False(b.IsCovered(Coordinate{X: 0, Y: 3}))
	s.NoError(b.CheckInvariants())
}

func (s *BoardSuite) TestTriggerCoveredCellWithoutTileIsNoOp() {
	b := s.newBoardWithMines(2, 2)
	ghost := Coordinate{X: 5, Y: 5}
	b.Covered[ghost] = 99

	out := b.Trigger(ghost)

	s.Equal(OutcomeNoOp, out.Kind)
	s.Contains(b.Covered, ghost)
	s.ErrorIs(b.CheckInvariants(), ErrCoveredOffGrid)
}

// ToggleMark tests

func (s *BoardSuite) TestToggleMarkAlternates() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 1, Y: 1})
	c := Coordinate{X: 0, Y: 2}

	h, marked, ok := b.ToggleMark(c)
	s.True(ok)
	s.True(marked)
	s.Equal(TileHandle(6), h)
	s.True(b.IsMarked(c))

	_, marked, ok = b.ToggleMark(c)
	s.True(ok)
	s.False(marked)
	s.False(b.IsMarked(c))
}

func (s *BoardSuite) TestToggleMarkUncoveredCellFails() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 0, Y: 0})
	b.Trigger(Coordinate{X: 2, Y: 2})

	_, _, ok := b.ToggleMark(Coordinate{X: 2, Y: 2})
	s.False(ok)
	s.False(b.IsMarked(Coordinate{X: 2, Y: 2}))
}

func (s *BoardSuite) TestToggleMarkOffGridFails() {
	b := s.newBoardWithMines(3, 3)

	_, _, ok := b.ToggleMark(Coordinate{X: 10, Y: 10})
	s.False(ok)
}

func (s *BoardSuite) TestRemainingMines() {
	b := s.newBoardWithMines(3, 3, Coordinate{X: 1, Y: 1})
	s.Equal(1, b.RemainingMines())

	b.ToggleMark(Coordinate{X: 0, Y: 0})
	b.ToggleMark(Coordinate{X: 0, Y: 1})
	s.Equal(-1, b.RemainingMines())
}

// Session invariants over random play

func (s *BoardSuite) TestRandomPlayKeepsInvariants() {
	for seed := uint64(0); seed < 40; seed++ {
		rnd := random.NewSeeded(seed)
		m := NewEmptyTileMap(8, 8)
		s.Require().NoError(m.PlaceMines(rnd, 10))
		b := NewBoard(m, DefaultGeometry())

		prev := b.CoveredCount()
		for step := 0; step < 200; step++ {
			c := Coordinate{X: uint16(rnd.Intn(8)), Y: uint16(rnd.Intn(8))}
			var out TriggerOutcome
			if rnd.Intn(3) == 0 {
				b.ToggleMark(c)
			} else {
				out = b.Trigger(c)
			}

			s.Require().NoError(b.CheckInvariants(), "seed %d step %d", seed, step)
			s.LessOrEqual(b.CoveredCount(), prev, "covered set never grows")
			prev = b.CoveredCount()

			if out.Kind == OutcomeExplosion || out.Kind == OutcomeUncoveredAndWon {
				break
			}
		}
	}
}

// MapPointer tests

func (s *BoardSuite) TestMapPointerFloorsToLowerCell() {
	m := NewEmptyTileMap(4, 3)
	b := NewBoard(m, Geometry{Origin: Point{X: 10, Y: 20}, TileSize: 8})

	c, ok := b.MapPointer(Point{X: 10, Y: 20})
	s.True(ok)
	s.Equal(Coordinate{X: 0, Y: 0}, c)

	c, ok = b.MapPointer(Point{X: 17.99, Y: 27.5})
	s.True(ok)
	s.Equal(Coordinate{X: 0, Y: 0}, c)

	c, ok = b.MapPointer(Point{X: 18, Y: 36.1})
	s.True(ok)
	s.Equal(Coordinate{X: 1, Y: 2}, c)

	c, ok = b.MapPointer(Point{X: 41.9, Y: 43.9})
	s.True(ok)
	s.Equal(Coordinate{X: 3, Y: 2}, c)
}

func (s *BoardSuite) TestMapPointerOutsideBounds() {
	m := NewEmptyTileMap(4, 3)
	b := NewBoard(m, Geometry{Origin: Point{X: 10, Y: 20}, TileSize: 8})

	for _, p := range []Point{
		{X: 9.99, Y: 25},
		{X: 15, Y: 19},
		{X: 42, Y: 25},
		{X: 15, Y: 44},
		{X: -100, Y: -100},
	} {
		_, ok := b.MapPointer(p)
		s.False(ok, "%v", p)
	}
}

func (s *BoardSuite) TestMapPointerDegenerateGeometry() {
	b := NewBoard(NewEmptyTileMap(2, 2), Geometry{TileSize: 0})

	_, ok := b.MapPointer(Point{X: 0, Y: 0})
	s.False(ok)
}
