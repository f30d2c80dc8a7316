package bot

import (
	"github.com/mcoot/minesweeper-go/internal/model"
)

// LogicStrategy applies the two single-tile deductions and guesses through
// its fallback when neither applies.
//
// For an uncovered number n with m marked and k covered neighbours:
//   - n == m: every other covered neighbour is safe
//   - n == k: every covered neighbour is a mine
type LogicStrategy struct {
	fallback Strategy
}

// NewLogicStrategy creates a new LogicStrategy. fallback may be nil, in which
// case the strategy stops when no deduction applies.
func NewLogicStrategy(fallback Strategy) *LogicStrategy {
	return &LogicStrategy{fallback: fallback}
}

// ChooseMove returns the first certain move in row-major order of the clue
func (s *LogicStrategy) ChooseMove(board *model.Board) (Move, bool) {
	if move, ok := deduce(board); ok {
		return move, true
	}
	if s.fallback == nil {
		return Move{}, false
	}
	return s.fallback.ChooseMove(board)
}

func deduce(board *model.Board) (Move, bool) {
	tm := board.TileMap
	for y := uint16(0); y < tm.Height; y++ {
		for x := uint16(0); x < tm.Width; x++ {
			clue := model.Coordinate{X: x, Y: y}
			if board.IsCovered(clue) {
				continue
			}
			tile, _ := tm.TileAt(clue)
			if !tile.IsMineAdjacent() {
				continue
			}

			var marked, covered int
			var unmarked []model.Coordinate
			for n := range tm.AdjacentTo(clue) {
				if !board.IsCovered(n) {
					continue
				}
				covered++
				if board.IsMarked(n) {
					marked++
				} else {
					unmarked = append(unmarked, n)
				}
			}
			if len(unmarked) == 0 {
				continue
			}

			count := int(tile.Count)
			if count == marked {
				return Move{Action: MoveUncover, Coordinate: unmarked[0], Certain: true}, true
			}
			if count == covered {
				return Move{Action: MoveMark, Coordinate: unmarked[0], Certain: true}, true
			}
		}
	}
	return Move{}, false
}
