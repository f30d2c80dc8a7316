package bot

import "github.com/mcoot/minesweeper-go/internal/model"

// MoveAction is what a bot does to a cell
type MoveAction string

const (
	MoveUncover MoveAction = "uncover"
	MoveMark    MoveAction = "mark"
)

// Move is a single suggested action
type Move struct {
	Action     MoveAction
	Coordinate model.Coordinate
	// Certain is false when the move is a guess
	Certain bool
}

// Strategy defines how a bot chooses its next move
type Strategy interface {
	// ChooseMove returns the next move, or false when nothing is left to do
	ChooseMove(board *model.Board) (Move, bool)
}

// candidates lists covered, unmarked cells in row-major order
func candidates(board *model.Board) []model.Coordinate {
	var out []model.Coordinate
	tm := board.TileMap
	for y := uint16(0); y < tm.Height; y++ {
		for x := uint16(0); x < tm.Width; x++ {
			c := model.Coordinate{X: x, Y: y}
			if board.IsCovered(c) && !board.IsMarked(c) {
				out = append(out, c)
			}
		}
	}
	return out
}
