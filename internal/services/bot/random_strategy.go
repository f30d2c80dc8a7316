package bot

import (
	"github.com/mcoot/minesweeper-go/internal/dependencies/random"
	"github.com/mcoot/minesweeper-go/internal/model"
)

// RandomStrategy uncovers a random covered, unmarked cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove picks uniformly among the cells still in play
func (s *RandomStrategy) ChooseMove(board *model.Board) (Move, bool) {
	open := candidates(board)
	if len(open) == 0 {
		return Move{}, false
	}
	return Move{Action: MoveUncover, Coordinate: open[s.random.Intn(len(open))]}, true
}
