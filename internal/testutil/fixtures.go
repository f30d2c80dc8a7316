package testutil

import (
	"time"

	"github.com/mcoot/minesweeper-go/internal/model"
)

// FixedTime is the reference instant used by test clocks
var FixedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NewBoard builds a fully covered board with mines at fixed coordinates.
// It panics on invalid input since fixtures are static.
func NewBoard(width, height uint16, mines ...model.Coordinate) *model.Board {
	tm := model.NewEmptyTileMap(width, height)
	if err := tm.PlaceMinesAt(mines); err != nil {
		panic(err)
	}
	return model.NewBoard(tm, model.DefaultGeometry())
}

// NewGame wraps a fixed board in a playing game
func NewGame(id model.GameID, width, height uint16, mines ...model.Coordinate) *model.Game {
	return &model.Game{
		ID:    id,
		State: model.GameStatePlaying,
		Config: model.GameConfig{
			Width:     width,
			Height:    height,
			MineCount: uint16(len(mines)),
		},
		Board:     NewBoard(width, height, mines...),
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// NewSummary builds a finished-game record
func NewSummary(id model.GameID, result model.GameState, finishedAt time.Time) model.GameSummary {
	return model.GameSummary{
		ID:         id,
		Result:     result,
		Width:      9,
		Height:     9,
		MineCount:  10,
		Moves:      7,
		Duration:   90 * time.Second,
		FinishedAt: finishedAt,
	}
}
