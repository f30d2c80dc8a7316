package mocks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/minesweeper-go/internal/model"
)

func TestMockRandomReplaysQueuedMines(t *testing.T) {
	rnd := NewMockRandom()
	rnd.QueueMines(model.Coordinate{X: 2, Y: 5}, model.Coordinate{X: 0, Y: 1})

	assert.Equal(t, 2, rnd.Intn(3))
	assert.Equal(t, 5, rnd.Intn(6))
	assert.Equal(t, 0, rnd.Intn(3))
	assert.Equal(t, 1, rnd.Intn(6))
}

func TestMockRandomDrainedIntnPanics(t *testing.T) {
	rnd := NewMockRandom()
	rnd.QueueIntn(1)
	rnd.Intn(2)

	assert.PanicsWithValue(t,
		"mocks: Intn(4) called with an empty queue; queue values with QueueIntn or QueueMines",
		func() { rnd.Intn(4) })
}

func TestMockRandomShortMineQueueFailsPlacement(t *testing.T) {
	rnd := NewMockRandom()
	rnd.QueueMines(model.Coordinate{X: 1, Y: 1})

	m := model.NewEmptyTileMap(3, 3)
	assert.Panics(t, func() { _ = m.PlaceMines(rnd, 2) })
}

func TestMockRandomStringDefaultsToEmpty(t *testing.T) {
	rnd := NewMockRandom()
	rnd.QueueString("GAME1")

	assert.Equal(t, "GAME1", rnd.String(12, "AB"))
	assert.Empty(t, rnd.String(12, "AB"))

	rnd.QueueString("X")
	rnd.QueueIntn(1)
	rnd.Reset()
	assert.Empty(t, rnd.String(1, "X"))
	assert.Panics(t, func() { rnd.Intn(1) })
}
