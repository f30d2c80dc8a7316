package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minesweeper-go/internal/dependencies/mocks"
	"github.com/mcoot/minesweeper-go/internal/model"
	"github.com/mcoot/minesweeper-go/internal/services/board"
	"github.com/mcoot/minesweeper-go/internal/storage/memory"
	"github.com/mcoot/minesweeper-go/internal/testutil"
)

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *recordingPublisher) Publish(events ...model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type ControllerSuite struct {
	suite.Suite
	storage      *memory.Storage
	boardService *board.Service
	publisher    *recordingPublisher
	clock        *mocks.MockClock
	random       *mocks.MockRandom
	controller   *Controller
	ctx          context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.boardService = board.New(testutil.NopLogger())
	s.publisher = &recordingPublisher{}
	s.clock = mocks.NewMockClock(testutil.FixedTime)
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.boardService, s.publisher, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func seed(v uint64) *uint64 {
	return &v
}

// saveFixture stores a playing game with mines at fixed coordinates
func (s *ControllerSuite) saveFixture(id model.GameID, width, height uint16, mines ...model.Coordinate) {
	s.Require().NoError(s.storage.SaveGame(s.ctx, testutil.NewGame(id, width, height, mines...)))
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	s.random.QueueString("GAME12345678")

	game, err := s.controller.CreateGame(s.ctx, model.GameConfig{Width: 9, Height: 9, MineCount: 10, Seed: seed(1)})
	s.Require().NoError(err)

	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(model.GameStatePlaying, game.State)
	s.Equal(81, game.Board.CoveredCount())
	s.Equal(10, game.Board.TileMap.CountMines())
	s.Nil(game.SafeStart)
	s.Equal(0, game.Moves)
	s.Equal(testutil.FixedTime, game.CreatedAt)

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.Board.TileMap.Cells, stored.Board.TileMap.Cells)

	s.Equal([]model.EventType{model.EventGameStarted}, s.publisher.types())
}

func (s *ControllerSuite) TestCreateGameWithoutSeedUsesInjectedRandom() {
	s.random.QueueString("UNSEEDED")
	s.random.QueueMines(model.Coordinate{X: 1, Y: 2}, model.Coordinate{X: 3, Y: 0})

	game, err := s.controller.CreateGame(s.ctx, model.GameConfig{Width: 4, Height: 3, MineCount: 2, SafeFirstReveal: true})
	s.Require().NoError(err)

	s.True(game.Board.IsMine(model.Coordinate{X: 1, Y: 2}))
	s.True(game.Board.IsMine(model.Coordinate{X: 3, Y: 0}))
	s.Require().NotNil(game.SafeStart)
	s.Equal(model.Coordinate{X: 0, Y: 0}, *game.SafeStart)
	s.False(game.Board.IsCovered(model.Coordinate{X: 0, Y: 0}))
}

func (s *ControllerSuite) TestCreateGameRejectsInvalidConfig() {
	_, err := s.controller.CreateGame(s.ctx, model.GameConfig{Width: 3, Height: 3, MineCount: 9})
	s.ErrorIs(err, model.ErrTooManyMines)

	_, err = s.controller.CreateGame(s.ctx, model.GameConfig{Width: 0, Height: 3})
	s.ErrorIs(err, model.ErrInvalidDimensions)

	_, err = s.controller.CreateGame(s.ctx, model.GameConfig{Width: 65535, Height: 65535})
	s.ErrorIs(err, model.ErrBoardTooLarge)

	s.Empty(s.publisher.types())
}

func (s *ControllerSuite) TestCreateGameSeedIsReproducible() {
	s.random.QueueString("GAME1", "GAME2")
	cfg := model.GameConfig{Width: 16, Height: 16, MineCount: 40, Seed: seed(77)}

	a, err := s.controller.CreateGame(s.ctx, cfg)
	s.Require().NoError(err)
	b, err := s.controller.CreateGame(s.ctx, cfg)
	s.Require().NoError(err)

	s.Equal(a.Board.TileMap.Cells, b.Board.TileMap.Cells)
}

func (s *ControllerSuite) TestCreateGameSafeFirstReveal() {
	for v := uint64(0); v < 20; v++ {
		s.random.QueueString("SAFE")
		game, err := s.controller.CreateGame(s.ctx, model.GameConfig{
			Width: 9, Height: 9, MineCount: 10, SafeFirstReveal: true, Seed: seed(v),
		})
		s.Require().NoError(err)

		want, ok := game.Board.TileMap.FirstEmpty()
		if !ok {
			s.Nil(game.SafeStart)
			continue
		}
		s.Require().NotNil(game.SafeStart, "seed %d", v)
		s.Equal(want, *game.SafeStart)
		s.False(game.Board.IsCovered(want))
		s.Less(game.Board.CoveredCount(), 81)
		s.False(game.Board.IsMine(want))
		s.Equal(0, game.Moves, "the safe reveal is not a move")
	}
}

func (s *ControllerSuite) TestCreateGameSafeFirstRevealWithoutMinesWins() {
	s.random.QueueString("EASY")

	game, err := s.controller.CreateGame(s.ctx, model.GameConfig{Width: 4, Height: 4, SafeFirstReveal: true})
	s.Require().NoError(err)

	s.Equal(model.GameStateWon, game.State)
	s.NotNil(game.FinishedAt)

	summaries, err := s.controller.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(model.GameStateWon, summaries[0].Result)

	types := s.publisher.types()
	s.Equal(model.EventGameStarted, types[0])
	s.Equal(model.EventBoardCompleted, types[len(types)-1])
}

// Uncover tests

func (s *ControllerSuite) TestUncoverFloods() {
	s.saveFixture("g", 5, 3, model.Coordinate{X: 4, Y: 2})

	result, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 0, Y: 0})
	s.Require().NoError(err)

	s.True(result.Changed)
	s.Equal(model.OutcomeUncoveredAndWon, result.Outcome)
	s.Len(result.Uncovered, 14)
	s.Equal(model.GameStateWon, result.Game.State)
	s.Equal(1, result.Game.Moves)
}

func (s *ControllerSuite) TestUncoverNumberedTile() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 0, Y: 0})

	result, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)

	s.Equal(model.OutcomeUncovered, result.Outcome)
	s.Require().Len(result.Uncovered, 1)
	s.Equal(model.GameStatePlaying, result.Game.State)

	stored, err := s.controller.GetGame(s.ctx, "g")
	s.Require().NoError(err)
	s.False(stored.Board.IsCovered(model.Coordinate{X: 1, Y: 1}))
	s.Equal(1, stored.Moves)

	s.Equal([]model.EventType{model.EventTileUncovered}, s.publisher.types())
}

func (s *ControllerSuite) TestUncoverMineLoses() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 1, Y: 1})
	s.clock.Advance(45 * time.Second)

	result, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)

	s.Equal(model.OutcomeExplosion, result.Outcome)
	s.Len(result.Uncovered, 9)
	s.Equal(model.GameStateLost, result.Game.State)
	s.Require().NotNil(result.Game.FinishedAt)

	types := s.publisher.types()
	s.Len(types, 10)
	s.Equal(model.EventMineExploded, types[9])

	summaries, err := s.controller.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(model.GameStateLost, summaries[0].Result)
	s.Equal(45*time.Second, summaries[0].Duration)
}

func (s *ControllerSuite) TestUncoverWinPublishesCompletion() {
	s.saveFixture("g", 2, 1, model.Coordinate{X: 0, Y: 0})

	_, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 1, Y: 0})
	s.Require().NoError(err)

	last := s.publisher.events[len(s.publisher.events)-1]
	s.Equal(model.EventBoardCompleted, last.Type)
	payload, ok := last.Payload.(model.BoardCompletedPayload)
	s.Require().True(ok)
	s.Equal(1, payload.Moves)
}

func (s *ControllerSuite) TestUncoverMarkedCellIsNoOp() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 1, Y: 1})
	_, err := s.controller.ToggleMark(s.ctx, "g", model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)

	result, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)

	s.False(result.Changed)
	s.Equal(model.OutcomeNoOp, result.Outcome)
	s.Equal(model.GameStatePlaying, result.Game.State)
	s.Equal(1, result.Game.Moves)
}

func (s *ControllerSuite) TestUncoverOutOfBounds() {
	s.saveFixture("g", 3, 3)

	_, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 3, Y: 0})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ControllerSuite) TestUncoverGameNotFound() {
	_, err := s.controller.Uncover(s.ctx, "missing", model.Coordinate{})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestUncoverAfterFinishFails() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 1, Y: 1})
	_, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)

	_, err = s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrGameFinished)

	_, err = s.controller.ToggleMark(s.ctx, "g", model.Coordinate{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *ControllerSuite) TestMoveOnInconsistentBoardLogsWarning() {
	g := testutil.NewGame("g", 3, 3, model.Coordinate{X: 0, Y: 0})
	delete(g.Board.Covered, model.Coordinate{X: 2, Y: 2})
	g.Board.Marked[model.Coordinate{X: 2, Y: 2}] = true
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	logger, logs := testutil.CaptureLogger()
	controller := NewController(s.storage, s.boardService, s.publisher, s.clock, s.random, logger)

	result, err := controller.ToggleMark(s.ctx, "g", model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)
	s.True(result.Changed)

	s.Contains(logs.String(), `"msg":"board invariant violated"`)
	s.Contains(logs.String(), `"game_id":"g"`)
	s.Contains(logs.String(), model.ErrMarkedNotCovered.Error())
}

// ToggleMark tests

func (s *ControllerSuite) TestToggleMarkAlternates() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 1, Y: 1})
	c := model.Coordinate{X: 2, Y: 0}

	result, err := s.controller.ToggleMark(s.ctx, "g", c)
	s.Require().NoError(err)
	s.True(result.Marked)
	s.True(result.Changed)

	result, err = s.controller.ToggleMark(s.ctx, "g", c)
	s.Require().NoError(err)
	s.False(result.Marked)

	stored, err := s.controller.GetGame(s.ctx, "g")
	s.Require().NoError(err)
	s.False(stored.Board.IsMarked(c))
	s.Equal(2, stored.Moves)

	s.Require().Len(s.publisher.events, 2)
	payload := s.publisher.events[0].Payload.(model.TileMarkedPayload)
	s.Equal(c, payload.Coordinate)
	s.Equal(model.TileHandle(2), payload.Handle)
	s.True(payload.Marked)
}

func (s *ControllerSuite) TestToggleMarkUncoveredCellIsNoOp() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 0, Y: 0})
	_, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 2, Y: 2})
	s.Require().NoError(err)

	result, err := s.controller.ToggleMark(s.ctx, "g", model.Coordinate{X: 2, Y: 2})
	s.Require().NoError(err)
	s.False(result.Changed)
	s.False(result.Marked)
}

// Click tests

func (s *ControllerSuite) TestClickRoutesButtons() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 0, Y: 0})

	result, err := s.controller.Click(s.ctx, "g", model.Point{X: 0.5, Y: 0.9}, model.ButtonRight)
	s.Require().NoError(err)
	s.True(result.Marked)

	result, err = s.controller.Click(s.ctx, "g", model.Point{X: 2.2, Y: 2.7}, model.ButtonLeft)
	s.Require().NoError(err)
	s.Equal(model.OutcomeUncoveredAndWon, result.Outcome)
}

func (s *ControllerSuite) TestClickOutsideBoardIsNoOp() {
	s.saveFixture("g", 3, 3)

	result, err := s.controller.Click(s.ctx, "g", model.Point{X: 3, Y: 1}, model.ButtonLeft)
	s.Require().NoError(err)
	s.False(result.Changed)
	s.Equal(model.OutcomeNoOp, result.Outcome)

	result, err = s.controller.Click(s.ctx, "g", model.Point{X: -0.1, Y: 1}, model.ButtonRight)
	s.Require().NoError(err)
	s.False(result.Changed)
}

func (s *ControllerSuite) TestClickInvalidButton() {
	s.saveFixture("g", 3, 3)

	_, err := s.controller.Click(s.ctx, "g", model.Point{}, model.Button("middle"))
	s.ErrorIs(err, model.ErrInvalidButton)
}

// Abandon and restart tests

func (s *ControllerSuite) TestAbandonGame() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 1, Y: 1})

	game, err := s.controller.AbandonGame(s.ctx, "g")
	s.Require().NoError(err)
	s.Equal(model.GameStateAbandoned, game.State)
	s.NotNil(game.FinishedAt)

	_, err = s.controller.Uncover(s.ctx, "g", model.Coordinate{})
	s.ErrorIs(err, model.ErrGameFinished)

	s.Equal([]model.EventType{model.EventGameAbandoned}, s.publisher.types())
}

func (s *ControllerSuite) TestAbandonFinishedGameIsNoOp() {
	s.saveFixture("g", 3, 3, model.Coordinate{X: 1, Y: 1})
	_, err := s.controller.Uncover(s.ctx, "g", model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)

	game, err := s.controller.AbandonGame(s.ctx, "g")
	s.Require().NoError(err)
	s.Equal(model.GameStateLost, game.State)

	summaries, err := s.controller.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(summaries, 1)
}

func (s *ControllerSuite) TestRestartGame() {
	s.random.QueueString("FIRST", "SECOND")
	first, err := s.controller.CreateGame(s.ctx, model.GameConfig{Width: 8, Height: 6, MineCount: 5, Seed: seed(3)})
	s.Require().NoError(err)

	second, err := s.controller.RestartGame(s.ctx, first.ID)
	s.Require().NoError(err)

	s.Equal(model.GameID("SECOND"), second.ID)
	s.Equal(first.Config.Width, second.Config.Width)
	s.Equal(first.Config.MineCount, second.Config.MineCount)
	s.Equal(model.GameStatePlaying, second.State)

	old, err := s.controller.GetGame(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateAbandoned, old.State)
}

func (s *ControllerSuite) TestRestartMissingGame() {
	_, err := s.controller.RestartGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Concurrency

func (s *ControllerSuite) TestConcurrentMovesAreSerialised() {
	s.saveFixture("g", 10, 10, model.Coordinate{X: 9, Y: 9})

	var wg sync.WaitGroup
	for x := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.controller.ToggleMark(s.ctx, "g", model.Coordinate{X: uint16(x), Y: 0})
		}()
	}
	wg.Wait()

	stored, err := s.controller.GetGame(s.ctx, "g")
	s.Require().NoError(err)
	s.Equal(10, stored.Board.MarkedCount(), "no toggle lost to a concurrent writer")
	s.Equal(10, stored.Moves)
}
