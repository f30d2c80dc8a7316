package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/minesweeper-go/internal/dependencies/clock"
	"github.com/mcoot/minesweeper-go/internal/dependencies/random"
	"github.com/mcoot/minesweeper-go/internal/model"
	"github.com/mcoot/minesweeper-go/internal/services/board"
	"github.com/mcoot/minesweeper-go/internal/storage"
)

const gameIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Publisher receives the events produced by each accepted move
type Publisher interface {
	Publish(events ...model.Event)
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(...model.Event) {}

// MoveResult describes what a single move did to a game
type MoveResult struct {
	Game *model.Game
	// Outcome is only set by uncover moves
	Outcome   model.OutcomeKind
	Uncovered []model.RevealedTile
	// Marked is the flag state after a mark move
	Marked  bool
	Changed bool
	Events  []model.Event
}

// Controller manages the session lifecycle and move flow
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	publisher    Publisher
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
	locks        *gameLocks
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	publisher Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Controller{
		storage:      storage,
		boardService: boardService,
		publisher:    publisher,
		clock:        clock,
		random:       random,
		logger:       logger.With(slog.String("component", "game-controller")),
		locks:        newGameLocks(),
	}
}

// CreateGame generates a board for cfg and starts a new session
func (c *Controller) CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var rnd model.RandomSource = c.random
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
	}

	gameID := model.GameID(c.random.String(12, gameIDCharset))

	b, err := c.boardService.Generate(cfg, rnd)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        gameID,
		State:     model.GameStatePlaying,
		Config:    cfg,
		Board:     b,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var revealEvents []model.Event
	if cfg.SafeFirstReveal {
		if start, ok := c.boardService.SafeStart(b); ok {
			game.SafeStart = &start
			outcome := b.Trigger(start)
			revealEvents = c.applyOutcome(game, start, outcome, now)
		}
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if game.IsFinished() {
		c.recordSummary(ctx, game)
	}

	started := model.Event{
		Type:      model.EventGameStarted,
		Timestamp: now,
		GameID:    game.ID,
		Payload: model.GameStartedPayload{
			Width:     cfg.Width,
			Height:    cfg.Height,
			MineCount: cfg.MineCount,
			SafeStart: game.SafeStart,
		},
	}
	c.publisher.Publish(append([]model.Event{started}, revealEvents...)...)

	attrs := []any{
		slog.String("game_id", string(gameID)),
		slog.Int("width", int(cfg.Width)),
		slog.Int("height", int(cfg.Height)),
		slog.Int("mines", int(cfg.MineCount)),
	}
	if game.SafeStart != nil {
		attrs = append(attrs, slog.String("safe_start", game.SafeStart.String()))
	}
	c.logger.Info("game created", attrs...)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// Uncover triggers the cell at coord
func (c *Controller) Uncover(ctx context.Context, gameID model.GameID, coord model.Coordinate) (*MoveResult, error) {
	return c.withPlayingGame(ctx, gameID, func(game *model.Game) (*MoveResult, error) {
		if !game.Board.TileMap.InBounds(coord) {
			return nil, model.ErrInvalidPosition
		}
		return c.uncover(game, coord), nil
	})
}

// ToggleMark flips the flag on the cell at coord
func (c *Controller) ToggleMark(ctx context.Context, gameID model.GameID, coord model.Coordinate) (*MoveResult, error) {
	return c.withPlayingGame(ctx, gameID, func(game *model.Game) (*MoveResult, error) {
		if !game.Board.TileMap.InBounds(coord) {
			return nil, model.ErrInvalidPosition
		}
		return c.toggleMark(game, coord), nil
	})
}

// Click maps a board-local pointer position to a cell and routes the button.
// Points outside the board change nothing.
func (c *Controller) Click(ctx context.Context, gameID model.GameID, point model.Point, button model.Button) (*MoveResult, error) {
	if _, err := model.ParseButton(string(button)); err != nil {
		return nil, err
	}

	return c.withPlayingGame(ctx, gameID, func(game *model.Game) (*MoveResult, error) {
		coord, ok := game.Board.MapPointer(point)
		if !ok {
			return &MoveResult{Game: game, Outcome: model.OutcomeNoOp}, nil
		}
		if button == model.ButtonRight {
			return c.toggleMark(game, coord), nil
		}
		return c.uncover(game, coord), nil
	})
}

// AbandonGame ends a game prematurely. Finished games are left untouched.
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return game, nil
	}

	now := c.clock.Now()
	game.State = model.GameStateAbandoned
	game.UpdatedAt = now
	game.FinishedAt = &now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	c.recordSummary(ctx, game)

	c.publisher.Publish(model.Event{
		Type:      model.EventGameAbandoned,
		Timestamp: now,
		GameID:    gameID,
	})

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.Int("moves", game.Moves),
	)

	return game, nil
}

// RestartGame abandons the game if still playing and starts a new one with
// the same configuration
func (c *Controller) RestartGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	old, err := c.AbandonGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return c.CreateGame(ctx, old.Config)
}

// ListSummaries returns the most recent finished games, newest first
func (c *Controller) ListSummaries(ctx context.Context, limit int) ([]model.GameSummary, error) {
	return c.storage.ListSummaries(ctx, limit)
}

// withPlayingGame loads a game under its lock, rejects finished games and
// persists the result when fn changed the board
func (c *Controller) withPlayingGame(ctx context.Context, gameID model.GameID, fn func(*model.Game) (*MoveResult, error)) (*MoveResult, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsFinished() {
		return nil, model.ErrGameFinished
	}

	result, err := fn(game)
	if err != nil {
		return nil, err
	}
	if !result.Changed {
		return result, nil
	}

	// Inconsistent boards are logged and kept; the move already happened
	if err := c.boardService.Verify(game.Board); err != nil {
		c.logger.Warn("board invariant violated",
			slog.String("game_id", string(game.ID)),
			slog.Int("covered", game.Board.CoveredCount()),
			slog.Int("marked", game.Board.MarkedCount()),
			slog.String("error", err.Error()),
		)
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if game.IsFinished() {
		c.recordSummary(ctx, game)
	}

	c.publisher.Publish(result.Events...)
	return result, nil
}

func (c *Controller) uncover(game *model.Game, coord model.Coordinate) *MoveResult {
	outcome := game.Board.Trigger(coord)
	result := &MoveResult{
		Game:      game,
		Outcome:   outcome.Kind,
		Uncovered: outcome.Uncovered,
	}
	if outcome.Kind == model.OutcomeNoOp {
		return result
	}

	now := c.clock.Now()
	game.Moves++
	game.UpdatedAt = now
	result.Changed = true
	result.Events = c.applyOutcome(game, coord, outcome, now)

	c.logger.Debug("tile uncovered",
		slog.String("game_id", string(game.ID)),
		slog.String("coordinate", coord.String()),
		slog.String("outcome", string(outcome.Kind)),
		slog.Int("revealed", len(outcome.Uncovered)),
	)
	return result
}

func (c *Controller) toggleMark(game *model.Game, coord model.Coordinate) *MoveResult {
	handle, marked, ok := game.Board.ToggleMark(coord)
	if !ok {
		return &MoveResult{Game: game}
	}

	now := c.clock.Now()
	game.Moves++
	game.UpdatedAt = now
	return &MoveResult{
		Game:    game,
		Marked:  marked,
		Changed: true,
		Events: []model.Event{{
			Type:      model.EventTileMarked,
			Timestamp: now,
			GameID:    game.ID,
			Payload: model.TileMarkedPayload{
				Coordinate: coord,
				Handle:     handle,
				Marked:     marked,
			},
		}},
	}
}

// applyOutcome moves the game to won or lost and returns the events to publish
func (c *Controller) applyOutcome(game *model.Game, trigger model.Coordinate, outcome model.TriggerOutcome, now time.Time) []model.Event {
	events := model.EventsForOutcome(game.ID, now, trigger, outcome)

	switch outcome.Kind {
	case model.OutcomeExplosion:
		game.State = model.GameStateLost
		game.FinishedAt = &now
		c.logger.Info("mine exploded",
			slog.String("game_id", string(game.ID)),
			slog.String("coordinate", trigger.String()),
			slog.Int("moves", game.Moves),
		)
	case model.OutcomeUncoveredAndWon:
		game.State = model.GameStateWon
		game.FinishedAt = &now
		last := &events[len(events)-1]
		last.Payload = model.BoardCompletedPayload{
			Moves:    game.Moves,
			Duration: game.Duration(now),
		}
		c.logger.Info("board completed",
			slog.String("game_id", string(game.ID)),
			slog.Int("moves", game.Moves),
		)
	}
	return events
}

// recordSummary stores the history entry for a finished game. Failures are
// logged only since the game itself is already saved.
func (c *Controller) recordSummary(ctx context.Context, game *model.Game) {
	if err := c.storage.SaveSummary(ctx, game.Summary()); err != nil {
		c.logger.Error("failed to save game summary",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}
}
