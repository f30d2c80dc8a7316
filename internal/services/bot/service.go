package bot

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mcoot/minesweeper-go/internal/model"
	"github.com/mcoot/minesweeper-go/internal/services/game"
)

const (
	// StrategyRandom guesses uniformly among covered cells
	StrategyRandom = "random"
	// StrategyLogic deduces safe cells and mines, guessing only when stuck
	StrategyLogic = "logic"

	// MaxBotIterations is a safety limit for the Play loop
	MaxBotIterations = 1000
)

// BotAction represents a single move applied by Play
type BotAction struct {
	Move    Move
	Outcome model.OutcomeKind // Empty for mark moves
	Marked  bool
}

// Service suggests and plays moves on behalf of a player
type Service struct {
	gameController *game.Controller
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	gameController *game.Controller,
	strategies map[string]Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Strategies returns the registered strategy names, sorted
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Hint returns the strategy's next move without applying it
func (s *Service) Hint(ctx context.Context, gameID model.GameID, strategy string) (Move, error) {
	st, ok := s.strategies[strategy]
	if !ok {
		return Move{}, model.ErrUnknownStrategy
	}

	g, err := s.gameController.GetGame(ctx, gameID)
	if err != nil {
		return Move{}, err
	}
	if g.IsFinished() {
		return Move{}, model.ErrGameFinished
	}

	move, ok := st.ChooseMove(g.Board)
	if !ok {
		return Move{}, model.ErrNoMoveAvailable
	}
	return move, nil
}

// Play applies up to maxMoves moves through the game controller, stopping
// early when the game finishes or the strategy has nothing left to do.
// It returns all actions taken so handlers can report them.
func (s *Service) Play(ctx context.Context, gameID model.GameID, strategy string, maxMoves int) ([]BotAction, error) {
	st, ok := s.strategies[strategy]
	if !ok {
		return nil, model.ErrUnknownStrategy
	}
	if maxMoves <= 0 || maxMoves > MaxBotIterations {
		maxMoves = MaxBotIterations
	}

	var actions []BotAction
	for range maxMoves {
		g, err := s.gameController.GetGame(ctx, gameID)
		if err != nil {
			return actions, err
		}
		if g.IsFinished() {
			break
		}

		move, ok := st.ChooseMove(g.Board)
		if !ok {
			break
		}

		action := BotAction{Move: move}
		switch move.Action {
		case MoveMark:
			result, err := s.gameController.ToggleMark(ctx, gameID, move.Coordinate)
			if err != nil {
				return actions, err
			}
			action.Marked = result.Marked
		default:
			result, err := s.gameController.Uncover(ctx, gameID, move.Coordinate)
			if err != nil {
				return actions, err
			}
			action.Outcome = result.Outcome
		}
		actions = append(actions, action)
	}

	s.logger.Info("bot played",
		slog.String("game_id", string(gameID)),
		slog.String("strategy", strategy),
		slog.Int("moves", len(actions)),
	)

	return actions, nil
}
