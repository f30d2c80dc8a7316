package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStatePlaying   GameState = "playing"
	GameStateWon       GameState = "won"
	GameStateLost      GameState = "lost"
	GameStateAbandoned GameState = "abandoned"
)

// Game is a single minesweeper session
type Game struct {
	ID     GameID
	State  GameState
	Config GameConfig
	Board  *Board

	// SafeStart is the tile revealed at creation when SafeFirstReveal is set
	SafeStart *Coordinate

	Moves int // Triggers and mark toggles that changed the board

	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt *time.Time
}

// IsFinished returns true once the game accepts no more moves
func (g *Game) IsFinished() bool {
	return g.State != GameStatePlaying
}

// Duration returns how long the game ran, up to now if still playing
func (g *Game) Duration(now time.Time) time.Duration {
	if g.FinishedAt != nil {
		return g.FinishedAt.Sub(g.CreatedAt)
	}
	return now.Sub(g.CreatedAt)
}

// GameSummary is a lightweight record of a finished game
type GameSummary struct {
	ID         GameID
	Result     GameState
	Width      uint16
	Height     uint16
	MineCount  uint16
	Moves      int
	Duration   time.Duration
	FinishedAt time.Time
}

// Summary builds the history record for a finished game
func (g *Game) Summary() GameSummary {
	s := GameSummary{
		ID:        g.ID,
		Result:    g.State,
		Width:     g.Config.Width,
		Height:    g.Config.Height,
		MineCount: g.Config.MineCount,
		Moves:     g.Moves,
	}
	if g.FinishedAt != nil {
		s.FinishedAt = *g.FinishedAt
		s.Duration = g.FinishedAt.Sub(g.CreatedAt)
	}
	return s
}
