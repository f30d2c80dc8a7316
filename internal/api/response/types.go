package response

import (
	"time"

	"github.com/mcoot/minesweeper-go/internal/model"
	"github.com/mcoot/minesweeper-go/internal/services/board"
	"github.com/mcoot/minesweeper-go/internal/services/bot"
	"github.com/mcoot/minesweeper-go/internal/services/game"
)

// Coordinate is a grid position
type Coordinate struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

// CoordinateFromModel converts a model.Coordinate
func CoordinateFromModel(c model.Coordinate) Coordinate {
	return Coordinate{X: c.X, Y: c.Y}
}

// Game is the player-facing view of a session. Covered tiles are only
// shown once the game is finished.
type Game struct {
	ID             string      `json:"id"`
	State          string      `json:"state"`
	Width          uint16      `json:"width"`
	Height         uint16      `json:"height"`
	MineCount      uint16      `json:"mine_count"`
	RemainingMines int         `json:"remaining_mines"`
	Covered        int         `json:"covered"`
	Moves          int         `json:"moves"`
	SafeStart      *Coordinate `json:"safe_start,omitempty"`
	Rows           []string    `json:"rows"`
	CreatedAt      time.Time   `json:"created_at"`
	FinishedAt     *time.Time  `json:"finished_at,omitempty"`
	DurationMs     int64       `json:"duration_ms"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game, now time.Time) Game {
	resp := Game{
		ID:             string(g.ID),
		State:          string(g.State),
		Width:          g.Config.Width,
		Height:         g.Config.Height,
		MineCount:      g.Config.MineCount,
		RemainingMines: g.Board.RemainingMines(),
		Covered:        g.Board.CoveredCount(),
		Moves:          g.Moves,
		Rows:           board.Render(g.Board, g.IsFinished()),
		CreatedAt:      g.CreatedAt,
		FinishedAt:     g.FinishedAt,
		DurationMs:     g.Duration(now).Milliseconds(),
	}
	if g.SafeStart != nil {
		c := CoordinateFromModel(*g.SafeStart)
		resp.SafeStart = &c
	}
	return resp
}

// Cell is a tile revealed by a move
type Cell struct {
	Coordinate
	Handle uint32 `json:"handle"`
	Kind   string `json:"kind"`
	Count  uint8  `json:"count,omitempty"`
}

// Move is the response for uncover, mark and click
type Move struct {
	Game      Game   `json:"game"`
	Changed   bool   `json:"changed"`
	Outcome   string `json:"outcome,omitempty"`
	Uncovered []Cell `json:"uncovered,omitempty"`
	Marked    *bool  `json:"marked,omitempty"`
}

// MoveFromResult converts a controller MoveResult
func MoveFromResult(r *game.MoveResult, now time.Time) Move {
	resp := Move{
		Game:    GameFromModel(r.Game, now),
		Changed: r.Changed,
		Outcome: string(r.Outcome),
	}
	for _, t := range r.Uncovered {
		resp.Uncovered = append(resp.Uncovered, Cell{
			Coordinate: CoordinateFromModel(t.Coordinate),
			Handle:     uint32(t.Handle),
			Kind:       string(t.Tile.Kind),
			Count:      t.Tile.Count,
		})
	}
	if r.Outcome == "" {
		marked := r.Marked
		resp.Marked = &marked
	}
	return resp
}

// Summary is a finished game record
type Summary struct {
	ID         string    `json:"id"`
	Result     string    `json:"result"`
	Width      uint16    `json:"width"`
	Height     uint16    `json:"height"`
	MineCount  uint16    `json:"mine_count"`
	Moves      int       `json:"moves"`
	DurationMs int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

// SummaryFromModel converts a model.GameSummary
func SummaryFromModel(s model.GameSummary) Summary {
	return Summary{
		ID:         string(s.ID),
		Result:     string(s.Result),
		Width:      s.Width,
		Height:     s.Height,
		MineCount:  s.MineCount,
		Moves:      s.Moves,
		DurationMs: s.Duration.Milliseconds(),
		FinishedAt: s.FinishedAt,
	}
}

// Summaries is the response for the history endpoint
type Summaries struct {
	Summaries []Summary `json:"summaries"`
}

// SummariesFromModel converts a slice of model.GameSummary
func SummariesFromModel(in []model.GameSummary) Summaries {
	out := Summaries{Summaries: make([]Summary, 0, len(in))}
	for _, s := range in {
		out.Summaries = append(out.Summaries, SummaryFromModel(s))
	}
	return out
}

// Hint is a suggested move
type Hint struct {
	Action  string `json:"action"`
	X       uint16 `json:"x"`
	Y       uint16 `json:"y"`
	Certain bool   `json:"certain"`
}

// HintFromMove converts a bot.Move
func HintFromMove(m bot.Move) Hint {
	return Hint{
		Action:  string(m.Action),
		X:       m.Coordinate.X,
		Y:       m.Coordinate.Y,
		Certain: m.Certain,
	}
}

// BotAction is one move applied by autoplay
type BotAction struct {
	Hint
	Outcome string `json:"outcome,omitempty"`
	Marked  bool   `json:"marked,omitempty"`
}

// Autoplay is the response for the autoplay endpoint
type Autoplay struct {
	Actions []BotAction `json:"actions"`
	Game    Game        `json:"game"`
}

// AutoplayFromActions converts the actions taken and the resulting game
func AutoplayFromActions(actions []bot.BotAction, g *model.Game, now time.Time) Autoplay {
	resp := Autoplay{
		Actions: make([]BotAction, 0, len(actions)),
		Game:    GameFromModel(g, now),
	}
	for _, a := range actions {
		resp.Actions = append(resp.Actions, BotAction{
			Hint:    HintFromMove(a.Move),
			Outcome: string(a.Outcome),
			Marked:  a.Marked,
		})
	}
	return resp
}
