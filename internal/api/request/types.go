package request

import (
	"math"

	"github.com/mcoot/minesweeper-go/internal/model"
)

// CreateGameRequest is the request body for starting a game. Explicit
// dimensions override the difficulty preset, which defaults to classic.
type CreateGameRequest struct {
	Difficulty      string  `json:"difficulty,omitempty"`
	Width           *uint16 `json:"width,omitempty"`
	Height          *uint16 `json:"height,omitempty"`
	MineCount       *uint16 `json:"mine_count,omitempty"`
	SafeFirstReveal bool    `json:"safe_first_reveal,omitempty"`
	Seed            *uint64 `json:"seed,omitempty"`
}

// Config resolves the request into a game configuration
func (r CreateGameRequest) Config() (model.GameConfig, error) {
	cfg := model.DefaultGameConfig()
	if r.Difficulty != "" {
		preset, err := model.ConfigForDifficulty(model.Difficulty(r.Difficulty))
		if err != nil {
			return model.GameConfig{}, err
		}
		cfg = preset
	}
	if r.Width != nil {
		cfg.Width = *r.Width
	}
	if r.Height != nil {
		cfg.Height = *r.Height
	}
	if r.MineCount != nil {
		cfg.MineCount = *r.MineCount
	}
	cfg.SafeFirstReveal = r.SafeFirstReveal
	cfg.Seed = r.Seed
	return cfg, nil
}

// CoordinateRequest is the request body for uncover and mark
type CoordinateRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// Coordinate validates the request into a grid coordinate
func (r CoordinateRequest) Coordinate() (model.Coordinate, error) {
	if r.X == nil || r.Y == nil {
		return model.Coordinate{}, model.ErrInvalidCoordinate
	}
	x, y := *r.X, *r.Y
	if x < 0 || y < 0 || x > math.MaxUint16 || y > math.MaxUint16 {
		return model.Coordinate{}, model.ErrInvalidPosition
	}
	return model.Coordinate{X: uint16(x), Y: uint16(y)}, nil
}

// ClickRequest is the request body for a pointer click in board space
type ClickRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button"`
}

// BotRequest is the request body for hint and autoplay
type BotRequest struct {
	Strategy string `json:"strategy,omitempty"`
	MaxMoves int    `json:"max_moves,omitempty"`
}
