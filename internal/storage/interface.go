package storage

import (
	"context"

	"github.com/mcoot/minesweeper-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// History operations
	SaveSummary(ctx context.Context, summary model.GameSummary) error
	// ListSummaries returns up to limit summaries, newest first. A limit of
	// zero or less returns everything kept.
	ListSummaries(ctx context.Context, limit int) ([]model.GameSummary, error)
}

// MaxSummaries caps the history kept by every backend
const MaxSummaries = 100
