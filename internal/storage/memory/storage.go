package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/mcoot/minesweeper-go/internal/model"
	"github.com/mcoot/minesweeper-go/internal/storage"
)

// Config holds in-memory storage settings
type Config struct {
	// GameTTL expires idle games. Zero keeps them forever.
	GameTTL         time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig returns sensible defaults for in-memory storage
func DefaultConfig() Config {
	return Config{
		GameTTL:         24 * time.Hour,
		CleanupInterval: 10 * time.Minute,
	}
}

// Storage is an in-memory implementation of the storage interface.
// Games are kept encoded so callers never share board state with the store.
type Storage struct {
	games *cache.Cache
	cfg   Config

	mu        sync.RWMutex
	summaries []model.GameSummary // Newest first
}

// New creates a new in-memory storage instance with default settings
func New() *Storage {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new in-memory storage instance
func NewWithConfig(cfg Config) *Storage {
	ttl := cfg.GameTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Storage{
		games: cache.New(ttl, cfg.CleanupInterval),
		cfg:   cfg,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	s.games.Set(string(game.ID), data, cache.DefaultExpiration)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	raw, ok := s.games.Get(string(id))
	if !ok {
		return nil, model.ErrGameNotFound
	}

	var game model.Game
	if err := json.Unmarshal(raw.([]byte), &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.games.Delete(string(id))
	return nil
}

// History operations

func (s *Storage) SaveSummary(ctx context.Context, summary model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries = append([]model.GameSummary{summary}, s.summaries...)
	if len(s.summaries) > storage.MaxSummaries {
		s.summaries = s.summaries[:storage.MaxSummaries]
	}
	return nil
}

func (s *Storage) ListSummaries(ctx context.Context, limit int) ([]model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.summaries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.GameSummary, n)
	copy(out, s.summaries[:n])
	return out, nil
}

// Close empties the store
func (s *Storage) Close() error {
	s.games.Flush()
	return nil
}
