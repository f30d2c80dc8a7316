package board

import (
	"log/slog"
	"strings"

	"github.com/mcoot/minesweeper-go/internal/model"
)

// Console symbols for cells that are not showing their tile
const (
	SymbolCovered = "#"
	SymbolMarked  = "F"
)

// Service generates boards and inspects their state
type Service struct {
	logger *slog.Logger
}

// New creates a new BoardService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "board-service")),
	}
}

// Generate validates the config and builds a freshly covered board.
// Configuration errors are returned before any mine is placed.
func (s *Service) Generate(cfg model.GameConfig, rnd model.RandomSource) (*model.Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tileMap := model.NewEmptyTileMap(cfg.Width, cfg.Height)
	if err := tileMap.PlaceMines(rnd, cfg.MineCount); err != nil {
		return nil, err
	}

	s.logger.Debug("board generated",
		slog.Int("width", int(cfg.Width)),
		slog.Int("height", int(cfg.Height)),
		slog.Int("mines", int(cfg.MineCount)),
	)

	return model.NewBoard(tileMap, model.DefaultGeometry()), nil
}

// GenerateWithMines builds a board with mines at fixed coordinates
func (s *Service) GenerateWithMines(width, height uint16, mines []model.Coordinate) (*model.Board, error) {
	tileMap := model.NewEmptyTileMap(width, height)
	if err := tileMap.PlaceMinesAt(mines); err != nil {
		return nil, err
	}
	return model.NewBoard(tileMap, model.DefaultGeometry()), nil
}

// SafeStart returns the first empty tile in row-major order, if any
func (s *Service) SafeStart(board *model.Board) (model.Coordinate, bool) {
	return board.TileMap.FirstEmpty()
}

// Verify returns the first broken board invariant, if any
func (s *Service) Verify(board *model.Board) error {
	return board.CheckInvariants()
}

// Render draws the board as console rows, top row first.
// With revealAll every tile is shown regardless of covered state.
func (s *Service) Render(board *model.Board, revealAll bool) []string {
	return Render(board, revealAll)
}

// Render draws the board as console rows, top row first
func Render(board *model.Board, revealAll bool) []string {
	tm := board.TileMap
	rows := make([]string, 0, tm.Height)
	for y := uint16(0); y < tm.Height; y++ {
		var sb strings.Builder
		for x := uint16(0); x < tm.Width; x++ {
			c := model.Coordinate{X: x, Y: y}
			sb.WriteString(CellSymbol(board, c, revealAll))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// CellSymbol returns the console symbol of a single cell
func CellSymbol(board *model.Board, c model.Coordinate, revealAll bool) string {
	if !revealAll && board.IsCovered(c) {
		if board.IsMarked(c) {
			return SymbolMarked
		}
		return SymbolCovered
	}
	tile, ok := board.TileMap.TileAt(c)
	if !ok {
		return "?"
	}
	return tile.Symbol()
}

// Interface for dependency injection
type ServiceInterface interface {
	Generate(cfg model.GameConfig, rnd model.RandomSource) (*model.Board, error)
	SafeStart(board *model.Board) (model.Coordinate, bool)
	Verify(board *model.Board) error
	Render(board *model.Board, revealAll bool) []string
}

var _ ServiceInterface = (*Service)(nil)
