package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/minesweeper-go/internal/api/request"
	"github.com/mcoot/minesweeper-go/internal/api/response"
	"github.com/mcoot/minesweeper-go/internal/dependencies/clock"
	"github.com/mcoot/minesweeper-go/internal/model"
	"github.com/mcoot/minesweeper-go/internal/services/game"
	"github.com/mcoot/minesweeper-go/internal/sse"
)

// DefaultSummaryLimit is used when the history request names no limit
const DefaultSummaryLimit = 20

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	hubManager     *sse.HubManager
	clock          clock.Clock
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, hubManager *sse.HubManager, clk clock.Clock) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		clock:          clk,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return NewInvalidRequestError("Invalid request body")
	}
	return nil
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cfg, err := req.Config()
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g, h.clock.Now()))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, h.clock.Now()))
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.AbandonGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, h.clock.Now()))
}

// Restart handles POST /api/v1/games/{id}/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.RestartGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g, h.clock.Now()))
}

// Uncover handles POST /api/v1/games/{id}/uncover
func (h *GameHandler) Uncover(w http.ResponseWriter, r *http.Request) {
	h.coordinateMove(w, r, h.gameController.Uncover)
}

// Mark handles POST /api/v1/games/{id}/mark
func (h *GameHandler) Mark(w http.ResponseWriter, r *http.Request) {
	h.coordinateMove(w, r, h.gameController.ToggleMark)
}

type coordinateMoveFunc func(ctx context.Context, id model.GameID, c model.Coordinate) (*game.MoveResult, error)

func (h *GameHandler) coordinateMove(w http.ResponseWriter, r *http.Request, move coordinateMoveFunc) {
	var req request.CoordinateRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	c, err := req.Coordinate()
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := move(r.Context(), gameID(r), c)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveFromResult(result, h.clock.Now()))
}

// Click handles POST /api/v1/games/{id}/click
func (h *GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req request.ClickRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	button, err := model.ParseButton(req.Button)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.gameController.Click(r.Context(), gameID(r), model.Point{X: req.X, Y: req.Y}, button)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveFromResult(result, h.clock.Now()))
}

// Events handles GET /api/v1/games/{id}/events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, h.hubManager, id)
}

// Summaries handles GET /api/v1/summaries
func (h *GameHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	limit := DefaultSummaryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	summaries, err := h.gameController.ListSummaries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SummariesFromModel(summaries))
}
