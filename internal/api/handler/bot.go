package handler

import (
	"net/http"

	"github.com/mcoot/minesweeper-go/internal/api/request"
	"github.com/mcoot/minesweeper-go/internal/api/response"
	"github.com/mcoot/minesweeper-go/internal/dependencies/clock"
	"github.com/mcoot/minesweeper-go/internal/services/bot"
	"github.com/mcoot/minesweeper-go/internal/services/game"
)

// BotHandler handles hint and autoplay endpoints
type BotHandler struct {
	botService     *bot.Service
	gameController *game.Controller
	clock          clock.Clock
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService *bot.Service, gameController *game.Controller, clk clock.Clock) *BotHandler {
	return &BotHandler{
		botService:     botService,
		gameController: gameController,
		clock:          clk,
	}
}

func (h *BotHandler) readRequest(r *http.Request) (request.BotRequest, error) {
	var req request.BotRequest
	if err := decode(r, &req); err != nil {
		return req, err
	}
	if req.Strategy == "" {
		req.Strategy = bot.StrategyLogic
	}
	return req, nil
}

// Hint handles POST /api/v1/games/{id}/hint
func (h *BotHandler) Hint(w http.ResponseWriter, r *http.Request) {
	req, err := h.readRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	move, err := h.botService.Hint(r.Context(), gameID(r), req.Strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintFromMove(move))
}

// Autoplay handles POST /api/v1/games/{id}/autoplay
func (h *BotHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	req, err := h.readRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	id := gameID(r)
	actions, err := h.botService.Play(r.Context(), id, req.Strategy, req.MaxMoves)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoplayFromActions(actions, g, h.clock.Now()))
}
