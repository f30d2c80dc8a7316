package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/minesweeper-go/internal/api/handler"
	"github.com/mcoot/minesweeper-go/internal/api/middleware"
	"github.com/mcoot/minesweeper-go/internal/api/response"
	"github.com/mcoot/minesweeper-go/internal/dependencies/clock"
	"github.com/mcoot/minesweeper-go/internal/services/bot"
	"github.com/mcoot/minesweeper-go/internal/services/game"
	"github.com/mcoot/minesweeper-go/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *sse.HubManager
	Clock          clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, hubManager, clk)
	botHandler := handler.NewBotHandler(cfg.BotService, cfg.GameController, clk)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/restart", gameHandler.Restart).Methods(http.MethodPost)
	games.HandleFunc("/{id}/uncover", gameHandler.Uncover).Methods(http.MethodPost)
	games.HandleFunc("/{id}/mark", gameHandler.Mark).Methods(http.MethodPost)
	games.HandleFunc("/{id}/click", gameHandler.Click).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Bot routes
	games.HandleFunc("/{id}/hint", botHandler.Hint).Methods(http.MethodPost)
	games.HandleFunc("/{id}/autoplay", botHandler.Autoplay).Methods(http.MethodPost)

	// History
	api.HandleFunc("/summaries", gameHandler.Summaries).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
