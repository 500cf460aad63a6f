package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/service"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	// maxBodyBytes bounds roster uploads
	maxBodyBytes = 4 << 20

	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// Simulator runs games on behalf of the API
type Simulator interface {
	Simulate(ctx context.Context, req models.SimulateRequest) (*models.BoxScore, error)
	SimulateBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error)
}

// GamesHandler handles games-related API endpoints
type GamesHandler struct {
	sim    Simulator
	reader contracts.GameReader
	logger *zap.Logger
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(sim Simulator, reader contracts.GameReader, logger *zap.Logger) *GamesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GamesHandler{
		sim:    sim,
		reader: reader,
		logger: logger,
	}
}

// Routes mounts the game endpoints under r
func (h *GamesHandler) Routes(r chi.Router) {
	r.Post("/games", h.HandleSimulate)
	r.Post("/games/batch", h.HandleBatch)
	r.Get("/games/recent", h.HandleGetRecentGames)
	r.Get("/games/{game_id}", h.HandleGetGame)
	r.Get("/games/{game_id}/boxscore", h.HandleGetBoxScore)
}

// HandleSimulate plays one game and returns its box score
// POST /api/v1/games
func (h *GamesHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	box, err := h.sim.Simulate(r.Context(), req)
	if err != nil {
		h.respondSimError(w, "failed to simulate game", err)
		return
	}
	respondJSON(w, http.StatusCreated, box)
}

// HandleBatch plays many games and returns the aggregate
// POST /api/v1/games/batch
func (h *GamesHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.sim.SimulateBatch(r.Context(), req)
	if err != nil {
		h.respondSimError(w, "failed to simulate batch", err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleGetGame returns a single game summary
// GET /api/v1/games/{game_id}
func (h *GamesHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game_id")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "game_id is required")
		return
	}

	game, err := h.reader.ReadGameSummary(r.Context(), gameID)
	if err != nil {
		h.logger.Error("failed to fetch game", zap.String("game_id", gameID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to fetch game")
		return
	}
	if game == nil {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}
	respondJSON(w, http.StatusOK, game)
}

// HandleGetBoxScore returns the full box score for a game
// GET /api/v1/games/{game_id}/boxscore
func (h *GamesHandler) HandleGetBoxScore(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game_id")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "game_id is required")
		return
	}

	box, err := h.reader.ReadBoxScore(r.Context(), gameID)
	if err != nil {
		h.logger.Error("failed to fetch boxscore", zap.String("game_id", gameID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to fetch boxscore")
		return
	}
	if box == nil {
		respondError(w, http.StatusNotFound, "boxscore not found")
		return
	}
	respondJSON(w, http.StatusOK, box)
}

// HandleGetRecentGames lists the most recent game IDs
// GET /api/v1/games/recent?limit={n}
func (h *GamesHandler) HandleGetRecentGames(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultRecentLimit)
	if limit < 1 || limit > maxRecentLimit {
		limit = defaultRecentLimit
	}

	ids, err := h.reader.ReadRecentGames(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to fetch recent games", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to fetch recent games")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": ids,
		"count": len(ids),
	})
}

func (h *GamesHandler) respondSimError(w http.ResponseWriter, message string, err error) {
	if service.IsInvalidInput(err) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error(message, zap.Error(err))
	respondError(w, http.StatusInternalServerError, message)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
