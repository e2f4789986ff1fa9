package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/services/history"
)

// HistoryHandler handles the finished game log endpoints
type HistoryHandler struct {
	history *history.Service
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *history.Service) *HistoryHandler {
	return &HistoryHandler{
		history: history,
	}
}

// List handles GET /api/v1/history[?limit=n]
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	if limitParam == "" {
		games, err := h.history.List(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.NewGameList(games))
		return
	}

	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit < 0 {
		WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
		return
	}

	games, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.NewGameList(games))
}

// Recent handles GET /api/v1/history/recent
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	games, err := h.history.LastFiveGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewGameList(games))
}

// TopPlayers handles GET /api/v1/history/top-players
func (h *HistoryHandler) TopPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.history.TopPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TopPlayers{Players: players})
}
