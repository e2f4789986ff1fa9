package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scorepad/internal/api/request"
	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/services/roster"
)

// PlayerHandler handles player registry endpoints
type PlayerHandler struct {
	roster *roster.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(roster *roster.Service) *PlayerHandler {
	return &PlayerHandler{
		roster: roster,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerList{Players: players})
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerRequest
	if err := decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.roster.Create(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, player)
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.roster.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, player)
}

// Rename handles PATCH /api/v1/players/{id}
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.PlayerRequest
	if err := decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.roster.Rename(r.Context(), id, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, player)
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.roster.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
