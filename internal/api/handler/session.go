package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/scorepad/internal/api/apierr"
	"github.com/mcoot/scorepad/internal/api/request"
	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/events"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/services/session"
)

// SessionHandler handles the active game endpoints
type SessionHandler struct {
	controller *session.Controller
	hub        *events.Hub
	logger     *slog.Logger
}

// NewSessionHandler creates a new session handler; hub may be nil to disable live events
func NewSessionHandler(controller *session.Controller, hub *events.Hub, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		hub:        hub,
		logger:     logger,
	}
}

// Get handles GET /api/v1/session
// An absent session is a normal state, so it is reported rather than returned as 404.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := h.controller.Get(r.Context())
	if err != nil && !errors.Is(err, model.ErrNoActiveGame) {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(game, session.Totals(game)))
}

// Start handles POST /api/v1/session
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartSessionRequest
	if err := decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.TemplateID == "" {
		WriteError(w, NewInvalidRequestError("templateId is required"))
		return
	}

	playerIDs := make([]model.PlayerID, len(req.PlayerIDs))
	for i, id := range req.PlayerIDs {
		playerIDs[i] = model.PlayerID(id)
	}

	game, err := h.controller.StartByID(r.Context(), model.TemplateID(req.TemplateID), playerIDs)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(game, session.Totals(game)))
}

// Cancel handles DELETE /api/v1/session
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Cancel(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Totals handles GET /api/v1/session/totals
func (h *SessionHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.controller.Totals(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Totals{Totals: totals})
}

// UpdateScore handles PUT /api/v1/session/rounds/{round}/players/{player}
func (h *SessionHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roundIndex, err := strconv.Atoi(vars["round"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("round must be an integer"))
		return
	}
	playerIndex, err := strconv.Atoi(vars["player"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("player must be an integer"))
		return
	}

	var req request.UpdateScoreRequest
	if err := decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var raw string
	if req.Value != nil {
		raw = *req.Value
	}

	game, err := h.controller.UpdateScore(r.Context(), roundIndex, playerIndex, raw)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(game, session.Totals(game)))
}

// Finish handles POST /api/v1/session/finish
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	game, err := h.controller.Finish(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, game)
}

// Events handles GET /api/v1/session/events (websocket)
// The first message is a snapshot of the current session.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		WriteError(w, apierr.NewNotFoundError())
		return
	}

	game, err := h.controller.Get(r.Context())
	if err != nil && !errors.Is(err, model.ErrNoActiveGame) {
		WriteError(w, err)
		return
	}

	snapshot, err := events.Snapshot(game, session.Totals(game))
	if err != nil {
		WriteError(w, err)
		return
	}

	events.ServeWS(w, r, h.hub, snapshot, h.logger)
}
