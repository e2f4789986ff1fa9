package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scorepad/internal/api/apierr"
	"github.com/mcoot/scorepad/internal/api/handler"
	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/events"
	"github.com/mcoot/scorepad/internal/middleware"
	"github.com/mcoot/scorepad/internal/services/history"
	"github.com/mcoot/scorepad/internal/services/roster"
	"github.com/mcoot/scorepad/internal/services/session"
	"github.com/mcoot/scorepad/internal/services/templates"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	Roster            *roster.Service
	Templates         *templates.Service
	History           *history.Service
	SessionController *session.Controller
	// Events is optional; without it the live event stream is unavailable
	Events *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Roster)
	templateHandler := handler.NewTemplateHandler(cfg.Templates)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.Events, cfg.Logger)
	historyHandler := handler.NewHistoryHandler(cfg.History)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, writePanic))
	api.Use(middleware.Logging(cfg.Logger))

	// Player registry
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Rename).Methods(http.MethodPatch)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Template registry
	api.HandleFunc("/templates", templateHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/templates", templateHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/templates/{id}", templateHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/templates/{id}", templateHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/templates/{id}", templateHandler.Delete).Methods(http.MethodDelete)

	// Active game
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/session", sessionHandler.Cancel).Methods(http.MethodDelete)
	api.HandleFunc("/session/totals", sessionHandler.Totals).Methods(http.MethodGet)
	api.HandleFunc("/session/rounds/{round}/players/{player}", sessionHandler.UpdateScore).Methods(http.MethodPut)
	api.HandleFunc("/session/finish", sessionHandler.Finish).Methods(http.MethodPost)
	api.HandleFunc("/session/events", sessionHandler.Events).Methods(http.MethodGet)

	// History log
	api.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/history/recent", historyHandler.Recent).Methods(http.MethodGet)
	api.HandleFunc("/history/top-players", historyHandler.TopPlayers).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// writePanic hides panic details from clients; the recovery middleware has already logged them
func writePanic(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
