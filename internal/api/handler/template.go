package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scorepad/internal/api/request"
	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/services/templates"
)

// TemplateHandler handles game template endpoints
type TemplateHandler struct {
	templates *templates.Service
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templates *templates.Service) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
	}
}

// List handles GET /api/v1/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.templates.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TemplateList{Templates: list})
}

// Create handles POST /api/v1/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TemplateRequest
	if err := decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	// An omitted scoring type means the usual highest-wins game
	scoring := model.ScoringType(req.ScoringType)
	if scoring == "" {
		scoring = model.ScoringNormal
	}

	tmpl, err := h.templates.Create(r.Context(), req.Name, scoring)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, tmpl)
}

// Get handles GET /api/v1/templates/{id}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.TemplateID(mux.Vars(r)["id"])

	tmpl, err := h.templates.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tmpl)
}

// Update handles PATCH /api/v1/templates/{id}
// Omitted fields keep their current value.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.TemplateID(mux.Vars(r)["id"])

	var req request.TemplateRequest
	if err := decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	current, err := h.templates.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	name := req.Name
	if name == "" {
		name = current.Name
	}
	scoring := model.ScoringType(req.ScoringType)
	if scoring == "" {
		scoring = current.ScoringType
	}

	tmpl, err := h.templates.Update(r.Context(), id, name, scoring)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tmpl)
}

// Delete handles DELETE /api/v1/templates/{id}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.TemplateID(mux.Vars(r)["id"])

	if err := h.templates.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
