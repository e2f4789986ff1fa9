package templates

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/scorepad/internal/dependencies/random"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/storage"
)

// Service manages the game template registry
type Service struct {
	mu      sync.Mutex
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new templates Service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// load returns the stored templates, or the default set if none were ever saved
func (s *Service) load(ctx context.Context) ([]model.Template, error) {
	var templates []model.Template
	found, err := storage.LoadJSON(ctx, s.storage, storage.KeyTemplates, &templates)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.Template{model.DefaultTemplate()}, nil
	}
	if templates == nil {
		templates = []model.Template{}
	}
	return templates, nil
}

func (s *Service) save(ctx context.Context, templates []model.Template) error {
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyTemplates, templates); err != nil {
		s.logger.Error("failed to save templates", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func validate(name string, scoring model.ScoringType) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.ErrNameRequired
	}
	if !scoring.Valid() {
		return "", model.ErrInvalidScoringType
	}
	return name, nil
}

// List returns every template in creation order
func (s *Service) List(ctx context.Context) ([]model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get returns the template with the given id
func (s *Service) Get(ctx context.Context, id model.TemplateID) (*model.Template, error) {
	templates, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, model.ErrTemplateNotFound
}

// Create adds a new template
func (s *Service) Create(ctx context.Context, name string, scoring model.ScoringType) (*model.Template, error) {
	name, err := validate(name, scoring)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	tmpl := model.Template{
		ID:          model.TemplateID(s.random.NewID()),
		Name:        name,
		ScoringType: scoring,
	}
	templates = append(templates, tmpl)

	if err := s.save(ctx, templates); err != nil {
		return nil, err
	}

	s.logger.Info("template created",
		slog.String("template_id", string(tmpl.ID)),
		slog.String("name", tmpl.Name),
		slog.String("scoring", string(tmpl.ScoringType)),
	)
	return &tmpl, nil
}

// Update replaces a template's name and scoring type
func (s *Service) Update(ctx context.Context, id model.TemplateID, name string, scoring model.ScoringType) (*model.Template, error) {
	name, err := validate(name, scoring)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(templates, id)
	if idx == -1 {
		return nil, model.ErrTemplateNotFound
	}
	templates[idx].Name = name
	templates[idx].ScoringType = scoring

	if err := s.save(ctx, templates); err != nil {
		return nil, err
	}

	updated := templates[idx]
	return &updated, nil
}

// Delete removes a template
func (s *Service) Delete(ctx context.Context, id model.TemplateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(templates, id)
	if idx == -1 {
		return model.ErrTemplateNotFound
	}
	templates = append(templates[:idx], templates[idx+1:]...)

	if err := s.save(ctx, templates); err != nil {
		return err
	}

	s.logger.Info("template deleted", slog.String("template_id", string(id)))
	return nil
}

func indexOf(templates []model.Template, id model.TemplateID) int {
	for i, t := range templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}
