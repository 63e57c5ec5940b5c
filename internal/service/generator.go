package service

import (
	"context"
	"fmt"

	"prd-advisors/internal/aggregator"
	"prd-advisors/internal/common/logger"
	"prd-advisors/internal/document"
	"prd-advisors/internal/models"
	"prd-advisors/internal/session"
	"prd-advisors/pkg/registry"

	"github.com/google/uuid"
)

// Generator runs one full generation: aggregation, prompt enrichment and
// session persistence. It is shared by the HTTP API, the job worker and the CLI.
type Generator struct {
	aggregator *aggregator.Aggregator
	store      session.Store
	logger     logger.Logger
	newID      func() string
}

// NewGenerator builds a Generator. store may be nil, in which case sessions are
// built but not persisted.
func NewGenerator(agg *aggregator.Aggregator, store session.Store, log logger.Logger) *Generator {
	return &Generator{
		aggregator: agg,
		store:      store,
		logger:     log.WithFields(map[string]interface{}{"component": "generator"}),
		newID:      func() string { return uuid.New().String() },
	}
}

func (g *Generator) Registry() *registry.Registry {
	return g.aggregator.Registry()
}

// SelectionOrAll returns selection, or every registry advisor when selection is nil.
func (g *Generator) SelectionOrAll(selection map[string]bool) models.SelectionSet {
	if selection == nil {
		return models.SelectAll(g.Registry().Keys())
	}
	return models.SelectionSet(selection)
}

// Generate fills request defaults, consults the panel and stores the result.
// A store failure is logged and does not fail the generation.
func (g *Generator) Generate(ctx context.Context, req models.GenerationRequest, selection models.SelectionSet) (*models.Session, error) {
	req = req.WithDefaults()

	resp, err := g.aggregator.Generate(ctx, req, selection)
	if err != nil {
		return nil, err
	}

	enriched, err := document.EnrichDevelopmentPrompt(resp.DevelopmentPromptText, resp.PerAdvisorText, selection, g.Registry())
	if err != nil {
		return nil, fmt.Errorf("enrich development prompt: %w", err)
	}

	s := &models.Session{
		ID:                    g.newID(),
		Request:               req,
		Selection:             selection,
		Response:              *resp,
		EnrichedDevPromptText: enriched,
	}

	if g.store != nil {
		if err := g.store.Save(ctx, s); err != nil {
			g.logger.Error("failed to store session", map[string]interface{}{
				"sessionId": s.ID,
				"error":     err.Error(),
			})
		}
	}

	return s, nil
}

// Session loads a stored generation.
func (g *Generator) Session(ctx context.Context, id string) (*models.Session, error) {
	if g.store == nil {
		return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
	}
	return g.store.Get(ctx, id)
}
