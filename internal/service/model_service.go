package service

import (
	"context"

	"parley/backend/internal/llm"
)

// ModelLister lists the models an upstream offers.
type ModelLister interface {
	ListModels(ctx context.Context, apiKey, baseURL string) ([]llm.ModelDescriptor, error)
}

// ModelService handles the business logic for model listing.
type ModelService struct {
	lister ModelLister
}

func NewModelService(lister ModelLister) *ModelService {
	return &ModelService{lister: lister}
}

// List returns the upstream catalogue, newest model first. Empty overrides
// fall back to the server configuration.
func (s *ModelService) List(ctx context.Context, apiKey, baseURL string) ([]llm.ModelDescriptor, error) {
	return s.lister.ListModels(ctx, apiKey, baseURL)
}
