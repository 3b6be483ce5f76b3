package customer

import (
	"context"

	"bahikhata/internal/core/id"
	"bahikhata/pkg/logger"
)

// Service provides business logic for the customer catalog.
type Service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the customer and persists it.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "customer created", "id", c.ID, "name", c.Name)
	return nil
}

// Update validates and persists changes.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	c.Touch()
	return s.repo.Update(ctx, c)
}

// GetByID retrieves a customer.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// List retrieves customers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Customer, error) {
	return s.repo.List(ctx, filter)
}
