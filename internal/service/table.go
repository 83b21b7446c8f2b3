package service

import (
	"context"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
)

// TableStore is the full table persistence surface
type TableStore interface {
	TableStatusStore
	List(ctx context.Context) ([]models.Table, error)
	Create(ctx context.Context, req models.TableRequest) (*models.Table, error)
	Update(ctx context.Context, id uuid.UUID, req models.TableRequest) (*models.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TableService handles staff-facing table management. Status changes through
// Update are the manual override path; order-driven transitions go through
// the occupancy manager.
type TableService struct {
	tables TableStore
}

// NewTableService creates a new table service
func NewTableService(tables TableStore) *TableService {
	return &TableService{tables: tables}
}

// List returns all tables, newest first
func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	return s.tables.List(ctx)
}

// Create adds a table
func (s *TableService) Create(ctx context.Context, req models.TableRequest) (*models.Table, error) {
	return s.tables.Create(ctx, req)
}

// Update updates a table, including manual status overrides like marking it
// cleaning
func (s *TableService) Update(ctx context.Context, id uuid.UUID, req models.TableRequest) (*models.Table, error) {
	return s.tables.Update(ctx, id, req)
}

// Delete removes a table
func (s *TableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tables.Delete(ctx, id)
}
