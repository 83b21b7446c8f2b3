package service

import (
	"context"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
)

// TableStatusStore is the slice of table persistence the occupancy manager
// needs
type TableStatusStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error
}

// OccupancyManager owns order-driven table status transitions. Occupy and
// Free are idempotent; callers treat their failures as non-fatal side
// effects.
type OccupancyManager struct {
	tables TableStatusStore
}

// NewOccupancyManager creates a new occupancy manager
func NewOccupancyManager(tables TableStatusStore) *OccupancyManager {
	return &OccupancyManager{tables: tables}
}

// Occupy marks a table occupied. A no-op when the table already is.
func (m *OccupancyManager) Occupy(ctx context.Context, id uuid.UUID) error {
	return m.transition(ctx, id, models.TableStatusOccupied)
}

// Free marks a table available. A no-op when the table already is.
func (m *OccupancyManager) Free(ctx context.Context, id uuid.UUID) error {
	return m.transition(ctx, id, models.TableStatusAvailable)
}

func (m *OccupancyManager) transition(ctx context.Context, id uuid.UUID, target models.TableStatus) error {
	table, err := m.tables.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if table.Status == target {
		return nil
	}
	return m.tables.SetStatus(ctx, id, target)
}

// SetStatus is the manual override path for non-order-driven transitions,
// e.g. staff marking a table cleaning. No occupancy-consistency checks.
func (m *OccupancyManager) SetStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error {
	return m.tables.SetStatus(ctx, id, status)
}
