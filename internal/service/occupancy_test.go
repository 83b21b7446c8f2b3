package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
)

// fakeTableStore is an in-memory TableStatusStore shared by the occupancy and
// order tests
type fakeTableStore struct {
	tables   map[uuid.UUID]*models.Table
	setCalls int
	failSet  error
}

func newFakeTableStore(tables ...*models.Table) *fakeTableStore {
	s := &fakeTableStore{tables: make(map[uuid.UUID]*models.Table)}
	for _, t := range tables {
		s.tables[t.ID] = t
	}
	return s
}

func (s *fakeTableStore) GetByID(_ context.Context, id uuid.UUID) (*models.Table, error) {
	t, ok := s.tables[id]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", id, models.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}

func (s *fakeTableStore) SetStatus(_ context.Context, id uuid.UUID, status models.TableStatus) error {
	if s.failSet != nil {
		return s.failSet
	}
	t, ok := s.tables[id]
	if !ok {
		return fmt.Errorf("table %s: %w", id, models.ErrNotFound)
	}
	s.setCalls++
	t.Status = status
	return nil
}

func (s *fakeTableStore) status(id uuid.UUID) models.TableStatus {
	return s.tables[id].Status
}

func TestOccupancyTransitions(t *testing.T) {
	tests := []struct {
		name       string
		initial    models.TableStatus
		transition func(*OccupancyManager, context.Context, uuid.UUID) error
		want       models.TableStatus
		wantWrites int
	}{
		{
			name:       "occupy available table",
			initial:    models.TableStatusAvailable,
			transition: (*OccupancyManager).Occupy,
			want:       models.TableStatusOccupied,
			wantWrites: 1,
		},
		{
			name:       "occupy already occupied table is a no-op",
			initial:    models.TableStatusOccupied,
			transition: (*OccupancyManager).Occupy,
			want:       models.TableStatusOccupied,
			wantWrites: 0,
		},
		{
			name:       "occupy reserved table",
			initial:    models.TableStatusReserved,
			transition: (*OccupancyManager).Occupy,
			want:       models.TableStatusOccupied,
			wantWrites: 1,
		},
		{
			name:       "free occupied table",
			initial:    models.TableStatusOccupied,
			transition: (*OccupancyManager).Free,
			want:       models.TableStatusAvailable,
			wantWrites: 1,
		},
		{
			name:       "free already available table is a no-op",
			initial:    models.TableStatusAvailable,
			transition: (*OccupancyManager).Free,
			want:       models.TableStatusAvailable,
			wantWrites: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &models.Table{ID: uuid.New(), TableNumber: 1, Status: tt.initial}
			store := newFakeTableStore(table)
			manager := NewOccupancyManager(store)

			if err := tt.transition(manager, context.Background(), table.ID); err != nil {
				t.Fatalf("transition failed: %v", err)
			}

			if got := store.status(table.ID); got != tt.want {
				t.Errorf("status = %s, want %s", got, tt.want)
			}
			if store.setCalls != tt.wantWrites {
				t.Errorf("writes = %d, want %d", store.setCalls, tt.wantWrites)
			}
		})
	}
}

func TestOccupancyIdempotence(t *testing.T) {
	table := &models.Table{ID: uuid.New(), TableNumber: 2, Status: models.TableStatusAvailable}
	store := newFakeTableStore(table)
	manager := NewOccupancyManager(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := manager.Occupy(ctx, table.ID); err != nil {
			t.Fatalf("Occupy #%d failed: %v", i+1, err)
		}
	}

	if got := store.status(table.ID); got != models.TableStatusOccupied {
		t.Errorf("status = %s, want %s", got, models.TableStatusOccupied)
	}
	if store.setCalls != 1 {
		t.Errorf("writes = %d, want 1", store.setCalls)
	}
}

func TestOccupancyUnknownTable(t *testing.T) {
	manager := NewOccupancyManager(newFakeTableStore())

	err := manager.Occupy(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Occupy error = %v, want ErrNotFound", err)
	}

	err = manager.Free(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Free error = %v, want ErrNotFound", err)
	}
}

func TestOccupancyManualOverride(t *testing.T) {
	// SetStatus bypasses the occupancy rules entirely
	table := &models.Table{ID: uuid.New(), TableNumber: 3, Status: models.TableStatusOccupied}
	store := newFakeTableStore(table)
	manager := NewOccupancyManager(store)

	if err := manager.SetStatus(context.Background(), table.ID, models.TableStatusCleaning); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if got := store.status(table.ID); got != models.TableStatusCleaning {
		t.Errorf("status = %s, want %s", got, models.TableStatusCleaning)
	}
}
