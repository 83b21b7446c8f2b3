package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TableRepository handles dining table data access
type TableRepository struct {
	db *sqlx.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *sqlx.DB) *TableRepository {
	return &TableRepository{db: db}
}

// GetByID retrieves a table by ID
func (r *TableRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	query := `
		SELECT id, table_number, seats, status, created_at, updated_at
		FROM tables
		WHERE id = $1
	`

	var table models.Table
	err := r.db.GetContext(ctx, &table, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("table %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return &table, nil
}

// List retrieves all tables, newest first
func (r *TableRepository) List(ctx context.Context) ([]models.Table, error) {
	query := `
		SELECT id, table_number, seats, status, created_at, updated_at
		FROM tables
		ORDER BY created_at DESC
	`

	tables := []models.Table{}
	if err := r.db.SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return tables, nil
}

// Create creates a new table
func (r *TableRepository) Create(ctx context.Context, req models.TableRequest) (*models.Table, error) {
	query := `
		INSERT INTO tables (table_number, seats, status)
		VALUES ($1, $2, $3)
		RETURNING id, table_number, seats, status, created_at, updated_at
	`

	seats := req.Seats
	if seats <= 0 {
		seats = 4
	}
	status := req.Status
	if status == "" {
		status = models.TableStatusAvailable
	}

	var table models.Table
	err := r.db.GetContext(ctx, &table, query, req.TableNumber, seats, status)
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &table, nil
}

// Update updates a table's number, seats and status
func (r *TableRepository) Update(ctx context.Context, id uuid.UUID, req models.TableRequest) (*models.Table, error) {
	query := `
		UPDATE tables
		SET table_number = $1, seats = $2, status = $3, updated_at = now()
		WHERE id = $4
		RETURNING id, table_number, seats, status, created_at, updated_at
	`

	var table models.Table
	err := r.db.GetContext(ctx, &table, query, req.TableNumber, req.Seats, req.Status, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("table %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}

	return &table, nil
}

// SetStatus updates only the status column
func (r *TableRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error {
	query := `UPDATE tables SET status = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to set table status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("table %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// Delete removes a table
func (r *TableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("table %s: %w", id, models.ErrNotFound)
	}

	return nil
}
