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

// CategoryRepository handles menu category data access
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List retrieves all categories, newest first
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		ORDER BY created_at DESC
	`

	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, req.Name); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// Update renames a category
func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, req models.CategoryRequest) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, req.Name, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &category, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %s: %w", id, models.ErrNotFound)
	}

	return nil
}
