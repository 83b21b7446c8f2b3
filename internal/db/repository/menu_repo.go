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

// MenuRepository handles menu item data access
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// GetByID retrieves a menu item by ID
func (r *MenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	query := `
		SELECT id, category_id, name, price, image_url, is_available, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`

	var item models.MenuItem
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("menu item %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

// List retrieves all menu items, newest first
func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	query := `
		SELECT id, category_id, name, price, image_url, is_available, created_at, updated_at
		FROM menu_items
		ORDER BY created_at DESC
	`

	items := []models.MenuItem{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

// Create creates a new menu item
func (r *MenuRepository) Create(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (category_id, name, price, image_url, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, category_id, name, price, image_url, is_available, created_at, updated_at
	`

	var item models.MenuItem
	err := r.db.GetContext(ctx, &item, query, req.CategoryID, req.Name, req.Price, req.ImageURL, req.IsAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &item, nil
}

// Update updates a menu item. A nil ImageURL leaves the stored image as is.
func (r *MenuRepository) Update(ctx context.Context, id uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET category_id = $1, name = $2, price = $3,
		    image_url = COALESCE($4, image_url),
		    is_available = $5, updated_at = now()
		WHERE id = $6
		RETURNING id, category_id, name, price, image_url, is_available, created_at, updated_at
	`

	var item models.MenuItem
	err := r.db.GetContext(ctx, &item, query, req.CategoryID, req.Name, req.Price, req.ImageURL, req.IsAvailable, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("menu item %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return &item, nil
}

// Delete removes a menu item
func (r *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("menu item %s: %w", id, models.ErrNotFound)
	}

	return nil
}
