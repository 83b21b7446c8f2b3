package service

import (
	"context"
	"log"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
)

// CategoryStore is the category persistence surface
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, req models.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MenuStore is the menu item persistence surface
type MenuStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
	Create(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error)
	Update(ctx context.Context, id uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageStore holds menu item images as opaque URLs
type ImageStore interface {
	Put(data []byte, ext string) (string, error)
	Delete(url string) error
}

// MenuService handles categories and menu items, including image housekeeping
type MenuService struct {
	categories CategoryStore
	menu       MenuStore
	images     ImageStore
}

// NewMenuService creates a new menu service
func NewMenuService(categories CategoryStore, menu MenuStore, images ImageStore) *MenuService {
	return &MenuService{categories: categories, menu: menu, images: images}
}

// ListCategories returns all categories, newest first
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory adds a category
func (s *MenuService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	return s.categories.Create(ctx, req)
}

// UpdateCategory renames a category
func (s *MenuService) UpdateCategory(ctx context.Context, id uuid.UUID, req models.CategoryRequest) (*models.Category, error) {
	return s.categories.Update(ctx, id, req)
}

// DeleteCategory removes a category. Menu items referencing it are left
// untouched; cascading is the caller's concern.
func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

// ListItems returns all menu items, newest first
func (s *MenuService) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.List(ctx)
}

// CreateItem adds a menu item
func (s *MenuService) CreateItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	return s.menu.Create(ctx, req)
}

// UpdateItem updates a menu item. When the request carries a new image the
// previous one is removed from the image store, best effort.
func (s *MenuService) UpdateItem(ctx context.Context, id uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error) {
	prev, err := s.menu.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item, err := s.menu.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if req.ImageURL != nil && prev.ImageURL != nil && *prev.ImageURL != *req.ImageURL {
		if err := s.images.Delete(*prev.ImageURL); err != nil {
			log.Printf("Failed to delete replaced image %s: %v", *prev.ImageURL, err)
		}
	}

	return item, nil
}

// DeleteItem removes a menu item and its stored image
func (s *MenuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.menu.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.menu.Delete(ctx, id); err != nil {
		return err
	}

	if item.ImageURL != nil {
		if err := s.images.Delete(*item.ImageURL); err != nil {
			log.Printf("Failed to delete image %s: %v", *item.ImageURL, err)
		}
	}

	return nil
}
