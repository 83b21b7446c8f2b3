package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a menu category
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MenuItem represents a menu item
type MenuItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CategoryID  uuid.UUID `db:"category_id" json:"category"`
	Name        string    `db:"name" json:"name"`
	Price       float64   `db:"price" json:"price"`
	ImageURL    *string   `db:"image_url" json:"image"`
	IsAvailable bool      `db:"is_available" json:"isAvailable"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CategoryRequest is used for category creation/update
type CategoryRequest struct {
	Name string `json:"name"`
}

// MenuItemRequest is used for menu item creation/update. The image arrives as
// a multipart file and goes through the image store; ImageURL is filled by the
// handler once the file is stored.
type MenuItemRequest struct {
	CategoryID  uuid.UUID `json:"category"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	IsAvailable bool      `json:"isAvailable"`
	ImageURL    *string   `json:"-"`
}
