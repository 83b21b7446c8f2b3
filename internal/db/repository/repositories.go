package repository

import (
	"github.com/golden-lotus/pos-service/internal/db"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User      *UserRepository
	Category  *CategoryRepository
	Menu      *MenuRepository
	Table     *TableRepository
	Order     *OrderRepository
	Analytics *AnalyticsRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		User:      NewUserRepository(database.DB),
		Category:  NewCategoryRepository(database.DB),
		Menu:      NewMenuRepository(database.DB),
		Table:     NewTableRepository(database.DB),
		Order:     NewOrderRepository(database.DB),
		Analytics: NewAnalyticsRepository(database.DB),
	}
}
