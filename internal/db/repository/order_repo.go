package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// OrderRepository handles order data access
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, table_id, order_type, total, notes, status, amount_paid, paid_at, paid_by, created_at, updated_at`

// GetByID retrieves an order row without expanding its references
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// GetResolved retrieves an order with its table, item menu references and
// paying user expanded
func (r *OrderRepository) GetResolved(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.resolve(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// resolve expands an order's references. Dangling references (a deleted table
// or menu item) resolve to nil rather than failing.
func (r *OrderRepository) resolve(ctx context.Context, order *models.Order) error {
	if order.TableID != nil {
		var table models.Table
		err := r.db.GetContext(ctx, &table,
			`SELECT id, table_number, seats, status, created_at, updated_at FROM tables WHERE id = $1`,
			*order.TableID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to resolve order table: %w", err)
		}
		if err == nil {
			order.Table = &table
		}
	}

	items, err := r.getOrderItems(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Items = items

	if order.PaidByID != nil {
		var user models.User
		err := r.db.GetContext(ctx, &user,
			`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`,
			*order.PaidByID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to resolve paying user: %w", err)
		}
		if err == nil {
			order.PaidBy = &user
		}
	}

	return nil
}

// getOrderItems retrieves an order's lines with their menu items expanded
func (r *OrderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_item_id, qty, position, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC, created_at ASC
	`

	items := []models.OrderItem{}
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	for i := range items {
		var menu models.MenuItem
		err := r.db.GetContext(ctx, &menu,
			`SELECT id, category_id, name, price, image_url, is_available, created_at, updated_at FROM menu_items WHERE id = $1`,
			items[i].MenuItemID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve item menu: %w", err)
		}
		items[i].Menu = &menu
	}

	return items, nil
}

// List retrieves resolved orders, newest first. With activeOnly set, paid
// orders are excluded.
func (r *OrderRepository) List(ctx context.Context, activeOnly bool) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	args := []interface{}{}

	if activeOnly {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE status != $1 ORDER BY created_at DESC`
		args = append(args, models.OrderStatusPaid)
	}

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		if err := r.resolve(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// Create creates a new order with its items
func (r *OrderRepository) Create(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	orderQuery := `
		INSERT INTO orders (table_id, order_type, total, notes, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns + `
	`

	var order models.Order
	err = tx.GetContext(ctx, &order, orderQuery, req.TableID, req.OrderType, req.Total, req.Notes, req.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i, item := range req.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, qty, position) VALUES ($1, $2, $3, $4)`,
			order.ID, item.MenuItemID, item.Qty, i)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &order, nil
}

// UpdateStatus updates an order's status, writing payment details in the same
// statement when the order transitions into paid
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, payment *models.PaymentDetails) error {
	var result sql.Result
	var err error

	if payment != nil {
		// amount_paid and paid_by keep their stored values when the new
		// payment does not carry them
		query := `
			UPDATE orders
			SET status = $1, amount_paid = COALESCE($2, amount_paid), paid_at = $3, paid_by = COALESCE($4, paid_by), updated_at = now()
			WHERE id = $5
		`
		result, err = r.db.ExecContext(ctx, query, status, payment.AmountPaid, payment.PaidAt, payment.PaidBy, id)
	} else {
		query := `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`
		result, err = r.db.ExecContext(ctx, query, status, id)
	}

	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// Update applies a partial update. Only supplied fields change; when Items is
// supplied the order's lines are replaced in the same transaction.
func (r *OrderRepository) Update(ctx context.Context, id uuid.UUID, req models.OrderUpdateRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	set := []string{"updated_at = now()"}
	args := []interface{}{}
	idx := 1

	if req.OrderType != nil {
		set = append(set, fmt.Sprintf("order_type = $%d", idx))
		args = append(args, *req.OrderType)
		idx++
	}
	if req.Table.Set {
		set = append(set, fmt.Sprintf("table_id = $%d", idx))
		args = append(args, req.Table.Ptr())
		idx++
	}
	if req.Total != nil {
		set = append(set, fmt.Sprintf("total = $%d", idx))
		args = append(args, *req.Total)
		idx++
	}
	if req.Notes != nil {
		set = append(set, fmt.Sprintf("notes = $%d", idx))
		args = append(args, *req.Notes)
		idx++
	}

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(set, ", "), idx)
	args = append(args, id)

	var result sql.Result
	result, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	var rowsAffected int64
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		err = fmt.Errorf("order %s: %w", id, models.ErrNotFound)
		return err
	}

	if req.Items != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to clear order items: %w", err)
		}
		for i, item := range *req.Items {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, menu_item_id, qty, position) VALUES ($1, $2, $3, $4)`,
				id, item.MenuItemID, item.Qty, i)
			if err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
