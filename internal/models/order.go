package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderType distinguishes dine-in orders, which hold a table, from takeaway
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusPaid      OrderStatus = "paid"
)

// Order represents a customer order. AmountPaid, PaidAt and PaidBy are
// populated together on the transition into paid.
type Order struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	TableID    *uuid.UUID  `db:"table_id" json:"tableId"`
	OrderType  OrderType   `db:"order_type" json:"orderType"`
	Total      float64     `db:"total" json:"total"`
	Notes      string      `db:"notes" json:"notes"`
	Status     OrderStatus `db:"status" json:"status"`
	AmountPaid *float64    `db:"amount_paid" json:"amountPaid"`
	PaidAt     *time.Time  `db:"paid_at" json:"paidAt"`
	PaidByID   *uuid.UUID  `db:"paid_by" json:"paidById"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Table  *Table      `db:"-" json:"table"`
	Items  []OrderItem `db:"-" json:"items"`
	PaidBy *User       `db:"-" json:"paidBy,omitempty"`
}

// OrderItem represents one line of an order. Menu items are referenced, not
// snapshotted; Menu is nil when the referenced item no longer exists.
type OrderItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrderID    uuid.UUID `db:"order_id" json:"orderId"`
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menuId"`
	Qty        int       `db:"qty" json:"qty"`
	Position   int       `db:"position" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// Not stored directly in the database
	Menu *MenuItem `db:"-" json:"menu"`
}

// OrderItemRequest is used for order line creation
type OrderItemRequest struct {
	MenuItemID uuid.UUID `json:"menu"`
	Qty        int       `json:"qty"`
}

// OrderRequest is used for order creation
type OrderRequest struct {
	OrderType OrderType          `json:"orderType"`
	TableID   *uuid.UUID         `json:"table"`
	Items     []OrderItemRequest `json:"items"`
	Total     float64            `json:"total"`
	Notes     string             `json:"notes"`
	Status    OrderStatus        `json:"status"`
}

// OrderStatusRequest is used for status updates
type OrderStatusRequest struct {
	Status     OrderStatus `json:"status"`
	AmountPaid *float64    `json:"amountPaid"`
}

// PaymentDetails carries the payment fields written atomically with a status
// update on the transition into paid.
type PaymentDetails struct {
	AmountPaid *float64
	PaidAt     time.Time
	PaidBy     *uuid.UUID
}

// OrderUpdateRequest is a partial update: nil pointers mean "not supplied",
// leaving the stored field unchanged. Table uses OptionalUUID so an explicit
// null clears the table, distinct from not supplying it at all.
type OrderUpdateRequest struct {
	Items     *[]OrderItemRequest `json:"items"`
	OrderType *OrderType          `json:"orderType"`
	Table     OptionalUUID        `json:"table"`
	Total     *float64            `json:"total"`
	Notes     *string             `json:"notes"`
}
