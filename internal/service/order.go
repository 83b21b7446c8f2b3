package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golden-lotus/pos-service/internal/events"
	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
)

// OrderStore is the order persistence consumed by the lifecycle engine
type OrderStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetResolved(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, payment *models.PaymentDetails) error
	Update(ctx context.Context, id uuid.UUID, req models.OrderUpdateRequest) error
	List(ctx context.Context, activeOnly bool) ([]models.Order, error)
}

// OrderEvent is the payload of every order topic: the resolved order plus the
// role of whoever triggered the mutation
type OrderEvent struct {
	Order     *models.Order `json:"order"`
	ActorRole string        `json:"actorRole"`
}

// SideEffectError marks a table-occupancy update that failed during an order
// mutation. It is logged by the engine and never returned to the caller.
type SideEffectError struct {
	Op  string
	Err error
}

func (e *SideEffectError) Error() string {
	return fmt.Sprintf("table occupancy side effect %s: %v", e.Op, e.Err)
}

func (e *SideEffectError) Unwrap() error { return e.Err }

// OrderService owns the order lifecycle: creation, item/total mutation and
// status transitions, with their table-occupancy side effects and domain
// events.
type OrderService struct {
	orders    OrderStore
	occupancy *OccupancyManager
	bus       events.Bus
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(orders OrderStore, occupancy *OccupancyManager, bus events.Bus) *OrderService {
	return &OrderService{
		orders:    orders,
		occupancy: occupancy,
		bus:       bus,
		now:       time.Now,
	}
}

// Create persists a new order and, for dine-in orders with a table, occupies
// that table. A dine-in order without a table is tolerated. Returns the
// resolved order.
func (s *OrderService) Create(ctx context.Context, req models.OrderRequest, actor models.Actor) (*models.Order, error) {
	if req.OrderType == "" {
		req.OrderType = models.OrderTypeDineIn
	}
	if req.Status == "" {
		req.Status = models.OrderStatusPending
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	if req.Total < 0 {
		return nil, fmt.Errorf("total must not be negative: %w", models.ErrValidation)
	}

	created, err := s.orders.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if created.OrderType == models.OrderTypeDineIn && created.TableID != nil {
		if err := s.occupancy.Occupy(ctx, *created.TableID); err != nil {
			s.reportSideEffect("occupy", err)
		}
	}

	resolved, err := s.orders.GetResolved(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicOrderCreated, OrderEvent{Order: resolved, ActorRole: actorRole(actor)})
	return resolved, nil
}

// UpdateStatus sets an order's status. On the transition into paid it writes
// amountPaid (when supplied), paidAt and, for authenticated actors, paidBy in
// the same update, then frees the order's dine-in table. Any status value is
// accepted; forward-only progression is left to the UI.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, amountPaid *float64, actor models.Actor) (*models.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("status is required: %w", models.ErrValidation)
	}

	var payment *models.PaymentDetails
	if status == models.OrderStatusPaid {
		payment = &models.PaymentDetails{
			AmountPaid: amountPaid,
			PaidAt:     s.now(),
		}
		if actor.Authenticated {
			paidBy := actor.ID
			payment.PaidBy = &paidBy
		}
	}

	if err := s.orders.UpdateStatus(ctx, id, status, payment); err != nil {
		return nil, err
	}

	resolved, err := s.orders.GetResolved(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == models.OrderStatusPaid && resolved.OrderType == models.OrderTypeDineIn && resolved.TableID != nil {
		if err := s.occupancy.Free(ctx, *resolved.TableID); err != nil {
			s.reportSideEffect("free", err)
		}
	}

	s.bus.Publish(events.TopicOrderStatusChanged, OrderEvent{Order: resolved, ActorRole: actorRole(actor)})
	return resolved, nil
}

// Update applies a partial edit, then reconciles table occupancy: the
// previous table is freed when the order left it, and the current dine-in
// table is occupied. The occupy runs even when nothing changed; the
// reconciliation is idempotent by design.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req models.OrderUpdateRequest, actor models.Actor) (*models.Order, error) {
	prev, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		if err := validateItems(*req.Items); err != nil {
			return nil, err
		}
	}
	if req.Total != nil && *req.Total < 0 {
		return nil, fmt.Errorf("total must not be negative: %w", models.ErrValidation)
	}

	if err := s.orders.Update(ctx, id, req); err != nil {
		return nil, err
	}

	resolved, err := s.orders.GetResolved(ctx, id)
	if err != nil {
		return nil, err
	}

	s.reconcileTables(ctx, prev, resolved)

	s.bus.Publish(events.TopicOrderUpdated, OrderEvent{Order: resolved, ActorRole: actorRole(actor)})
	return resolved, nil
}

// reconcileTables frees the table the order moved off and occupies the one it
// sits on now. Both updates are best effort.
func (s *OrderService) reconcileTables(ctx context.Context, prev, next *models.Order) {
	prevWasDineIn := prev.OrderType == models.OrderTypeDineIn
	nextIsDineIn := next.OrderType == models.OrderTypeDineIn

	if prevWasDineIn && prev.TableID != nil {
		moved := !nextIsDineIn || next.TableID == nil || *next.TableID != *prev.TableID
		if moved {
			if err := s.occupancy.Free(ctx, *prev.TableID); err != nil {
				s.reportSideEffect("free", err)
			}
		}
	}

	if nextIsDineIn && next.TableID != nil {
		if err := s.occupancy.Occupy(ctx, *next.TableID); err != nil {
			s.reportSideEffect("occupy", err)
		}
	}
}

// ListAll returns all orders resolved, newest first
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx, false)
}

// ListActive returns resolved orders that are not yet paid, newest first
func (s *OrderService) ListActive(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx, true)
}

func (s *OrderService) reportSideEffect(op string, err error) {
	log.Printf("%v", &SideEffectError{Op: op, Err: err})
}

func validateItems(items []models.OrderItemRequest) error {
	for _, item := range items {
		if item.Qty < 1 {
			return fmt.Errorf("item qty must be positive: %w", models.ErrValidation)
		}
	}
	return nil
}

func actorRole(actor models.Actor) string {
	if !actor.Authenticated {
		return "anonymous"
	}
	return string(actor.Role)
}
