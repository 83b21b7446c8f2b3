package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/golden-lotus/pos-service/internal/api"
	"github.com/golden-lotus/pos-service/internal/middleware"
	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/golden-lotus/pos-service/internal/service"
	"github.com/google/uuid"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	orders    *service.OrderService
	analytics *service.AnalyticsService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService, analytics *service.AnalyticsService) *OrderHandler {
	return &OrderHandler{orders: orders, analytics: analytics}
}

// HandleOrders handles requests for orders
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/orders")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.listOrders(w, r, false)
		case http.MethodPost:
			h.createOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return

	case "active":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.listOrders(w, r, true)
		return

	case "analytics":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getRevenue(w, r)
		return

	case "best-sellers":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getBestSellers(w, r)
		return
	}

	// Remaining shapes: {id} and {id}/status
	parts := strings.Split(path, "/")

	id, err := uuid.Parse(parts[0])
	if err != nil {
		api.BadRequest(w, "Invalid order ID")
		return
	}

	if len(parts) == 2 && parts[1] == "status" {
		if r.Method != http.MethodPatch {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.updateOrderStatus(w, r, id)
		return
	}

	if len(parts) == 1 && r.Method == http.MethodPut {
		h.updateOrder(w, r, id)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// listOrders lists orders, all or active only
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	var (
		orders []models.Order
		err    error
	)
	if activeOnly {
		orders, err = h.orders.ListActive(r.Context())
	} else {
		orders, err = h.orders.ListAll(r.Context())
	}
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, orders)
}

// createOrder places a new order
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	order, err := h.orders.Create(r.Context(), req, middleware.GetActor(r.Context()))
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, order)
}

// updateOrderStatus moves an order through its lifecycle
func (h *OrderHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req models.OrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status, req.AmountPaid, middleware.GetActor(r.Context()))
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, order)
}

// updateOrder applies a partial edit to an order
func (h *OrderHandler) updateOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req models.OrderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	order, err := h.orders.Update(r.Context(), id, req, middleware.GetActor(r.Context()))
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, order)
}

// getRevenue returns the revenue time series. Admin only.
func (h *OrderHandler) getRevenue(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	q := service.RevenueQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
		Month: r.URL.Query().Get("month"),
		Year:  r.URL.Query().Get("year"),
	}

	report, err := h.analytics.Revenue(r.Context(), q)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, report)
}

// getBestSellers returns the best-seller ranking. Admin only.
func (h *OrderHandler) getBestSellers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			api.BadRequest(w, "Invalid limit")
			return
		}
		limit = parsed
	}

	sellers, err := h.analytics.BestSellers(r.Context(), limit)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, sellers)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	role, ok := middleware.GetUserRole(r.Context())
	if !ok || role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}
