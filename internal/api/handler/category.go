package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golden-lotus/pos-service/internal/api"
	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/golden-lotus/pos-service/internal/service"
	"github.com/google/uuid"
)

// CategoryHandler handles menu category requests
type CategoryHandler struct {
	menu *service.MenuService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(menu *service.MenuService) *CategoryHandler {
	return &CategoryHandler{menu: menu}
}

// HandleCategories handles requests for categories
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/categories")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.listCategories(w, r)
		case http.MethodPost:
			h.createCategory(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := uuid.Parse(path)
	if err != nil {
		api.BadRequest(w, "Invalid category ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateCategory(w, r, id)
	case http.MethodDelete:
		h.deleteCategory(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menu.ListCategories(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	category, err := h.menu.CreateCategory(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	category, err := h.menu.UpdateCategory(r.Context(), id, req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.menu.DeleteCategory(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
