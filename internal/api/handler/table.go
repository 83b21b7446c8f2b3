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

// TableHandler handles dining table requests
type TableHandler struct {
	tables *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tables *service.TableService) *TableHandler {
	return &TableHandler{tables: tables}
}

// HandleTables handles requests for tables
func (h *TableHandler) HandleTables(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/tables")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.listTables(w, r)
		case http.MethodPost:
			h.createTable(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := uuid.Parse(path)
	if err != nil {
		api.BadRequest(w, "Invalid table ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateTable(w, r, id)
	case http.MethodDelete:
		h.deleteTable(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TableHandler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tables.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, tables)
}

func (h *TableHandler) createTable(w http.ResponseWriter, r *http.Request) {
	var req models.TableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	table, err := h.tables.Create(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, table)
}

func (h *TableHandler) updateTable(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req models.TableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	table, err := h.tables.Update(r.Context(), id, req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, table)
}

func (h *TableHandler) deleteTable(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.tables.Delete(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
