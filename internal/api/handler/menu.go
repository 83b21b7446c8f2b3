package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golden-lotus/pos-service/internal/api"
	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/golden-lotus/pos-service/internal/service"
	"github.com/google/uuid"
)

const maxImageSize = 10 << 20 // 10MB

// MenuHandler handles menu item requests, including image uploads
type MenuHandler struct {
	menu   *service.MenuService
	images service.ImageStore
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu *service.MenuService, images service.ImageStore) *MenuHandler {
	return &MenuHandler{menu: menu, images: images}
}

// HandleMenuItems handles requests for menu items
func (h *MenuHandler) HandleMenuItems(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/menus")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.listItems(w, r)
		case http.MethodPost:
			h.createItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := uuid.Parse(path)
	if err != nil {
		api.BadRequest(w, "Invalid menu item ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateItem(w, r, id)
	case http.MethodDelete:
		h.deleteItem(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MenuHandler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListItems(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) createItem(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseItemRequest(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	item, err := h.menu.CreateItem(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) updateItem(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	req, err := h.parseItemRequest(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	item, err := h.menu.UpdateItem(r.Context(), id, req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) deleteItem(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.menu.DeleteItem(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseItemRequest accepts either a JSON body or a multipart form with an
// optional image file. Uploaded images go straight to the image store and the
// request carries their URL.
func (h *MenuHandler) parseItemRequest(r *http.Request) (models.MenuItemRequest, error) {
	var req models.MenuItemRequest

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid request body")
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return req, fmt.Errorf("invalid multipart form")
	}

	categoryID, err := uuid.Parse(r.FormValue("category"))
	if err != nil {
		return req, fmt.Errorf("invalid category")
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return req, fmt.Errorf("invalid price")
	}

	req.CategoryID = categoryID
	req.Name = r.FormValue("name")
	req.Price = price
	req.IsAvailable = r.FormValue("isAvailable") != "false"

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("invalid image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return req, fmt.Errorf("failed to read image")
	}

	url, err := h.images.Put(data, filepath.Ext(header.Filename))
	if err != nil {
		return req, fmt.Errorf("failed to store image")
	}
	req.ImageURL = &url

	return req, nil
}
