package handler

import (
	"encoding/json"
	"net/http"

	"github.com/golden-lotus/pos-service/internal/api"
	"github.com/golden-lotus/pos-service/internal/middleware"
	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/golden-lotus/pos-service/internal/service"
)

// AuthHandler handles login, registration and the current-user endpoint
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// HandleLogin handles user login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}

	api.WriteJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// HandleRegister handles user registration
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	token, user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// HandleMe returns the authenticated user's profile
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor := middleware.GetActor(r.Context())
	if !actor.Authenticated {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	user, err := h.auth.Me(r.Context(), actor.ID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, user)
}
