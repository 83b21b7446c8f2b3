package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/golden-lotus/pos-service/internal/service"
	"github.com/google/uuid"
)

// contextKey is a type for context keys
type contextKey string

// Context keys
const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

// Auth middleware for authenticating requests
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the actor context when a valid Bearer token is
// present and lets the request through untouched when it is not. Routes that
// serve anonymous callers but attribute mutations to authenticated ones use
// this instead of Auth.
func OptionalAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Split(r.Header.Get("Authorization"), " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := authService.ValidateToken(parts[1]); err == nil {
					ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
					ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole middleware for checking user roles
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleValue := r.Context().Value(UserRoleKey)
			if roleValue == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			role := models.UserRole(roleValue.(string))

			allowed := false
			for _, allowedRole := range roles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the authenticated user's ID from the context
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

// GetUserRole extracts the authenticated user's role from the context
func GetUserRole(ctx context.Context) (models.UserRole, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return models.UserRole(role), ok
}

// GetActor builds the acting identity for the request; the zero Actor when
// unauthenticated
func GetActor(ctx context.Context) models.Actor {
	idStr, ok := GetUserID(ctx)
	if !ok {
		return models.Actor{}
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return models.Actor{}
	}

	role, _ := GetUserRole(ctx)
	return models.Actor{ID: id, Role: role, Authenticated: true}
}
