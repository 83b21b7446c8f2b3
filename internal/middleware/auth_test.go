package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/golden-lotus/pos-service/internal/service"
	"github.com/google/uuid"
)

// stubUserStore backs an AuthService with a single registered user
type stubUserStore struct {
	user *models.User
}

func (s *stubUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

func (s *stubUserStore) List(_ context.Context) ([]models.User, error) {
	return nil, nil
}

func (s *stubUserStore) Create(_ context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.New()
	s.user = &user
	return s.user, nil
}

func (s *stubUserStore) Update(_ context.Context, id uuid.UUID, name, email string, role models.UserRole, passwordHash string) (*models.User, error) {
	return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

func (s *stubUserStore) Delete(_ context.Context, id uuid.UUID) error {
	return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

func newAuthFixture(t *testing.T) (*service.AuthService, string, *models.User) {
	t.Helper()

	auth := service.NewAuthService(&stubUserStore{}, service.JWTConfig{Secret: "test-secret", ExpiresIn: 1})
	token, user, err := auth.Register(context.Background(), models.UserRequest{
		Name:     "Waiter",
		Email:    "waiter@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	return auth, token, user
}

func TestOptionalAuth(t *testing.T) {
	auth, token, user := newAuthFixture(t)

	tests := []struct {
		name       string
		header     string
		wantAuthed bool
	}{
		{"no header passes through anonymously", "", false},
		{"malformed header passes through anonymously", "Bearer", false},
		{"garbage token passes through anonymously", "Bearer not-a-token", false},
		{"valid token populates the actor", "Bearer " + token, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor models.Actor
			handler := OptionalAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actor = GetActor(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if actor.Authenticated != tt.wantAuthed {
				t.Errorf("authenticated = %v, want %v", actor.Authenticated, tt.wantAuthed)
			}
			if tt.wantAuthed {
				if actor.ID != user.ID {
					t.Errorf("actor ID = %s, want %s", actor.ID, user.ID)
				}
				if actor.Role != user.Role {
					t.Errorf("actor role = %s, want %s", actor.Role, user.Role)
				}
			}
		})
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	handler := Auth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
