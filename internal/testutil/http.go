// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvnhng/boardhub/internal/app/system/auth"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

// AdminUser returns a TestUser with admin role.
func AdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID(),
		Email: "admin@test.com",
		Role:  "admin",
	}
}

// ClientUser returns a TestUser with client role.
func ClientUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID(),
		Email: "client@test.com",
		Role:  "client",
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the token middleware and injects the user
// directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}
