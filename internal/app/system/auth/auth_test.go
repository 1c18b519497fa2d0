package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvnhng/boardhub/internal/domain/models"
)

func testUser() models.User {
	return models.User{
		ID:    primitive.NewObjectID(),
		Email: "dev@example.com",
		Role:  models.RoleClient,
	}
}

func TestSignAndParseAccess(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	u := testUser()

	token, err := tm.SignAccess(u)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}

	claims, err := tm.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.Subject != u.ID.Hex() {
		t.Errorf("subject = %q, want %q", claims.Subject, u.ID.Hex())
	}
	if claims.Email != u.Email {
		t.Errorf("email = %q, want %q", claims.Email, u.Email)
	}
	if claims.Role != models.RoleClient {
		t.Errorf("role = %q, want %q", claims.Role, models.RoleClient)
	}
}

func TestParseAccess_RejectsRefreshToken(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := tm.SignRefresh(testUser())
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	if _, err := tm.ParseAccess(token); err == nil {
		t.Fatal("expected refresh token to fail access verification")
	}
}

func TestParseAccess_Expired(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, err := tm.SignAccess(testUser())
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	_, err = tm.ParseAccess(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRequireSignedIn(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	u := testUser()

	var seen *SessionUser
	handler := RequireSignedIn(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
	}))

	t.Run("no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("cookie token", func(t *testing.T) {
		token, err := tm.SignAccess(u)
		if err != nil {
			t.Fatalf("SignAccess: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if seen == nil || seen.ID != u.ID {
			t.Errorf("context user = %+v, want id %s", seen, u.ID.Hex())
		}
	})

	t.Run("bearer token", func(t *testing.T) {
		token, err := tm.SignAccess(u)
		if err != nil {
			t.Fatalf("SignAccess: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("expired token gets 410", func(t *testing.T) {
		expired := NewTokenManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)
		token, err := expired.SignAccess(u)
		if err != nil {
			t.Fatalf("SignAccess: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusGone {
			t.Errorf("status = %d, want 410", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	admin := testUser()
	admin.Role = models.RoleAdmin

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RequireSignedIn(tm)(RequireRole(models.RoleAdmin)(ok))

	serve := func(u models.User) int {
		token, err := tm.SignAccess(u)
		if err != nil {
			t.Fatalf("SignAccess: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve(admin); code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", code)
	}
	if code := serve(testUser()); code != http.StatusForbidden {
		t.Errorf("client status = %d, want 403", code)
	}
}
