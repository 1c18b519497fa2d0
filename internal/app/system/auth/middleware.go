package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvnhng/boardhub/internal/app/system/webapi"
)

const (
	// AccessCookie and RefreshCookie are the cookie names the token
	// pair travels in.
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// SessionUser is what RequireSignedIn injects into r.Context().
type SessionUser struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the signed-in user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing the
// middleware. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// RequireSignedIn verifies the access token from the cookie or an
// Authorization bearer header and injects the user into context.
//
// An expired access token gets 410 Gone, which tells the client to hit
// the refresh endpoint; everything else invalid gets 401.
func RequireSignedIn(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				webapi.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := tm.ParseAccess(token)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					webapi.Error(w, http.StatusGone, "access token expired")
					return
				}
				webapi.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.Subject)
			if err != nil {
				webapi.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, withUser(r, &SessionUser{
				ID:    id,
				Email: claims.Email,
				Role:  claims.Role,
			}))
		})
	}
}

// RequireRole allows only signed-in users whose role is in allowed.
// Must be mounted inside RequireSignedIn.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				webapi.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				webapi.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// SetTokenCookies writes the token pair as HTTP-only cookies. Cookie
// lifetime follows the refresh TTL so the client keeps both until the
// refresh token itself dies.
func SetTokenCookies(w http.ResponseWriter, access, refresh string, ttl time.Duration, secure bool) {
	for _, c := range []struct{ name, value string }{
		{AccessCookie, access},
		{RefreshCookie, refresh},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    c.value,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

// ClearTokenCookies expires both token cookies.
func ClearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}
