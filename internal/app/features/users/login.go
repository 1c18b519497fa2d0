// internal/app/features/users/login.go
package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// HandleVerify checks the one-time code and activates the account.
//
// Route: POST /v1/users/verify
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	if h.throttled(w, r, req.Email) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "account not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user.IsActive {
		webapi.Error(w, http.StatusConflict, "account is already active")
		return
	}
	if user.OTPCode == "" || req.Code != user.OTPCode {
		webapi.Error(w, http.StatusBadRequest, "invalid verification code")
		return
	}
	if time.Now().UTC().After(user.OTPExpires) {
		webapi.Error(w, http.StatusBadRequest, "verification code expired")
		return
	}

	user, err = h.Users.Activate(ctx, user.ID)
	if err != nil {
		h.Log.Error("activate user failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, toResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies the credentials and sets the access/refresh
// cookie pair.
//
// Route: POST /v1/users/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	if h.throttled(w, r, req.Email) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			webapi.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		webapi.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !user.IsActive {
		webapi.Error(w, http.StatusForbidden, "account is not verified")
		return
	}
	h.Limits.ResetEmail(user.Email)

	if err := h.issueTokens(w, user); err != nil {
		h.Log.Error("issue tokens failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, toResponse(user))
}

// HandleRefresh mints a fresh access token from a valid refresh
// cookie.
//
// Route: POST /v1/users/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.RefreshCookie)
	if err != nil || cookie.Value == "" {
		webapi.Error(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	claims, err := h.Tokens.ParseRefresh(cookie.Value)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Re-read the account so a deactivated user cannot keep minting
	// access tokens from an old refresh cookie.
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	if err := h.issueTokens(w, user); err != nil {
		h.Log.Error("issue tokens failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, map[string]string{"result": "token refreshed"})
}

// HandleLogout clears the token cookies.
//
// Route: DELETE /v1/users/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookies(w)
	webapi.JSON(w, http.StatusOK, map[string]string{"result": "logged out"})
}

func (h *Handler) issueTokens(w http.ResponseWriter, user models.User) error {
	access, err := h.Tokens.SignAccess(user)
	if err != nil {
		return err
	}
	refresh, err := h.Tokens.SignRefresh(user)
	if err != nil {
		return err
	}
	auth.SetTokenCookies(w, access, refresh, h.Tokens.RefreshTTL(), h.SecureCookies)
	return nil
}
