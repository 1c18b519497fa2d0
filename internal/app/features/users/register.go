// internal/app/features/users/register.go
package users

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errAlreadyRegistered signals a register attempt against an email
// that belongs to a completed account.
var errAlreadyRegistered = errors.New("email already registered")

// HandleRegister creates an inactive account, stores a fresh one-time
// code, and emails it. The email send is synchronous: if the relay
// rejects the message the client hears about it now, not after staring
// at an inbox. An email that already exists as a pre-provisioned
// placeholder (inactive, no password) is claimed instead of rejected,
// so a bootstrapped admin can finish their own registration.
//
// Route: POST /v1/users/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	if h.throttled(w, r, req.Email) {
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		webapi.Error(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		webapi.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		user, err = h.claimPlaceholder(ctx, req.Email, string(hash))
	}
	if err != nil {
		if errors.Is(err, errAlreadyRegistered) {
			webapi.Error(w, http.StatusConflict, "email already registered")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.issueOTP(ctx, user); err != nil {
		h.Log.Error("send verification code failed",
			zap.String("user_id", user.ID.Hex()), zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not send verification code")
		return
	}

	webapi.JSON(w, http.StatusCreated, toResponse(user))
}

// claimPlaceholder finishes registration for a pre-provisioned account
// such as the startup admin placeholder. Only an inactive account with
// no password can be claimed; anything else is a real duplicate.
func (h *Handler) claimPlaceholder(ctx context.Context, email, hash string) (models.User, error) {
	existing, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing.IsActive || existing.PasswordHash != "" {
		return models.User{}, errAlreadyRegistered
	}
	return h.Users.Update(ctx, existing.ID, userstore.Patch{PasswordHash: &hash})
}

// HandleSendOTP issues a fresh verification code for a not-yet-active
// account.
//
// Route: POST /v1/users/send_otp
func (h *Handler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
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

	if err := h.issueOTP(ctx, user); err != nil {
		h.Log.Error("send verification code failed",
			zap.String("user_id", user.ID.Hex()), zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not send verification code")
		return
	}

	webapi.JSON(w, http.StatusOK, map[string]string{"result": "verification code sent"})
}

func (h *Handler) issueOTP(ctx context.Context, user models.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := h.Users.SetOTP(ctx, user.ID, code, time.Now().UTC().Add(otpTTL)); err != nil {
		return err
	}
	return h.Notify.SendOneTimeCode(user.Email, code, user.DisplayName)
}
