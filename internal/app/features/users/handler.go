// internal/app/features/users/handler.go
package users

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/blobstore"
	"github.com/kvnhng/boardhub/internal/app/system/ratelimit"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// otpTTL is how long a verification code stays valid.
const otpTTL = 5 * time.Minute

// maxAvatarBytes caps avatar uploads.
const maxAvatarBytes = 5 << 20

// Notifier sends verification codes. The SMTP mailer implements it;
// tests swap in a recorder.
type Notifier interface {
	SendOneTimeCode(to, code, displayName string) error
}

// Handler is the feature-level entry point for Users.
type Handler struct {
	Users         *userstore.Store
	Tokens        *auth.TokenManager
	Notify        Notifier
	Blobs         blobstore.Store
	Limits        *ratelimit.AuthLimiter
	SecureCookies bool
	Log           *zap.Logger
}

// NewHandler constructs a Users handler.
func NewHandler(
	users *userstore.Store,
	tokens *auth.TokenManager,
	notify Notifier,
	blobs blobstore.Store,
	secureCookies bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:         users,
		Tokens:        tokens,
		Notify:        notify,
		Blobs:         blobs,
		Limits:        ratelimit.NewAuthLimiter(),
		SecureCookies: secureCookies,
		Log:           logger,
	}
}

// throttled applies the auth rate limit and writes the 429 response
// when the attempt is blocked.
func (h *Handler) throttled(w http.ResponseWriter, r *http.Request, email string) bool {
	ok, reason := h.Limits.Check(r, email)
	if !ok {
		webapi.Error(w, http.StatusTooManyRequests, reason)
		return true
	}
	return false
}

// userResponse is the wire shape of a user; the password hash and OTP
// fields never leave the server.
type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar,omitempty"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(u models.User) userResponse {
	return userResponse{
		ID:          u.ID.Hex(),
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}
