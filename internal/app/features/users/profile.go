// internal/app/features/users/profile.go
package users

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
)

// HandleMe returns the signed-in user's account.
//
// Route: GET /v1/users/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	account, err := h.Users.GetByID(ctx, user.ID)
	if err != nil {
		h.Log.Error("load user failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.JSON(w, http.StatusOK, toResponse(account))
}

type updateProfileRequest struct {
	DisplayName     *string `json:"display_name"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

// HandleUpdate applies one profile change per call: a password change
// when both password fields are present, an avatar upload when the
// body is multipart, otherwise a display-name update.
//
// Route: PUT /v1/users/update
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.updateAvatar(w, r, user)
		return
	}

	var req updateProfileRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}

	if req.CurrentPassword != "" && req.NewPassword != "" {
		h.changePassword(w, r, user, req)
		return
	}

	if req.DisplayName == nil || strings.TrimSpace(*req.DisplayName) == "" {
		webapi.Error(w, http.StatusBadRequest, "nothing to update")
		return
	}
	trimmed := strings.TrimSpace(*req.DisplayName)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Users.Update(ctx, user.ID, userstore.Patch{DisplayName: &trimmed})
	if err != nil {
		h.Log.Error("update profile failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request, user *auth.SessionUser, req updateProfileRequest) {
	if len(req.NewPassword) < 8 {
		webapi.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.Users.GetByID(ctx, user.ID)
	if err != nil {
		h.Log.Error("load user failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		webapi.Error(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	hashed := string(hash)

	updated, err := h.Users.Update(ctx, user.ID, userstore.Patch{PasswordHash: &hashed})
	if err != nil {
		h.Log.Error("change password failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request, user *auth.SessionUser) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		webapi.Error(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		webapi.Error(w, http.StatusBadRequest, "avatar must be an image")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	key := "avatars/" + uuid.NewString() + path.Ext(header.Filename)
	url, err := h.Blobs.Put(ctx, key, contentType, file, header.Size)
	if err != nil {
		h.Log.Error("upload avatar failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	updated, err := h.Users.Update(ctx, user.ID, userstore.Patch{Avatar: &url})
	if err != nil {
		if delErr := h.Blobs.Delete(ctx, key); delErr != nil {
			h.Log.Warn("orphaned avatar blob after failed update",
				zap.String("key", key), zap.Error(delErr))
		}
		h.Log.Error("update avatar failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.JSON(w, http.StatusOK, toResponse(updated))
}
