// internal/app/features/templates/handlers.go
package templates

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	templatestore "github.com/kvnhng/boardhub/internal/app/store/templates"
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

type listResponse struct {
	Templates []models.Template `json:"templates"`
}

// HandleList returns the public template catalog. With ?mine=1 it
// returns only the templates in the caller's membership list, resolved
// through FindManyByIDs so retired entries drop out silently.
//
// Route: GET /v1/templates?mine=1
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if r.URL.Query().Get("mine") == "1" {
		h.serveMine(ctx, w, r)
		return
	}

	all, err := h.Templates.GetAll(ctx)
	if err != nil {
		h.Log.Error("list templates failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.JSON(w, http.StatusOK, listResponse{Templates: all})
}

func (h *Handler) serveMine(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	account, err := h.Users.GetByID(ctx, user.ID)
	if err != nil {
		h.Log.Error("load user failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	mine, err := h.Templates.FindManyByIDs(ctx, account.TemplateIDs)
	if err != nil {
		h.Log.Error("resolve membership templates failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.JSON(w, http.StatusOK, listResponse{Templates: mine})
}

// HandleDetails returns one live template.
//
// Route: GET /v1/templates/{id}
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad template id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templatestore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "template not found")
			return
		}
		h.Log.Error("load template failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, t)
}
