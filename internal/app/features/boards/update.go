// internal/app/features/boards/update.go
package boards

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/app/policy/boardpolicy"
	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// HandleUpdate patches board fields. A visibility change runs the
// catalog synchronization after the board write commits; genuine sync
// faults surface to the caller, converged states do not.
//
// Route: PUT /v1/boards/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	boardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad board id")
		return
	}

	var req updateRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			webapi.Error(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		req.Title = &trimmed
	}
	if req.Type != nil && !models.IsValidBoardType(*req.Type) {
		webapi.Error(w, http.StatusBadRequest, "type must be public or private")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	previous, err := h.Boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, boardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "board not found")
			return
		}
		h.Log.Error("load board failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !boardpolicy.CanModify(user, previous) {
		webapi.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	board, err := h.Boards.Update(ctx, boardID, boardstore.Patch{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		if errors.Is(err, boardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "board not found")
			return
		}
		h.Log.Error("update board failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.Sync.OnBoardUpdated(ctx, board, previous.Type, req.Cover); err != nil {
		h.Log.Error("template sync failed after board update",
			zap.String("board_id", board.ID.Hex()),
			zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, board)
}
