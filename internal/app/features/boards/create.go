// internal/app/features/boards/create.go
package boards

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// HandleCreate creates a board. A public board is published to the
// template catalog after the board write commits; the board itself is
// returned even if publication hits a genuine fault, since the board
// write already succeeded and the next visibility change converges the
// catalog.
//
// Route: POST /v1/boards
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		webapi.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	if !models.IsValidBoardType(req.Type) {
		webapi.Error(w, http.StatusBadRequest, "type must be public or private")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	board, err := h.Boards.Create(ctx, models.Board{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		OwnerID:     user.ID,
	})
	if err != nil {
		h.Log.Error("create board failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.Sync.OnBoardCreated(ctx, board, req.Cover); err != nil {
		h.Log.Error("template publish failed after board create",
			zap.String("board_id", board.ID.Hex()),
			zap.Error(err))
	}

	webapi.JSON(w, http.StatusCreated, board)
}
