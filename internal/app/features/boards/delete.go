// internal/app/features/boards/delete.go
package boards

import (
	"context"
	"errors"
	"net/http"

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

// HandleDelete removes a board with its columns and cards. A public
// board's catalog entry is retired first; the board itself is deleted
// regardless of the catalog outcome, and a genuine sync fault still
// surfaces after the deletion.
//
// Route: DELETE /v1/boards/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	board, err := h.Boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, boardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "board not found")
			return
		}
		h.Log.Error("load board failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !boardpolicy.CanModify(user, board) {
		webapi.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	_, syncErr := h.Sync.OnBoardDeleted(ctx, board)

	if err := h.deleteContents(ctx, board); err != nil {
		h.Log.Error("delete board contents failed",
			zap.String("board_id", boardID.Hex()), zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.Boards.Delete(ctx, boardID); err != nil {
		h.Log.Error("delete board failed",
			zap.String("board_id", boardID.Hex()), zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if syncErr != nil {
		h.Log.Error("template retire failed during board delete",
			zap.String("board_id", boardID.Hex()), zap.Error(syncErr))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, map[string]string{"result": "board deleted"})
}

func (h *Handler) deleteContents(ctx context.Context, board models.Board) error {
	cols, err := h.Columns.FindByBoard(ctx, board.ID)
	if err != nil {
		return err
	}
	for _, col := range cols {
		if _, err := h.Cards.SoftDeleteByColumn(ctx, col.ID); err != nil {
			return err
		}
		if _, err := h.Columns.Delete(ctx, col.ID); err != nil {
			return err
		}
	}
	return nil
}
