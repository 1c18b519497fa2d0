// internal/app/features/columns/handlers.go
package columns

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

type createRequest struct {
	BoardID primitive.ObjectID `json:"board_id"`
	Title   string             `json:"title"`
}

type updateRequest struct {
	Title string `json:"title"`
}

// HandleCreate creates a column and appends its id to the board's
// column order list with an atomic push.
//
// Route: POST /v1/columns
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.BoardID.IsZero() {
		webapi.Error(w, http.StatusBadRequest, "board_id and title are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Boards.GetByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, boardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "board not found")
			return
		}
		h.Log.Error("load board failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	col, err := h.Columns.Create(ctx, models.Column{
		BoardID: req.BoardID,
		Title:   req.Title,
	})
	if err != nil {
		h.Log.Error("create column failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.Boards.PushColumnOrder(ctx, req.BoardID, col.ID); err != nil {
		h.Log.Warn("column created but not appended to board order list",
			zap.String("column_id", col.ID.Hex()),
			zap.String("board_id", req.BoardID.Hex()),
			zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusCreated, col)
}

// HandleUpdate renames a column.
//
// Route: PUT /v1/columns/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	colID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad column id")
		return
	}

	var req updateRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		webapi.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	col, err := h.Columns.UpdateTitle(ctx, colID, req.Title)
	if err != nil {
		if errors.Is(err, columnstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "column not found")
			return
		}
		h.Log.Error("update column failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, col)
}

// HandleDelete removes a column: pull its id from the board's order
// list, soft-delete its cards, then drop the column document.
//
// Route: DELETE /v1/columns/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	colID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad column id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	col, err := h.Columns.GetByID(ctx, colID)
	if err != nil {
		if errors.Is(err, columnstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "column not found")
			return
		}
		h.Log.Error("load column failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.Boards.PullColumnOrder(ctx, col.BoardID, colID); err != nil &&
		!errors.Is(err, boardstore.ErrNotFound) {
		h.Log.Error("pull column from board order list failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	deletedCards, err := h.Cards.SoftDeleteByColumn(ctx, colID)
	if err != nil {
		h.Log.Error("soft-delete column cards failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.Columns.Delete(ctx, colID); err != nil {
		h.Log.Error("delete column failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, map[string]any{
		"result":        "column deleted",
		"cards_removed": deletedCards,
	})
}
