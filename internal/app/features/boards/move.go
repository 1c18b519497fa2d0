// internal/app/features/boards/move.go
package boards

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
)

// HandleMoveCard moves a card between columns on the same board: pull
// from the source order list, positioned push into the destination,
// then repoint the card. Each step is an atomic list patch; the lists
// are never rewritten wholesale.
//
// Route: PUT /v1/boards/{id}/move_card
func (h *Handler) HandleMoveCard(w http.ResponseWriter, r *http.Request) {
	boardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad board id")
		return
	}

	var req moveCardRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.CardID.IsZero() || req.FromColumnID.IsZero() || req.ToColumnID.IsZero() {
		webapi.Error(w, http.StatusBadRequest, "card_id, from_column_id, and to_column_id are required")
		return
	}
	if req.Position < 0 {
		webapi.Error(w, http.StatusBadRequest, "position cannot be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	card, err := h.Cards.GetByID(ctx, req.CardID)
	if err != nil {
		if errors.Is(err, cardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "card not found")
			return
		}
		h.Log.Error("load card failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if card.BoardID != boardID {
		webapi.Error(w, http.StatusBadRequest, "card does not belong to this board")
		return
	}

	if err := h.Columns.PullCardOrder(ctx, req.FromColumnID, req.CardID); err != nil {
		h.serveMoveError(w, err, "pull from source column")
		return
	}
	if err := h.Columns.PushCardOrderAt(ctx, req.ToColumnID, req.CardID, req.Position); err != nil {
		h.serveMoveError(w, err, "push into destination column")
		return
	}
	if err := h.Cards.SetColumn(ctx, req.CardID, req.ToColumnID); err != nil {
		h.serveMoveError(w, err, "repoint card")
		return
	}

	webapi.JSON(w, http.StatusOK, map[string]string{"result": "card moved"})
}

func (h *Handler) serveMoveError(w http.ResponseWriter, err error, step string) {
	if errors.Is(err, columnstore.ErrNotFound) {
		webapi.Error(w, http.StatusNotFound, "column not found")
		return
	}
	if errors.Is(err, cardstore.ErrNotFound) {
		webapi.Error(w, http.StatusNotFound, "card not found")
		return
	}
	h.Log.Error("move card failed", zap.String("step", step), zap.Error(err))
	webapi.Error(w, http.StatusInternalServerError, "internal error")
}
