// internal/app/features/boards/details.go
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

// HandleDetails returns a board with its columns and cards resolved in
// display order: columns follow the board's column order list, cards
// follow each column's card order list. Rows the order lists do not
// reference are appended at the end so drift never hides data.
//
// Route: GET /v1/boards/{id}
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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
	if !boardpolicy.CanView(user, board) {
		webapi.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	cols, err := h.Columns.FindByBoard(ctx, boardID)
	if err != nil {
		h.Log.Error("load columns failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	cards, err := h.Cards.FindLiveByBoard(ctx, boardID)
	if err != nil {
		h.Log.Error("load cards failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, assembleDetails(board, cols, cards))
}

func assembleDetails(board models.Board, cols []models.Column, cards []models.Card) boardDetails {
	cardsByColumn := map[primitive.ObjectID][]models.Card{}
	for _, card := range cards {
		cardsByColumn[card.ColumnID] = append(cardsByColumn[card.ColumnID], card)
	}

	colByID := map[primitive.ObjectID]models.Column{}
	for _, col := range cols {
		colByID[col.ID] = col
	}

	details := boardDetails{Board: board, Columns: []columnDetails{}}
	appendColumn := func(col models.Column) {
		details.Columns = append(details.Columns, columnDetails{
			Column: col,
			Cards:  orderCards(col.CardOrderIDs, cardsByColumn[col.ID]),
		})
	}

	seen := map[primitive.ObjectID]bool{}
	for _, id := range board.ColumnOrderIDs {
		if col, ok := colByID[id]; ok && !seen[id] {
			seen[id] = true
			appendColumn(col)
		}
	}
	for _, col := range cols {
		if !seen[col.ID] {
			appendColumn(col)
		}
	}
	return details
}

func orderCards(order []primitive.ObjectID, cards []models.Card) []models.Card {
	byID := map[primitive.ObjectID]models.Card{}
	for _, card := range cards {
		byID[card.ID] = card
	}

	ordered := []models.Card{}
	seen := map[primitive.ObjectID]bool{}
	for _, id := range order {
		if card, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			ordered = append(ordered, card)
		}
	}
	for _, card := range cards {
		if !seen[card.ID] {
			ordered = append(ordered, card)
		}
	}
	return ordered
}
