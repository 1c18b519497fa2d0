// internal/app/features/boards/drift.go
package boards

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/app/system/reconcile"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
)

// driftResponse wraps the per-column drift reports for one board.
type driftResponse struct {
	BoardID primitive.ObjectID `json:"board_id"`
	Clean   bool               `json:"clean"`
	Reports []reconcile.Report `json:"reports"`
}

// HandleDrift reports columns whose order list disagrees with their
// live cards, the partial-failure residue of the card saga.
//
// Route: GET /v1/boards/{id}/drift
func (h *Handler) HandleDrift(w http.ResponseWriter, r *http.Request) {
	boardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad board id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reports, err := h.Checker.CheckBoard(ctx, boardID)
	if err != nil {
		h.Log.Error("drift check failed",
			zap.String("board_id", boardID.Hex()), zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if reports == nil {
		reports = []reconcile.Report{}
	}

	webapi.JSON(w, http.StatusOK, driftResponse{
		BoardID: boardID,
		Clean:   len(reports) == 0,
		Reports: reports,
	})
}
