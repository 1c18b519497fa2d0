// internal/app/features/boards/list.go
package boards

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/paging"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
)

// HandleList returns one page of the caller's boards, newest first,
// optionally filtered by a title search.
//
// Route: GET /v1/boards?q=&page=&per_page=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page := paging.ParsePage(r)
	perPage := paging.ParsePerPage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	result, err := h.Boards.ListByOwner(ctx, user.ID, page, perPage, paging.ParseSearch(r))
	if err != nil {
		h.Log.Error("list boards failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, listResponse{
		Boards:  result.Boards,
		Total:   result.Total,
		Page:    page,
		PerPage: perPage,
	})
}
