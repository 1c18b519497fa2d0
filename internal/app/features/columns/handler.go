// internal/app/features/columns/handler.go
package columns

import (
	"go.uber.org/zap"

	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
)

// Handler is the feature-level entry point for Columns.
type Handler struct {
	Boards  *boardstore.Store
	Columns *columnstore.Store
	Cards   *cardstore.Store
	Log     *zap.Logger
}

// NewHandler constructs a Columns handler.
func NewHandler(boards *boardstore.Store, columns *columnstore.Store, cards *cardstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Boards:  boards,
		Columns: columns,
		Cards:   cards,
		Log:     logger,
	}
}
