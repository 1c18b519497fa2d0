// internal/app/features/boards/handler.go
package boards

import (
	"go.uber.org/zap"

	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	"github.com/kvnhng/boardhub/internal/app/system/reconcile"
	"github.com/kvnhng/boardhub/internal/app/system/templatesync"
)

// Handler is the feature-level entry point for Boards.
type Handler struct {
	Boards  *boardstore.Store
	Columns *columnstore.Store
	Cards   *cardstore.Store
	Sync    *templatesync.Synchronizer
	Checker *reconcile.Checker
	Log     *zap.Logger
}

// NewHandler constructs a Boards handler.
func NewHandler(
	boards *boardstore.Store,
	columns *columnstore.Store,
	cards *cardstore.Store,
	sync *templatesync.Synchronizer,
	checker *reconcile.Checker,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Boards:  boards,
		Columns: columns,
		Cards:   cards,
		Sync:    sync,
		Checker: checker,
		Log:     logger,
	}
}
