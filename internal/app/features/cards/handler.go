// internal/app/features/cards/handler.go
package cards

import (
	"go.uber.org/zap"

	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	"github.com/kvnhng/boardhub/internal/app/system/cardops"
)

// maxUploadBytes caps multipart bodies for cover and attachment
// uploads.
const maxUploadBytes = 10 << 20

// Handler is the feature-level entry point for Cards.
type Handler struct {
	Manager *cardops.Manager
	Columns *columnstore.Store
	Log     *zap.Logger
}

// NewHandler constructs a Cards handler.
func NewHandler(manager *cardops.Manager, columns *columnstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Manager: manager,
		Columns: columns,
		Log:     logger,
	}
}
