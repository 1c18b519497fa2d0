// internal/app/features/templates/handler.go
package templates

import (
	"go.uber.org/zap"

	templatestore "github.com/kvnhng/boardhub/internal/app/store/templates"
	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
)

// Handler is the feature-level entry point for the template catalog.
type Handler struct {
	Templates *templatestore.Store
	Users     *userstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a Templates handler.
func NewHandler(templates *templatestore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Templates: templates,
		Users:     users,
		Log:       logger,
	}
}
