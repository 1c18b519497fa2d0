// internal/app/features/cards/routes.go
package cards

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the card routes, mounted under /v1/cards.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Post("/{id}/attachments", h.HandleUploadAttachment)
	r.Delete("/{id}/attachments/{attachmentID}", h.HandleDeleteAttachment)

	return r
}
