// internal/app/features/boards/routes.go
package boards

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the board routes, mounted under /v1/boards. The
// signed-in middleware is applied by the caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleDetails)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Put("/{id}/move_card", h.HandleMoveCard)
	r.Get("/{id}/drift", h.HandleDrift)

	return r
}
