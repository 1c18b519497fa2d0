// internal/app/features/columns/routes.go
package columns

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the column routes, mounted under /v1/columns.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
