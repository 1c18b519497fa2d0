// internal/app/features/templates/routes.go
package templates

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the template catalog routes, mounted under
// /v1/templates.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleDetails)

	return r
}
