// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/kvnhng/boardhub/internal/app/system/auth"
)

// Routes returns the user routes, mounted under /v1/users. The
// account flows are public; profile routes require a signed-in user.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/verify", h.HandleVerify)
	r.Post("/send_otp", h.HandleSendOTP)
	r.Post("/login", h.HandleLogin)
	r.Post("/refresh", h.HandleRefresh)
	r.Delete("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn(tm))
		pr.Get("/me", h.HandleMe)
		pr.Put("/update", h.HandleUpdate)
	})

	return r
}
