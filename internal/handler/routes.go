package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mqlstam/vinylplatz2025/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth         *service.AuthService
	Genres       *service.GenreService
	Vinyls       *service.VinylService
	Orders       *service.OrderService
	Favorites    *service.FavoriteService
	LoginLimiter *service.LoginLimiter
}

// NewRouter builds the full route tree under /api.
func NewRouter(svc Services) http.Handler {
	authHandler := NewAuthHandler(svc.Auth, svc.LoginLimiter)
	genreHandler := NewGenreHandler(svc.Genres)
	vinylHandler := NewVinylHandler(svc.Vinyls)
	orderHandler := NewOrderHandler(svc.Orders)
	favoriteHandler := NewFavoriteHandler(svc.Favorites)

	requireAuth := RequireAuth(svc.Auth)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HandleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/profile", authHandler.HandleProfile)
				r.Patch("/profile", authHandler.HandleUpdateProfile)

				r.With(RequireAdmin).Get("/admin", authHandler.HandleAdminCheck)
			})
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genreHandler.HandleList)
			r.Get("/{id}", genreHandler.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, RequireAdmin)
				r.Post("/", genreHandler.HandleCreate)
				r.Patch("/{id}", genreHandler.HandleUpdate)
				r.Delete("/{id}", genreHandler.HandleDelete)
			})
		})

		r.Route("/vinyls", func(r chi.Router) {
			r.Get("/", vinylHandler.HandleList)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/seller/me", vinylHandler.HandleListMine)
				r.Post("/", vinylHandler.HandleCreate)
				r.Patch("/{id}", vinylHandler.HandleUpdate)
				r.Delete("/{id}", vinylHandler.HandleDelete)
			})

			r.Get("/{id}", vinylHandler.HandleGet)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", orderHandler.HandleList)
			r.Post("/", orderHandler.HandleCreate)
			r.Get("/{id}", orderHandler.HandleGet)
			r.Patch("/{id}/status", orderHandler.HandleUpdateStatus)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", favoriteHandler.HandleList)
			r.Get("/{vinylId}/status", favoriteHandler.HandleStatus)
			r.Post("/{vinylId}", favoriteHandler.HandleAdd)
			r.Delete("/{vinylId}", favoriteHandler.HandleRemove)
		})
	})

	return r
}

// HandleHealth reports service liveness.
// GET /api/health
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
