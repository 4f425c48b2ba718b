package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/muhammedaliasad/fantasy-football/internal/handlers"
	appmw "github.com/muhammedaliasad/fantasy-football/internal/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Works Fine!"))
	})

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/auth/login", handlers.LoginHandler)
	r.Post("/auth/refresh", handlers.RefreshHandler)

	r.With(appmw.Authenticated).Get("/profile", handlers.ProfileHandler)
	r.With(appmw.Authenticated).Patch("/profile", handlers.UpdateProfileHandler)

	r.With(appmw.Authenticated).Get("/teams/my-team", handlers.MyTeamHandler)
	r.With(appmw.Authenticated).Get("/players/my-players", handlers.MyPlayersHandler)

	r.With(appmw.Authenticated).Get("/transactions", handlers.TransactionsHandler)

	r.With(appmw.Authenticated).Post("/transfer-listings", handlers.CreateListingHandler)
	r.With(appmw.Authenticated).Get("/transfer-listings", handlers.ListingsHandler)
	r.With(appmw.Authenticated).Post("/transfer-listings/{id}/buy", handlers.BuyHandler)
	r.With(appmw.Authenticated).Post("/transfer-listings/{id}/cancel", handlers.CancelListingHandler)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
