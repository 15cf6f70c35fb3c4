package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/msomdec/kennel/internal/service"
)

// NewRouter wires the JSON API. Reads are public; writes and table
// lifecycle calls need a bearer token from POST /api/login, which is rate
// limited per client IP.
func NewRouter(dogs *service.DogService, auth *service.AuthService, loginLimiter *service.TokenBucket) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(SecurityHeaders)

	r.Get("/healthz", HandleHealthz)

	dogHandler := NewDogHandler(dogs)
	authHandler := NewAuthHandler(auth)

	r.Route("/api", func(api chi.Router) {
		api.With(RateLimit(loginLimiter)).Post("/login", authHandler.HandleLogin)

		api.Get("/dogs", dogHandler.HandleList)
		api.Get("/dogs/search", dogHandler.HandleSearch)
		api.Get("/dogs/{id}", dogHandler.HandleGet)

		api.Group(func(protected chi.Router) {
			protected.Use(RequireAuth(auth))

			protected.Post("/dogs", dogHandler.HandleCreate)
			protected.Post("/dogs/find-or-create", dogHandler.HandleFindOrCreate)
			protected.Put("/dogs/{id}", dogHandler.HandleUpdate)
			protected.Put("/table", dogHandler.HandleCreateTable)
			protected.Delete("/table", dogHandler.HandleDropTable)
		})
	})

	return r
}
