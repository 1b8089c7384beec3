package httpserver

import (
	"net/http"
	"time"

	"church-registry-go/internal/config"
	"church-registry-go/internal/transport/httpserver/handler"
	registrymw "church-registry-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *registrymw.JWTAuth, metrics *registrymw.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(registrymw.NewCORS([]string{cfg.ClientURL}))
	r.Use(metrics.Middleware)

	r.NotFound(handlers.NotFound)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/login", handlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			// stats before {id} so "stats" never matches as a member id
			r.Get("/members/stats", handlers.MemberStats)
			r.Get("/members", handlers.ListMembers)
			r.Post("/members", handlers.CreateMember)
			r.Get("/members/{id}", handlers.GetMember)
			r.Put("/members/{id}", handlers.UpdateMember)
			r.Delete("/members/{id}", handlers.DeleteMember)

			r.Get("/groups", handlers.ListGroups)
			r.Post("/groups", handlers.CreateGroup)
			r.Get("/groups/{id}", handlers.GetGroup)
			r.Put("/groups/{id}", handlers.UpdateGroup)
			r.Delete("/groups/{id}", handlers.DeleteGroup)
			r.Get("/groups/{id}/members", handlers.GroupMembers)

			r.Get("/jumuias", handlers.ListJumuias)
			r.Post("/jumuias", handlers.CreateJumuia)
			r.Get("/jumuias/{id}", handlers.GetJumuia)
			r.Put("/jumuias/{id}", handlers.UpdateJumuia)
			r.Delete("/jumuias/{id}", handlers.DeleteJumuia)
			r.Get("/jumuias/{id}/members", handlers.JumuiaMembers)
		})
	})

	return r
}
