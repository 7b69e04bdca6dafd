package gateway

import (
	"net/http"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/config"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/handlers"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/middleware"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"github.com/dmitrijs2005/blogmesh/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Identity is what the gateway needs from the identity service.
type Identity interface {
	handlers.IdentityAPI
	handlers.Checker
	middleware.TokenValidator
}

// Content is what the gateway needs from the content service.
type Content interface {
	handlers.ContentAPI
	handlers.Checker
}

// NewRouter builds the public REST API. Everything under /posts sits behind
// the authorization gate.
func NewRouter(c *config.Config, identity Identity, content Content, logger logging.Logger) http.Handler {
	v := handlers.NewValidator()
	auth := handlers.NewAuthHandler(identity, v, logger)
	posts := handlers.NewPostHandler(content, v, logger)
	gate := middleware.NewAuthGate(identity, c.ValidateTimeout, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", common.AuthorizationHeader, common.RequestIDHeader},
		ExposedHeaders: []string{common.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(map[string]handlers.Checker{
		"identity": identity,
		"content":  content,
	}))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Use(gate.Handler)
		r.Post("/", posts.Create)
		r.Get("/", posts.List)
		r.Get("/{id}", posts.Get)
		r.Put("/{id}", posts.Update)
		r.Delete("/{id}", posts.Delete)
	})

	return r
}
