// Package http provides HTTP routing and middleware configuration
// for the BrickStash service.
package http

import (
	"net/http"

	"github.com/brickstash/brickstash/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// BrickStash API. It applies JSON content-type enforcement, request logging
// and bearer-token authentication, and mounts the collection, set, quantity
// and search endpoints under /api.
//
// Routes:
//
//	GET    /api/health                                            → health.Health (unauthenticated)
//	GET    /api/collections                                       → collections.List
//	POST   /api/collections                                       → collections.Create
//	GET    /api/collections/{collectionID}                        → collections.Get
//	DELETE /api/collections/{collectionID}                        → collections.Delete
//	GET    /api/collections/{collectionID}/sets                   → collections.Sets
//	DELETE /api/collections/{collectionID}/sets/{setNum}          → quantities.Remove
//	GET    /api/collections/{collectionID}/quantities             → quantities.List
//	POST   /api/collections/{collectionID}/quantities             → quantities.Create
//	GET    /api/collections/{collectionID}/quantities/{setNum}    → quantities.Get
//	PUT    /api/collections/{collectionID}/quantities/{setNum}    → quantities.Update
//	POST   /api/collections/{collectionID}/quantities/{setNum}/add → quantities.Add
//	POST   /api/sets                                              → sets.Create
//	GET    /api/search                                            → search.Search
func NewRouter(
	collections *CollectionHandler,
	sets *SetHandler,
	quantities *QuantityHandler,
	search *SearchHandler,
	health *HealthHandler,
	verifier middleware.TokenVerifier,
	users middleware.UserProvisioner,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the caller's identity from the bearer token
	r.Use(middleware.BearerAuth(verifier, users, logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", collections.List)
			r.Post("/", collections.Create)

			r.Route("/{collectionID}", func(r chi.Router) {
				r.Get("/", collections.Get)
				r.Delete("/", collections.Delete)
				r.Get("/sets", collections.Sets)
				r.Delete("/sets/{setNum}", quantities.Remove)

				r.Route("/quantities", func(r chi.Router) {
					r.Get("/", quantities.List)
					r.Post("/", quantities.Create)
					r.Get("/{setNum}", quantities.Get)
					r.Put("/{setNum}", quantities.Update)
					r.Post("/{setNum}/add", quantities.Add)
				})
			})
		})

		r.Post("/sets", sets.Create)
		r.Get("/search", search.Search)
	})

	return r
}
