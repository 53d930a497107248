package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	canonhttp "github.com/nhalm/canonlog/http"
	"github.com/nhalm/chikit/ratelimit"
	"github.com/nhalm/chikit/ratelimit/store"
	chikitvalidate "github.com/nhalm/chikit/validate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/bespokesol/catalog/docs" // Generated Swagger docs
)

type RouteConfig struct {
	ReadRPS        int
	WriteRPS       int
	MaxBodyBytes   int64
	AllowedOrigins []string
}

func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		ReadRPS:        100,
		WriteRPS:       20,
		MaxBodyBytes:   1048576,
		AllowedOrigins: []string{"*"},
	}
}

func (h *Handler) Routes() http.Handler {
	return h.RoutesWithConfig(DefaultRouteConfig())
}

func (h *Handler) RoutesWithConfig(config RouteConfig) http.Handler {
	r := chi.NewRouter()

	st := store.NewMemory()

	readLimiter := ratelimit.NewBuilder(st).
		WithName("read").
		WithIP().
		Limit(config.ReadRPS, time.Second)

	writeLimiter := ratelimit.NewBuilder(st).
		WithName("write").
		WithIP().
		Limit(config.WriteRPS, time.Second)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(canonhttp.ChiMiddleware(nil))
	r.Use(Metrics)
	r.Use(chikitvalidate.MaxBodySize(config.MaxBodyBytes))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(readLimiter)
			r.Get("/products", h.ListProducts)
			r.Get("/products/{id}", h.GetProduct)
			r.Get("/categories", h.ListCategories)
			r.Get("/categories/{id}", h.GetCategory)
			r.Get("/media", h.ListMedia)
			r.Get("/media/{id}", h.GetMedia)
			r.Get("/vendors", h.ListVendors)
			r.Post("/shared-collections/resolve", h.ResolveSharedCollection)
			r.Get("/shared-collections/{identifier}", h.GetSharedCollection)
		})

		r.Group(func(r chi.Router) {
			r.Use(writeLimiter)
			r.Post("/users", h.RegisterUser)
			r.Post("/auth/login", h.Login)
			r.Post("/auth/refresh", h.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(writeLimiter)
			r.Use(RequireAuth(h.tokens))

			r.Post("/products", h.CreateProduct)
			r.Patch("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)

			r.Post("/categories", h.CreateCategory)
			r.Patch("/categories/{id}", h.UpdateCategory)
			r.Delete("/categories/{id}", h.DeleteCategory)

			r.Post("/media", h.CreateMedia)
			r.Patch("/media/{id}", h.UpdateMedia)
			r.Delete("/media/{id}", h.DeleteMedia)

			r.Post("/shared-collections", h.CreateSharedCollection)
		})
	})

	return r
}
