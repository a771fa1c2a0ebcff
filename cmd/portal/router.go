package main

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/papervault/portal/internal/catalog"
	appMiddleware "github.com/papervault/portal/internal/middleware"
	"github.com/papervault/portal/internal/response"
	"github.com/papervault/portal/internal/upload"
	"github.com/papervault/portal/internal/web"

	_ "github.com/papervault/portal/docs/swagger"
)

// readiness reports whether the catalog database can serve requests.
type readiness interface {
	Ready(ctx context.Context) error
}

type routerDeps struct {
	catalog *catalog.Handler
	upload  *upload.Handler
	web     *web.Handler
	// files serves stored objects for the fs driver; nil otherwise.
	files  http.Handler
	ready  readiness
	logger *log.Logger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(d.logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(appMiddleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := d.ready.Ready(r.Context()); err != nil {
			d.logger.Warn("health check failed", "err", err)
			response.Unavailable(w, "database unavailable")
			return
		}
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if d.files != nil {
		r.Handle("/files/*", http.StripPrefix("/files", d.files))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			response.NotFound(w, "not found")
		})
		d.catalog.Routes(r)
		r.Post("/papers", d.upload.Upload)
	})

	d.web.Routes(r)
	return r
}
