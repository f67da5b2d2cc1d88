package handlers

import (
	"log/slog"
	"time"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const requestTimeout = 60 * time.Second

// Services bundles everything the HTTP surface serves.
type Services struct {
	Taxonomy *services.TaxonomyService
	Files    *services.FileService
	Users    *services.UserService
	Search   *services.SearchService
	Metrics  *services.MetricService
	DB       Pinger
}

// NewRouter builds the catalog router with its middleware stack.
func NewRouter(svc Services, limits UploadLimits, logger *slog.Logger) *chi.Mux {
	requestLogger := middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	})

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger,
		middleware.Timeout(requestTimeout),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"PUT", "POST", "GET", "DELETE", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         1800,
		}),
	)

	RootRouter(router, svc.DB, logger)
	AuthRouter(router, svc.Users, logger)
	TaxonomyRouter(router, svc.Taxonomy, logger)
	FileRouter(router, svc.Files, svc.Taxonomy, limits, logger)
	SearchRouter(router, svc.Search, logger)
	MetricRouter(router, svc.Metrics, logger)

	return router
}
