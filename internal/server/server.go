package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/archivo-digital/apiserver/config"
	"github.com/archivo-digital/apiserver/internal/db"
	"github.com/archivo-digital/apiserver/internal/handlers"
	"github.com/archivo-digital/apiserver/internal/mq"
	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/internal/storage"
	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

const defaultPort = 8000

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	queue      *mq.MQ
	logger     *slog.Logger
}

// New opens the database, content storage and optional broker, then wires the
// catalog services behind the router.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	content, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := content.EnsureBucket(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	queue, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init mq: %w", err)
	}
	var events services.EventPublisher
	if queue != nil {
		events = queue
	}

	categoryRepo := store.NewCategoryRepository(dbConn)
	subcategoryRepo := store.NewSubcategoryRepository(dbConn)
	folderRepo := store.NewFolderRepository(dbConn)
	fileRepo := store.NewFileRepository(dbConn)
	userRepo := store.NewUserRepository(dbConn)
	metricRepo := store.NewMetricRepository(dbConn)

	router := handlers.NewRouter(handlers.Services{
		Taxonomy: services.NewTaxonomyService(categoryRepo, subcategoryRepo, folderRepo, fileRepo),
		Files:    services.NewFileService(fileRepo, content, events, logger),
		Users:    services.NewUserService(userRepo),
		Search:   services.NewSearchService(fileRepo),
		Metrics:  services.NewMetricService(userRepo, fileRepo, metricRepo, events, logger),
		DB:       dbConn,
	}, handlers.UploadLimits{
		MaxFiles:  cfg.Upload.MaxFiles,
		MaxMemory: cfg.Upload.MaxMemory,
	}, logger)

	port := cfg.ServerPort
	if port == 0 {
		port = defaultPort
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server configured",
		"addr", httpServer.Addr,
		"storage", cfg.Storage.Backend,
		"bucket", content.Bucket(),
		"mq", cfg.MQ.Backend,
	)

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		queue:      queue,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the broker and the pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if s.queue != nil {
		if err := s.queue.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mq: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
