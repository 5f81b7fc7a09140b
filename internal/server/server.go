package server

import (
	"fmt"
	"net/http"
	"time"

	"artisan-api/internal/config"
	custommiddleware "artisan-api/internal/middleware"
	"artisan-api/internal/repository"
	"artisan-api/internal/storage"
	"artisan-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  redis.UniversalClient
}

// NewServer wires the storage tables, repositories, and handlers together
// explicitly. Everything is constructed once here and passed down; nothing
// is a package-level singleton.
func NewServer(cfg *config.Config, logger *zap.Logger, client redis.UniversalClient) *Server {
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.Origin, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	if cfg.RateLimit.Enabled {
		router.Use(custommiddleware.RateLimitMiddleware(client, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "rate_limit",
		}, logger))
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	contactRepo := repository.NewContactRepository(storage.NewTable(client, cfg.Tables.Contact))
	inventoryRepo := repository.NewInventoryRepository(storage.NewTable(client, cfg.Tables.Inventory))

	// Initialize handlers and register routes
	transport.NewContactHandler(contactRepo, logger).RegisterRoutes(router)
	transport.NewInventoryHandler(inventoryRepo, logger).RegisterRoutes(router)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		store:  client,
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close store connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
