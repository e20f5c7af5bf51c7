package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"podpricer/internal/config"
	"podpricer/internal/notify"
	"podpricer/internal/pricing"
	"podpricer/internal/storage"
	"podpricer/pkg/api"
	"podpricer/pkg/redis"
)

// Server wires the pricing engine to the HTTP API, persistence, memo cache
// and notifications.
type Server struct {
	engine   *pricing.Engine
	storage  *storage.PostgresStorage
	cache    *redis.Client
	catalog  *api.Client
	notifier *notify.Notifier
	cfg      *config.Config
	logger   *zap.Logger
}

func New(
	engine *pricing.Engine,
	store *storage.PostgresStorage,
	cache *redis.Client,
	catalog *api.Client,
	notifier *notify.Notifier,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:   engine,
		storage:  store,
		cache:    cache,
		catalog:  catalog,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.HTTP.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = s.cfg.HTTP.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/quotes", s.rateLimitQuotes(), s.handleCreateQuote)
		v1.GET("/quotes/stats", s.handleQuoteStats)
		v1.GET("/quotes/:id", s.handleGetQuote)
		v1.GET("/pricing/table", s.handlePricingTable)
		v1.POST("/designs", s.handleSaveDesign)
		v1.GET("/designs/:id", s.handleGetDesign)
		v1.GET("/designs/:id/quotes", s.handleListDesignQuotes)
	}

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: s.cfg.HTTP.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server...")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
