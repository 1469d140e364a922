// Package http provides HTTP server implementation and request handlers using Gin web framework.
// The server uses structured logging (slog) and graceful shutdown.
//
// This server uses Gin (github.com/gin-gonic/gin) for HTTP routing while maintaining
// compatibility with the application's existing patterns:
//   - Custom slog-based logging middleware (instead of Gin's default logger)
//   - Gin-compatible error handling utilities (httputil.HandleErrorGin)
//   - Manual http.Server configuration for timeout and graceful shutdown control
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	clientHTTP "github.com/allisson/signvault/internal/client/http"
	"github.com/allisson/signvault/internal/metrics"
	"github.com/allisson/signvault/internal/requestauth"
	userHTTP "github.com/allisson/signvault/internal/user/http"
)

// Server represents the HTTP server.
type Server struct {
	db       *sql.DB
	server   *http.Server
	logger   *slog.Logger
	router   *gin.Engine
	reqGroup singleflight.Group
}

// NewServer creates a new HTTP server.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
// This method is called during server initialization with all required dependencies.
//
// The admin handler serves operator-plane endpoints (client provisioning) and
// is deliberately NOT behind the request-authentication middleware: it sits
// on a separate trust boundary, reachable only by whoever controls the
// deployment, not by clients holding an api key/secret pair. The wallet
// handler serves the client-facing endpoints and is always behind
// requestauth.Middleware.
func (s *Server) SetupRouter(
	adminHandler *clientHTTP.AdminHandler,
	walletHandler *userHTTP.WalletHandler,
	authenticator *requestauth.Authenticator,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	// Create Gin engine without default middleware
	router := gin.New()

	// Apply custom middleware
	router.Use(gin.Recovery()) // Gin's panic recovery

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	}))) // Request ID with UUIDv7
	router.Use(CustomLoggerMiddleware(s.logger)) // Custom slog logger

	// Add HTTP metrics middleware if metrics are enabled
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	// Health and readiness endpoints (outside API versioning)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authMiddleware := requestauth.Middleware(authenticator, s.logger)

	// Admin plane: client provisioning, unauthenticated by requestauth.
	admin := router.Group("/admin")
	{
		admin.POST("/client", adminHandler.CreateClient)
		admin.GET("/client", adminHandler.GetClientByName)
	}

	// Wallet plane: signing identity lifecycle, requires HMAC request auth.
	wallet := router.Group("/wallet")
	wallet.Use(authMiddleware)
	{
		wallet.POST("/register", walletHandler.RegisterUser)
		wallet.POST("/:user_id/sign", walletHandler.SignMessage)
		wallet.DELETE("/:user_id/revoke", walletHandler.RevokeUser)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
// Returns nil if SetupRouter has not been called yet.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	// Router must be set up before starting
	if s.router == nil {
		return fmt.Errorf("router not initialized - call SetupRouter first")
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler returns a simple health check response.
func (s *Server) healthHandler(c *gin.Context) {
	v, _, _ := s.reqGroup.Do("health", func() (interface{}, error) {
		return gin.H{"status": "healthy"}, nil
	})
	c.JSON(http.StatusOK, v)
}

type readinessResponse struct {
	StatusCode int
	Body       gin.H
}

// readinessHandler returns a simple readiness check response.
func (s *Server) readinessHandler(c *gin.Context) {
	v, _, _ := s.reqGroup.Do("readiness", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dbStatus := "ok"
		httpStatus := http.StatusOK

		if s.db == nil {
			s.logger.Error("readiness check failed: database not initialized")
			dbStatus = "error"
			httpStatus = http.StatusServiceUnavailable
		} else if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness check failed: database ping error", slog.Any("err", err))
			dbStatus = "error"
			httpStatus = http.StatusServiceUnavailable
		}

		return readinessResponse{
			StatusCode: httpStatus,
			Body: gin.H{
				"status": map[int]string{
					http.StatusOK:                 "ready",
					http.StatusServiceUnavailable: "not_ready",
				}[httpStatus],
				"components": gin.H{
					"database": dbStatus,
				},
			},
		}, nil
	})

	res := v.(readinessResponse)
	c.JSON(res.StatusCode, res.Body)
}
