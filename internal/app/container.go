// Package app provides the dependency injection container for assembling
// the custodial signing service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	clientHTTP "github.com/allisson/signvault/internal/client/http"
	clientRepository "github.com/allisson/signvault/internal/client/repository"
	clientUsecase "github.com/allisson/signvault/internal/client/usecase"
	"github.com/allisson/signvault/internal/config"
	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
	"github.com/allisson/signvault/internal/database"
	"github.com/allisson/signvault/internal/http"
	"github.com/allisson/signvault/internal/metrics"
	"github.com/allisson/signvault/internal/repository"
	"github.com/allisson/signvault/internal/requestauth"
	userHTTP "github.com/allisson/signvault/internal/user/http"
	userRepository "github.com/allisson/signvault/internal/user/repository"
	userUsecase "github.com/allisson/signvault/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to
// access them. It follows the lazy initialization pattern - components are
// created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger    *slog.Logger
	db        *sql.DB
	masterKey cryptodomain.MasterKey

	// Repositories
	clientRepo repository.ClientRepository
	userRepo   repository.UserRepository

	// Use cases
	clientUseCase clientUsecase.UseCase
	userUseCase   userUsecase.UseCase

	// Auth
	authenticator *requestauth.Authenticator

	// Metrics
	metricsProvider *metrics.Provider
	signingMetrics  metrics.SigningMetrics

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	masterKeyInit       sync.Once
	clientRepoInit      sync.Once
	userRepoInit        sync.Once
	clientUseCaseInit   sync.Once
	userUseCaseInit     sync.Once
	authenticatorInit   sync.Once
	metricsProviderInit sync.Once
	signingMetricsInit  sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance. It creates a new logger on
// first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection, connecting on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MasterKey returns the loaded master key, reading it from disk on first
// access.
func (c *Container) MasterKey() (cryptodomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = cryptodomain.LoadMasterKeyFromPath(c.config.MasterKeyPath)
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return cryptodomain.MasterKey{}, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return cryptodomain.MasterKey{}, storedErr
	}
	return c.masterKey, nil
}

// ClientRepository returns the client repository instance, selecting the
// PostgreSQL or MySQL implementation per config.DBDriver.
func (c *Container) ClientRepository() (repository.ClientRepository, error) {
	var err error
	c.clientRepoInit.Do(func() {
		c.clientRepo, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepo"]; exists {
		return nil, storedErr
	}
	return c.clientRepo, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (repository.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// ClientUseCase returns the admin-plane client use case.
func (c *Container) ClientUseCase() (clientUsecase.UseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

// UserUseCase returns the wallet-plane user use case.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// Authenticator returns the request-authentication collaborator used by
// requestauth.Middleware.
func (c *Container) Authenticator() (*requestauth.Authenticator, error) {
	var err error
	c.authenticatorInit.Do(func() {
		c.authenticator, err = c.initAuthenticator()
		if err != nil {
			c.initErrors["authenticator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authenticator"]; exists {
		return nil, storedErr
	}
	return c.authenticator, nil
}

// MetricsProvider returns the OpenTelemetry/Prometheus metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider("signvault")
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// SigningMetrics returns the domain-specific signing metrics recorder.
func (c *Container) SigningMetrics() (metrics.SigningMetrics, error) {
	var err error
	c.signingMetricsInit.Do(func() {
		c.signingMetrics, err = c.initSigningMetrics()
		if err != nil {
			c.initErrors["signingMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingMetrics"]; exists {
		return nil, storedErr
	}
	return c.signingMetrics, nil
}

// HTTPServer returns the main HTTP server, fully wired with the admin and
// wallet route groups.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the standalone /metrics HTTP server.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources. It should be
// called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DatabaseConnectionString(),
		MaxOpenConnections: 25,
		MaxIdleConnections: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initClientRepository() (repository.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return clientRepository.NewMySQLClientRepository(db), nil
	case "postgres":
		return clientRepository.NewPostgreSQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initUserRepository() (repository.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initClientUseCase() (clientUsecase.UseCase, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for client use case: %w", err)
	}

	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	signingMetrics, err := c.SigningMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing metrics for client use case: %w", err)
	}

	return clientUsecase.NewClientUseCase(masterKey, clientRepo, signingMetrics), nil
}

func (c *Container) initUserUseCase() (userUsecase.UseCase, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for user use case: %w", err)
	}

	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for user use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	signingMetrics, err := c.SigningMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing metrics for user use case: %w", err)
	}

	return userUsecase.NewUserUseCase(masterKey, clientRepo, userRepo, signingMetrics), nil
}

func (c *Container) initAuthenticator() (*requestauth.Authenticator, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for authenticator: %w", err)
	}

	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for authenticator: %w", err)
	}

	signingMetrics, err := c.SigningMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing metrics for authenticator: %w", err)
	}

	return requestauth.NewAuthenticator(masterKey, clientRepo, signingMetrics), nil
}

func (c *Container) initSigningMetrics() (metrics.SigningMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for signing metrics: %w", err)
	}

	return metrics.NewSigningMetrics(provider.MeterProvider(), "signvault")
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	clientUC, err := c.ClientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for http server: %w", err)
	}

	userUC, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	authenticator, err := c.Authenticator()
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticator for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	adminHandler := clientHTTP.NewAdminHandler(clientUC, logger)
	walletHandler := userHTTP.NewWalletHandler(userUC, logger)

	server := http.NewServer(db, "0.0.0.0", int(c.config.Port), logger)
	server.SetupRouter(adminHandler, walletHandler, authenticator, metricsProvider, "signvault")

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	logger := c.Logger()

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer("0.0.0.0", int(c.config.MetricsPort), logger, metricsProvider), nil
}
