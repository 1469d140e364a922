// Package config provides application configuration management through
// nested, __-delimited environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DatabaseConfig holds connection settings for the relational database
// backend, shared by both the PostgreSQL and MySQL repository
// implementations.
type DatabaseConfig struct {
	// User is the database connection username.
	// Env: database__user
	User string `env:"user"`

	// DBName is the database name to connect to.
	// Env: database__dbname
	DBName string `env:"dbname"`

	// Port is the database server's TCP port.
	// Env: database__port
	Port int `env:"port" envDefault:"5432"`

	// Password is the database connection password, in the clear as read
	// from the environment. Callers that hold onto it (e.g. when building
	// a connection string) should immediately wrap it in a
	// secrecy.Redacted before storing it anywhere longer-lived than a
	// local variable.
	// Env: database__password
	Password string `env:"password"`

	// Host is the database server's hostname.
	// Env: database__host
	Host string `env:"host" envDefault:"localhost"`

	// SSLRootCert is an optional path to a CA certificate used to verify
	// the database server's TLS certificate.
	// Env: database__sslrootcert
	SSLRootCert string `env:"sslrootcert"`
}

// Config is the top-level application configuration, populated once at
// process startup from environment variables.
type Config struct {
	// LogLevel controls the minimum severity logged by slog. Carried under
	// its original field name even though the runtime is Go.
	// Env: rust_log
	LogLevel string `env:"rust_log" envDefault:"info"`

	// Port is the TCP port the HTTP server listens on.
	// Env: port
	Port uint16 `env:"port" envDefault:"8080"`

	// MetricsPort is the TCP port the standalone Prometheus metrics server
	// listens on.
	// Env: metrics_port
	MetricsPort uint16 `env:"metrics_port" envDefault:"9090"`

	// MasterKeyPath is the filesystem path to the master key file,
	// resolved into a loaded MasterKey during container construction.
	// Env: master_key
	MasterKeyPath string `env:"master_key"`

	// DBDriver selects which repository implementation the container wires
	// up: "postgres" or "mysql".
	// Env: db_driver
	DBDriver string `env:"db_driver" envDefault:"postgres"`

	// Database groups the relational database connection settings.
	Database DatabaseConfig `envPrefix:"database__"`
}

// DatabaseConnectionString builds the driver-specific DSN from the nested
// Database settings. The two supported drivers use incompatible DSN
// grammars (a URL for postgres, a driver-specific key=value-ish string for
// mysql), so this switches on DBDriver rather than exposing one field the
// caller has to format correctly.
func (c *Config) DatabaseConnectionString() string {
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?parseTime=true",
			c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.DBName,
		)
	default:
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.DBName,
		)
		if c.Database.SSLRootCert != "" {
			dsn = fmt.Sprintf(
				"postgres://%s:%s@%s:%d/%s?sslmode=verify-full&sslrootcert=%s",
				c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.DBName, c.Database.SSLRootCert,
			)
		}
		return dsn
	}
}

// Load loads configuration from environment variables. It first attempts
// to load a .env file by searching recursively from the current directory
// up to the root directory; if none is found, it continues with whatever
// is already in the process environment.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	return cfg, nil
}

// GetGinMode maps LogLevel to a gin mode string: "debug" only when LogLevel
// is itself "debug", "release" otherwise.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv searches for a .env file recursively from the current
// directory up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
