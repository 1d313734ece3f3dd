package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/maxviazov/pokedex-service/internal/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger"`
	Database   DatabaseConfig      `mapstructure:"database"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	SQLite     SQLiteConfig        `mapstructure:"sqlite"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address of the HTTP server.
func (a AppConfig) Addr() string { return fmt.Sprintf("%s:%d", a.Host, a.Port) }

// IsDev reports whether internal error details may be exposed to clients.
func (a AppConfig) IsDev() bool { return a.Env == "dev" }

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver      string `mapstructure:"driver"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	DBName            string `mapstructure:"db"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
}

// DSN builds a postgres:// URL; url.URL takes care of escaping credentials.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   p.DBName,
	}
	if p.User != "" || p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	q := u.Query()
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type SQLiteConfig struct {
	// Path is a file path or ":memory:".
	Path string `mapstructure:"path"`
}

type PaginationConfig struct {
	DefaultPageSize int64 `mapstructure:"default_page_size"`
	MaxPageSize     int64 `mapstructure:"max_page_size"`
}

func (c *Config) validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Postgres.User == "" {
			errs = append(errs, errors.New("postgres.user is required"))
		}
		if c.Postgres.Password == "" {
			errs = append(errs, errors.New("postgres.password is required"))
		}
		if c.Postgres.DBName == "" {
			errs = append(errs, errors.New("postgres.db is required"))
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("sqlite.path is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Pagination.DefaultPageSize < 1 {
		errs = append(errs, errors.New("pagination.default_page_size must be >= 1"))
	}
	if c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		errs = append(errs, errors.New("pagination.max_page_size must be >= default_page_size"))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port %d is out of range", c.App.Port))
	}
	return errors.Join(errs...)
}
