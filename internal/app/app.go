// Package app assembles the service from configuration: storage backend, paginator,
// use cases and the HTTP engine. Both binaries in cmd/ build on it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/maxviazov/pokedex-service/internal/config"
	"github.com/maxviazov/pokedex-service/internal/handler"
	"github.com/maxviazov/pokedex-service/internal/metrics"
	"github.com/maxviazov/pokedex-service/internal/migrate"
	"github.com/maxviazov/pokedex-service/internal/repository"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
	"github.com/maxviazov/pokedex-service/internal/repository/postgres"
	"github.com/maxviazov/pokedex-service/internal/repository/sqlite"
	"github.com/maxviazov/pokedex-service/internal/service"
)

// Store bundles the pieces of one storage backend.
type Store struct {
	Pokemons repository.PokemonRepository
	Tx       repository.TxManager
	Pinger   repository.Pinger
	// DB is a database/sql handle on the same database, used for migrations.
	DB     *sql.DB
	closer func()
}

func (s *Store) Close() {
	if s.closer != nil {
		s.closer()
	}
}

// OpenStore connects to the backend selected by cfg.Database.Driver.
func OpenStore(ctx context.Context, cfg *config.Config, pager *paginate.Paginator, logger zerolog.Logger) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return &Store{
			Pokemons: postgres.NewPokemonRepository(pool, pager),
			Tx:       postgres.NewTxManager(pool),
			Pinger:   postgres.NewPinger(pool),
			DB:       db,
			closer: func() {
				_ = db.Close()
				pool.Close()
			},
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Pokemons: sqlite.NewPokemonRepository(db, pager),
			Tx:       sqlite.NewTxManager(db),
			Pinger:   sqlite.NewPinger(db),
			DB:       db,
			closer:   func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// App is a fully wired service instance.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	Store   *Store
	Metrics *metrics.Metrics
	Service service.PokemonService
	Router  *gin.Engine
}

// Option customises New.
type Option func(*options)

type options struct {
	faults paginate.FaultInjector
}

// WithFaultInjector makes every listing consult f first.
func WithFaultInjector(f paginate.FaultInjector) Option {
	return func(o *options) { o.faults = f }
}

// New opens storage, applies migrations when configured and builds the HTTP engine.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := metrics.New()
	pagerOpts := []paginate.Option{paginate.WithLogger(logger), paginate.WithObserver(m)}
	if o.faults != nil {
		pagerOpts = append(pagerOpts, paginate.WithFaultInjector(o.faults))
	}
	pager := paginate.New(pagerOpts...)

	store, err := OpenStore(ctx, cfg, pager, logger)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: logger, Store: store, Metrics: m}

	if cfg.Database.AutoMigrate {
		mig, err := a.Migrator()
		if err != nil {
			store.Close()
			return nil, err
		}
		if err := mig.Up(ctx); err != nil {
			store.Close()
			return nil, err
		}
	}

	a.Service = service.NewPokemonService(store.Pokemons, store.Tx, cfg.Pagination, logger)
	if !cfg.App.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = handler.NewRouter(handler.RouterOptions{Logger: logger, Metrics: m, ExposeDetails: cfg.App.IsDev()})
	handler.Register(a.Router, store.Pinger, a.Service)
	return a, nil
}

// Migrator returns a goose runner bound to the app database.
func (a *App) Migrator() (*migrate.Migrator, error) {
	return migrate.New(a.Store.DB, a.cfg.Database.Driver, a.log)
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// for at most cfg.App.ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.App.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Str("driver", a.cfg.Database.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := a.cfg.App.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	a.log.Info().Dur("timeout", timeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() { a.Store.Close() }
