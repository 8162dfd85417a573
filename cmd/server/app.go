package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/traveljournal/internal/config"
	"github.com/traveljournal/internal/db"
	"github.com/traveljournal/internal/handler"
	"github.com/traveljournal/internal/logging"
	"github.com/traveljournal/internal/router"
	"github.com/traveljournal/internal/service"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 15 * time.Second

// App builds the command line application.
func App() *cli.App {
	return &cli.App{
		Name:  "traveljournal",
		Usage: "A server-rendered travel blog",
		Description: `Serves the travel journal: a listing of the most recent trips and one
page per trip, read from a sqlite file or a hosted postgres database.

Settings come from an optional TOML file (--config) and environment
variables, e.g. DATABASE_DRIVER=postgres DATABASE_URL=postgres://...`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a TOML configuration file",
				EnvVars: []string{"TRAVEL_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			rollbackCmd(),
		},
		Action: func(ctx *cli.Context) error {
			return serve(ctx)
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the travel journal",
		Action: serve,
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "Run database migrations",
		Description: "Creates the posts table on the configured postgres database.",
		Action: func(ctx *cli.Context) error {
			cfg, err := postgresConfig(ctx)
			if err != nil {
				return err
			}
			return db.Migrate(cfg.DatabaseURL)
		},
	}
}

func rollbackCmd() *cli.Command {
	return &cli.Command{
		Name:        "rollback",
		Usage:       "Rollback database migration",
		Description: "Rolls back the last postgres migration.",
		Action: func(ctx *cli.Context) error {
			cfg, err := postgresConfig(ctx)
			if err != nil {
				return err
			}
			return db.Rollback(cfg.DatabaseURL)
		},
	}
}

func loadConfig(ctx *cli.Context) (config.AppConfig, error) {
	cfg, err := config.LoadFile(ctx.String("config"))
	if err != nil {
		return config.AppConfig{}, err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, nil)
	if err := cfg.Validate(); err != nil {
		return config.AppConfig{}, err
	}
	return cfg, nil
}

func postgresConfig(ctx *cli.Context) (config.AppConfig, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cfg, err
	}
	if cfg.DatabaseDriver != config.DriverPostgres {
		return cfg, fmt.Errorf("migrations apply to the postgres driver, configured driver is %q", cfg.DatabaseDriver)
	}
	return cfg, nil
}

// openSource connects the configured data backend. The returned func releases it.
func openSource(ctx context.Context, cfg config.AppConfig) (service.PostSource, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return db.NewPgPostStore(pool), pool.Close, nil
	default:
		if err := db.Init(cfg.DatabasePath); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := db.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return db.NewGormPostStore(db.DB), closeFn, nil
	}
}

func serve(cliCtx *cli.Context) error {
	cfg, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	api := handler.NewAPI(service.NewPostService(source, cfg.ListingLimit), handler.Site{
		Name:        cfg.SiteName,
		Description: cfg.SiteDescription,
		BaseURL:     cfg.SiteBaseURL,
	}, loc)
	r := router.SetupRouter(api, router.Options{Revalidate: cfg.Revalidate})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":       cfg.ListenAddr,
			"driver":     cfg.DatabaseDriver,
			"revalidate": cfg.Revalidate,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Gracefully shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
