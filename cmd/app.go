package cmd

import (
	"context"
	"fmt"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/config"
	"achievement-tracker/core/database"
	"achievement-tracker/core/fetch"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/reconcile"
	"achievement-tracker/core/storage"
	"achievement-tracker/feature/export"
	"achievement-tracker/feature/localprogress"
	"achievement-tracker/feature/steam"
	"achievement-tracker/feature/titles"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the components shared by the server and the CLI commands.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	cache    *cache.Cache
	engine   *reconcile.Engine
	registry *localprogress.Registry
	library  *titles.Library
	repo     *titles.Repository
	sink     export.Sink
	db       *gorm.DB
}

// newApp loads the configuration and wires every component. Optional
// collaborators (database, object storage) degrade with a warning.
func newApp(ctx context.Context) (*app, error) {
	cfg, cfgErr := config.LoadConfig(".")

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfgErr != nil {
		l.Warn("Using default configuration", zap.Error(cfgErr))
	}

	c := cache.New(cfg.Cache, cache.WithLogger(l))

	fetcher := fetch.New(fetch.NewHTTPGetter(), c, cfg.SteamAPI.FetchConfig(cfg.Debug.ShowAPICalls), l)
	client := steam.NewClient(fetcher, cfg.SteamAPI, l)
	scraper := steam.NewScraper(fetcher, c, cfg.SteamAPI, l)
	names := steam.NewNameResolver(fetcher, c, cfg.SteamAPI, l)
	registry := localprogress.NewRegistry(c, l)

	engine := reconcile.NewEngine(cfg.Achievements, c, reconcile.Sources{
		Metadata:    client,
		Percentages: client,
		Catalog:     scraper,
		Local:       registry,
	}, reconcile.Options{
		DefaultAPIKey: cfg.SteamAPI.APIKey,
		Verbose:       cfg.Debug.VerboseMode,
		Logger:        l,
	})

	a := &app{cfg: cfg, log: l, cache: c, engine: engine, registry: registry}

	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed", zap.Error(err))
		} else {
			a.db = conn
			l.Info("Connected to title database", zap.String("driver", cfg.Database.Driver))
		}
	}
	a.repo = titles.NewRepository(a.db)
	if err := a.repo.Migrate(ctx); err != nil {
		l.Warn("Title table migration failed", zap.Error(err))
	}
	a.library = titles.NewLibrary(titles.NewDirScanner(cfg.Scanner, l), names, registry, a.repo, l)

	a.sink = export.NewFileSink(cfg.Paths.OutputDir)
	if cfg.Storage.Enabled {
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			l.Warn("Storage client unavailable, exporting to output directory", zap.Error(err))
		} else {
			a.sink = export.NewBucketSink(store, cfg.Storage.Bucket, cfg.Storage.Region)
		}
	}

	return a, nil
}

// close flushes the logger and releases the database.
func (a *app) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.log.Sync()
}
