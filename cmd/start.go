package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"achievement-tracker/core/loader"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/middleware/auth"
	"achievement-tracker/core/middleware/rayid"
	"achievement-tracker/feature/achievements"
	"achievement-tracker/feature/export"
	"achievement-tracker/feature/localprogress"
	"achievement-tracker/feature/system"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "achievement-tracker/docs/swagger"
)

// @title Achievement Tracker API
// @version 1.0
// @description API for browsing merged game achievement catalogs.
// @host localhost:5000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the achievement tracker server",
	Long:  `Starts the HTTP server, watches local progress files and serves every feature.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 1. Wire components
		a, err := newApp(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.close()
		logg := a.log
		zap.ReplaceGlobals(logg)

		if a.cfg.Cache.CleanupOnStart {
			a.cache.CleanupExpired()
		}

		// 2. Drop cached catalogs when a progress file changes, including
		// files registered by later library refreshes
		if watcher, err := localprogress.NewWatcher(a.engine.Invalidate, logg); err != nil {
			logg.Warn("Progress watcher unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
			watcher.Follow(a.registry)
			go watcher.Run(ctx)
		}

		// 3. Initial scan registers local progress files
		if _, err := a.library.Refresh(ctx); err != nil {
			logg.Warn("Initial title scan failed", zap.Error(err))
		}
		logg.Info("Progress files registered", zap.Int("files", len(a.registry.Paths())))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(achievements.NewFeature(a.engine, a.registry, a.library, a.cfg.Achievements.ShowHidden, logg))
		mgr.Register(system.NewFeature(a.cache, logg))
		mgr.Register(export.NewFeature(a.engine, a.sink, logg))

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: a.cfg.Server.ApiKey,
			Skip: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/swagger")
			},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("address", a.cfg.Server.Address()),
				zap.Bool("auth", a.cfg.Server.AuthEnabled()),
				zap.String("strategy", string(a.engine.Strategy(""))))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
