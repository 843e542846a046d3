package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"store-inventory/core/cache"
	"store-inventory/core/loader"
	"store-inventory/core/logger"
	"store-inventory/core/middleware/auth"
	"store-inventory/core/middleware/idempotency"
	"store-inventory/core/middleware/rayid"
	"store-inventory/core/storage"

	"store-inventory/feature/history"
	"store-inventory/feature/integrity"
	"store-inventory/feature/inventory"
	"store-inventory/feature/snapshot"
	"store-inventory/feature/withdrawal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "store-inventory/docs/swagger"
)

// @title Store Inventory API
// @version 1.0
// @description API for store-room stock, withdrawal requests and the stock ledger.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory server",
	Long:  `Restores the inventory state, starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 1. Configuration, logger and engine
		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		zap.ReplaceGlobals(rt.logger)
		logg := rt.logger.With(zap.String("backend", rt.cfg.Server.Backend))

		// 2. Storage (optional, enables snapshots)
		var store storage.Client
		if client, err := storage.NewClient(rt.cfg.Storage); err != nil {
			logg.Warn("Object storage unavailable, snapshots disabled", zap.Error(err))
		} else {
			store = client
		}

		// 3. Idempotency keys (Redis when enabled, process memory otherwise)
		keys := idempotencyStore(ctx, rt, logg)

		// 4. Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(inventory.NewFeature(rt.engine, logg))
		mgr.Register(withdrawal.NewFeature(rt.engine, logg, idempotency.New(keys, logg)))
		mgr.Register(history.NewFeature(rt.engine, logg))
		mgr.Register(snapshot.NewFeature(rt.engine, store, snapshot.Options{
			Bucket:    rt.cfg.Storage.Bucket,
			Region:    rt.cfg.Storage.Region,
			Prefix:    rt.cfg.Storage.SnapshotPrefix,
			Retention: rt.cfg.Storage.SnapshotRetention,
		}, logg))

		checks := integrity.Options{
			DB:     rt.db,
			Client: store,
			Bucket: rt.cfg.Storage.Bucket,
			Region: rt.cfg.Storage.Region,
			Prefix: rt.cfg.Storage.SnapshotPrefix,
		}
		if rt.journal != nil {
			checks.Journal = rt.journal
		}
		mgr.Register(integrity.NewFeature(rt.engine, checks, logg))

		// Middleware Registration
		// 1. RayID (first, so every log line can be traced)
		app.Use(rayid.New())

		// 2. Request logging
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

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(rt.metrics.Handler()))

		// 4. Auth (protects everything registered below)
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		// 5. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			errCh <- app.Listen(":" + rt.cfg.Server.Port)
		}()

		// 8. Graceful Shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func idempotencyStore(ctx context.Context, rt *runtime, logg *zap.Logger) cache.IdempotencyStore {
	ttl := time.Duration(rt.cfg.Cache.IdempotencyTTLSeconds) * time.Second
	if rt.cfg.Cache.Enabled {
		client, err := cache.NewClient(ctx, rt.cfg.Cache)
		if err == nil {
			logg.Info("Using Redis for idempotency keys", zap.String("addr", rt.cfg.Cache.Addr))
			return cache.NewRedisIdempotency(client, ttl)
		}
		logg.Warn("Redis unavailable, keeping idempotency keys in memory", zap.Error(err))
	}
	return cache.NewMemoryIdempotency(ttl)
}

func init() {
	RootCmd.AddCommand(startCmd)
}
