package cmd

import (
	"context"
	"fmt"
	"time"

	"store-inventory/core/catalog"
	"store-inventory/core/config"
	"store-inventory/core/database"
	"store-inventory/core/ledger"
	"store-inventory/core/logger"
	"store-inventory/core/metrics"
	"store-inventory/core/reconcile"
	"store-inventory/core/requests"
	"store-inventory/core/server"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds what every command shares once configuration is loaded.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	journal *database.Journal
	metrics *metrics.Metrics
	engine  *reconcile.Engine
}

// loadBase reads the configuration and builds the logger.
func loadBase() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// bootstrap restores the stores from the configured backend and builds the engine.
// With the database backend every engine change is journaled until close.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, logg, err := loadBase()
	if err != nil {
		return nil, err
	}
	return build(ctx, cfg, logg)
}

// bootstrapPersistent is bootstrap for commands that read or publish the stored state.
// The memory backend only holds the seed catalog outside a running server, so it is refused.
func bootstrapPersistent(ctx context.Context, command string) (*runtime, error) {
	cfg, logg, err := loadBase()
	if err != nil {
		return nil, err
	}
	if err := requirePersistent(cfg.Server, command); err != nil {
		return nil, err
	}
	return build(ctx, cfg, logg)
}

func requirePersistent(cfg server.Config, command string) error {
	if !cfg.Persistent() {
		return fmt.Errorf("%s needs the %q backend, configured backend is %q", command, server.BackendDatabase, cfg.Backend)
	}
	return nil
}

func build(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*runtime, error) {
	rt := &runtime{cfg: cfg, logger: logg, metrics: metrics.New()}

	var (
		c *catalog.Catalog
		r *requests.Store
		l *ledger.Ledger
	)

	if cfg.Server.Persistent() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		if err := seedDatabase(ctx, db, cfg.Catalog.SeedFile, logg); err != nil {
			return nil, err
		}
		state, err := database.LoadState(ctx, db)
		if err != nil {
			return nil, err
		}
		if c, r, l, err = database.Restore(state); err != nil {
			return nil, err
		}
		rt.db = db
		rt.journal = database.NewJournal(db, logg)
		rt.journal.Start(ctx)
		logg.Info("Restored inventory state",
			zap.String("driver", cfg.Database.Driver),
			zap.Int("items", len(state.Items)),
			zap.Int("requests", len(state.Requests)),
			zap.Int("entries", len(state.Entries)),
		)
	} else {
		c, r, l = catalog.New(), requests.NewStore(), ledger.New()
		if cfg.Catalog.SeedFile != "" {
			items, err := catalog.LoadSeedFile(cfg.Catalog.SeedFile)
			if err != nil {
				return nil, err
			}
			if err := c.Seed(items); err != nil {
				return nil, err
			}
			logg.Info("Seeded in-memory catalog", zap.Int("items", len(items)))
		}
	}

	opts := []reconcile.Option{reconcile.WithMetrics(rt.metrics), reconcile.WithLogger(logg)}
	if rt.journal != nil {
		opts = append(opts, reconcile.WithJournal(rt.journal))
	}
	rt.engine = reconcile.NewEngine(c, r, l, opts...)
	return rt, nil
}

// seedDatabase inserts the seed file items whose ids are not stored yet.
func seedDatabase(ctx context.Context, db *gorm.DB, path string, logg *zap.Logger) error {
	if path == "" {
		return nil
	}
	items, err := catalog.LoadSeedFile(path)
	if err != nil {
		return err
	}
	inserted, err := database.SeedItems(ctx, db, items)
	if err != nil {
		return err
	}
	if inserted > 0 {
		logg.Info("Seeded catalog", zap.Int64("inserted", inserted), zap.String("file", path))
	}
	return nil
}

// close drains the journal and flushes the logger.
func (rt *runtime) close() {
	if rt.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := rt.journal.Close(ctx); err != nil {
			rt.logger.Error("Journal did not drain", zap.Error(err))
		}
		if failed := rt.journal.Failed(); failed > 0 {
			rt.logger.Warn("Journal writes failed during this run", zap.Int64("failed", failed))
		}
	}
	_ = rt.logger.Sync()
}
