package main

import (
	"context"
	"fmt"

	"github.com/01moynul/artstudio-golang/internal/artwork"
	"github.com/01moynul/artstudio-golang/internal/config"
	"github.com/01moynul/artstudio-golang/internal/database"
	"github.com/01moynul/artstudio-golang/internal/storage"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// stack is the persistence shared by every command.
type stack struct {
	cfg      *config.Config
	adapter  storage.Adapter
	db       *sqlx.DB
	artworks artwork.Store
	closers  []func() error
}

func (s *stack) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.WithError(err).Warn("Close failed")
		}
	}
}

// openStack loads config and opens the persistence adapter and artwork store.
func openStack(ctx context.Context) (*stack, error) {
	// 0. --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.ConfigureLogging()
	s := &stack{cfg: cfg}

	// 1. --- Persistence Adapter ---
	adapter, closeAdapter, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}
	s.adapter = adapter
	s.closers = append(s.closers, closeAdapter)
	log.WithField("backend", cfg.StorageBackend).Info("Persistence adapter ready")

	// 2. --- Artwork Record Store (remote backend is optional) ---
	if cfg.ArtworkBackend == artwork.BackendMySQL {
		db, err := database.OpenDB(cfg.DatabaseDSN)
		if err != nil {
			log.WithError(err).Warn("Artwork database unavailable")
		} else {
			s.db = db
			s.closers = append(s.closers, db.Close)
		}
	}
	store, backend := artwork.New(cfg.ArtworkBackend, adapter, s.db)
	if err := store.Init(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("init %s artwork store: %w", backend, err)
	}
	s.artworks = store
	log.WithField("backend", backend).Info("Artwork store ready")

	return s, nil
}

func migrateSchema(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ConfigureLogging()

	db, err := database.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(db.DB)
}

func printStats(c *cli.Context) error {
	s, err := openStack(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.artworks.Stats(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "records: %d\nmedia entries: %d\nmedia bytes: %d\n",
		stats.Records, stats.MediaCount, stats.MediaBytes)
	return nil
}
