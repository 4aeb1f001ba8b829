package storage

import (
	"context"
	"fmt"

	"github.com/01moynul/artstudio-golang/internal/config"
)

// Open builds the adapter selected by STORAGE_BACKEND.
// The returned close func is never nil.
func Open(ctx context.Context, cfg *config.Config) (Adapter, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case "", "memory":
		return NewMemory(), noop, nil
	case "sqlite":
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "dynamodb":
		d, err := OpenDynamo(ctx, cfg.AWSRegion, cfg.DynamoTable)
		if err != nil {
			return nil, noop, err
		}
		return d, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}
