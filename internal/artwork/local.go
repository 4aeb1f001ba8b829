package artwork

import (
	"context"
	"fmt"
	"sync"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/01moynul/artstudio-golang/internal/storage"
)

// Local keeps the whole catalog as one value under storage.ArtworksKey.
type Local struct {
	mu    sync.Mutex
	store storage.Adapter
}

func NewLocal(store storage.Adapter) *Local {
	return &Local{store: store}
}

func (l *Local) Init(context.Context) error { return nil }

func (l *Local) load(ctx context.Context) []models.ArtworkRecord {
	var records []models.ArtworkRecord
	if !storage.Load(ctx, l.store, storage.ArtworksKey, &records) {
		return []models.ArtworkRecord{}
	}
	return records
}

func (l *Local) GetAll(ctx context.Context) ([]models.ArtworkRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx), nil
}

func (l *Local) GetByID(ctx context.Context, id string) (*models.ArtworkRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.load(ctx) {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (l *Local) Save(ctx context.Context, record *models.ArtworkRecord) error {
	if err := prepare(record); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load(ctx)
	replaced := false
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = *record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, *record)
	}

	if err := storage.Save(ctx, l.store, storage.ArtworksKey, records); err != nil {
		return fmt.Errorf("save artwork %s: %w", record.ID, err)
	}
	return nil
}

func (l *Local) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load(ctx)
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return ErrNotFound
	}
	if err := storage.Save(ctx, l.store, storage.ArtworksKey, kept); err != nil {
		return fmt.Errorf("delete artwork %s: %w", id, err)
	}
	return nil
}

func (l *Local) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Remove(ctx, storage.ArtworksKey); err != nil {
		return fmt.Errorf("clear artworks: %w", err)
	}
	return nil
}

func (l *Local) Stats(ctx context.Context) (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return statsOf(l.load(ctx)), nil
}
