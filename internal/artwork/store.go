// Package artwork is the catalog record store.
//
// Two strategies implement Store: Local keeps the whole collection in the storage
// adapter, MySQL keeps rows in a database. New picks one from configuration.
package artwork

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/01moynul/artstudio-golang/internal/storage"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("artwork not found")
	ErrInvalid      = errors.New("artwork is invalid")
	ErrNotAvailable = errors.New("remote artwork backend is not configured")
)

// Store is the catalog CRUD contract. Every method may block on I/O.
type Store interface {
	Init(ctx context.Context) error
	GetAll(ctx context.Context) ([]models.ArtworkRecord, error)
	GetByID(ctx context.Context, id string) (*models.ArtworkRecord, error)
	// Save inserts or replaces by id. It assigns an id and creation time when missing.
	Save(ctx context.Context, record *models.ArtworkRecord) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
}

// Stats summarises the catalog.
type Stats struct {
	Records    int   `json:"records" db:"records"`
	MediaCount int   `json:"mediaCount" db:"media_count"`
	MediaBytes int64 `json:"mediaBytes" db:"media_bytes"`
}

// Backend names accepted by New.
const (
	BackendLocal = "local"
	BackendMySQL = "mysql"
)

// New returns the store for backend. A mysql backend without a database handle
// is reported and served by the local store instead.
func New(backend string, adapter storage.Adapter, db *sqlx.DB) (Store, string) {
	if backend == BackendMySQL {
		if db != nil {
			return NewMySQL(db), BackendMySQL
		}
		log.WithError(ErrNotAvailable).Warn("Falling back to local artwork store")
	}
	return NewLocal(adapter), BackendLocal
}

// prepare validates r and fills id and creation time.
func prepare(r *models.ArtworkRecord) error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" || r.Price < 0 {
		return ErrInvalid
	}
	if r.ID == "" {
		r.ID = NewID(r.Title)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Media == nil {
		r.Media = []models.MediaRef{}
	}
	return nil
}

// NewID builds a readable unique id such as "harbour-at-dusk-1a2b3c4d".
func NewID(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	base := slug.Make(title)
	if base == "" {
		return suffix
	}
	if len(base) > 100 {
		base = strings.Trim(base[:100], "-")
	}
	return base + "-" + suffix
}

func statsOf(records []models.ArtworkRecord) Stats {
	s := Stats{Records: len(records)}
	for _, r := range records {
		s.MediaCount += len(r.Media)
		for _, m := range r.Media {
			s.MediaBytes += m.Size
		}
	}
	return s
}
