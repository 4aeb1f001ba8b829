package artwork

import (
	"context"
	"database/sql"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// MySQL keeps the catalog in the artworks and artwork_media tables.
type MySQL struct {
	db *sqlx.DB
}

func NewMySQL(db *sqlx.DB) *MySQL {
	return &MySQL{db: db}
}

// Init checks that the schema is reachable. Schema changes belong to the migrate command.
func (m *MySQL) Init(ctx context.Context) error {
	var n int
	err := m.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM artworks")
	return errors.Wrap(err, "artworks table unavailable (run migrate)")
}

type mediaRow struct {
	ArtworkID string `db:"artwork_id"`
	models.MediaRef
}

func (m *MySQL) GetAll(ctx context.Context) ([]models.ArtworkRecord, error) {
	var records []models.ArtworkRecord
	err := m.db.SelectContext(ctx, &records, `
		SELECT id, title, price, description, category, size, medium, created_at
		FROM artworks
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "query artworks")
	}

	var media []mediaRow
	err = m.db.SelectContext(ctx, &media, `
		SELECT artwork_id, url, storage_key, kind, size_bytes
		FROM artwork_media
		ORDER BY artwork_id, position`)
	if err != nil {
		return nil, errors.Wrap(err, "query artwork media")
	}

	byID := make(map[string][]models.MediaRef, len(records))
	for _, row := range media {
		byID[row.ArtworkID] = append(byID[row.ArtworkID], row.MediaRef)
	}
	for i := range records {
		records[i].Media = byID[records[i].ID]
		if records[i].Media == nil {
			records[i].Media = []models.MediaRef{}
		}
	}
	if records == nil {
		records = []models.ArtworkRecord{}
	}
	return records, nil
}

func (m *MySQL) GetByID(ctx context.Context, id string) (*models.ArtworkRecord, error) {
	var r models.ArtworkRecord
	err := m.db.GetContext(ctx, &r, `
		SELECT id, title, price, description, category, size, medium, created_at
		FROM artworks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "query artwork")
	}

	r.Media = []models.MediaRef{}
	err = m.db.SelectContext(ctx, &r.Media, `
		SELECT url, storage_key, kind, size_bytes
		FROM artwork_media WHERE artwork_id = ?
		ORDER BY position`, id)
	if err != nil {
		return nil, errors.Wrap(err, "query artwork media")
	}
	return &r, nil
}

func (m *MySQL) Save(ctx context.Context, record *models.ArtworkRecord) error {
	if err := prepare(record); err != nil {
		return err
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO artworks (id, title, price, description, category, size, medium, created_at)
		VALUES (:id, :title, :price, :description, :category, :size, :medium, :created_at)
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			price = VALUES(price),
			description = VALUES(description),
			category = VALUES(category),
			size = VALUES(size),
			medium = VALUES(medium)`, record)
	if err != nil {
		return errors.Wrap(err, "upsert artwork")
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM artwork_media WHERE artwork_id = ?", record.ID); err != nil {
		return errors.Wrap(err, "reset artwork media")
	}
	for i, media := range record.Media {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO artwork_media (artwork_id, position, url, storage_key, kind, size_bytes)
			VALUES (?, ?, ?, ?, ?, ?)`,
			record.ID, i, media.URL, media.Key, media.Kind, media.Size)
		if err != nil {
			return errors.Wrap(err, "insert artwork media")
		}
	}

	return errors.Wrap(tx.Commit(), "commit artwork")
}

func (m *MySQL) Delete(ctx context.Context, id string) error {
	result, err := m.db.ExecContext(ctx, "DELETE FROM artworks WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "delete artwork")
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MySQL) Clear(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM artworks")
	return errors.Wrap(err, "clear artworks")
}

func (m *MySQL) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := m.db.GetContext(ctx, &s.Records, "SELECT COUNT(*) FROM artworks"); err != nil {
		return Stats{}, errors.Wrap(err, "count artworks")
	}

	var media struct {
		Count int   `db:"media_count"`
		Bytes int64 `db:"media_bytes"`
	}
	err := m.db.GetContext(ctx, &media, `
		SELECT COUNT(*) AS media_count, COALESCE(SUM(size_bytes), 0) AS media_bytes
		FROM artwork_media`)
	if err != nil {
		return Stats{}, errors.Wrap(err, "artwork media stats")
	}
	s.MediaCount = media.Count
	s.MediaBytes = media.Bytes
	return s, nil
}
