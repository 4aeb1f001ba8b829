package artwork

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockMySQL(t *testing.T) (*MySQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMySQL(sqlx.NewDb(db, "mysql")), mock
}

var artworkColumns = []string{"id", "title", "price", "description", "category", "size", "medium", "created_at"}

func q(sql string) string { return regexp.QuoteMeta(sql) }

func TestMySQLInit(t *testing.T) {
	ctx := context.Background()
	m, mock := newMockMySQL(t)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM artworks")).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	assert.NoError(t, m.Init(ctx))

	mock.ExpectQuery(q("SELECT COUNT(*) FROM artworks")).
		WillReturnError(errors.New("Table 'studio.artworks' doesn't exist"))
	assert.Error(t, m.Init(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLGetAllJoinsMedia(t *testing.T) {
	ctx := context.Background()
	m, mock := newMockMySQL(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("FROM artworks")).WillReturnRows(sqlmock.NewRows(artworkColumns).
		AddRow("harbour", "Harbour", 120.0, "", "Paintings", "40x50", "oil", created).
		AddRow("bowl", "Blue Bowl", 40.0, "", "Ceramics", "", "", created.Add(time.Hour)))
	mock.ExpectQuery(q("FROM artwork_media")).WillReturnRows(
		sqlmock.NewRows([]string{"artwork_id", "url", "storage_key", "kind", "size_bytes"}).
			AddRow("harbour", "/uploads/h.png", "h.png", "image", int64(10)).
			AddRow("harbour", "/uploads/h.mp4", "h.mp4", "video", int64(20)))

	records, err := m.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Harbour", records[0].Title)
	assert.Equal(t, 120.0, records[0].Price)
	assert.True(t, created.Equal(records[0].CreatedAt))
	assert.Equal(t, []models.MediaRef{
		{URL: "/uploads/h.png", Key: "h.png", Kind: models.MediaImage, Size: 10},
		{URL: "/uploads/h.mp4", Key: "h.mp4", Kind: models.MediaVideo, Size: 20},
	}, records[0].Media)

	assert.NotNil(t, records[1].Media)
	assert.Empty(t, records[1].Media)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLGetByID(t *testing.T) {
	ctx := context.Background()
	m, mock := newMockMySQL(t)

	mock.ExpectQuery(q("FROM artworks WHERE id = ?")).WithArgs("harbour").
		WillReturnRows(sqlmock.NewRows(artworkColumns).
			AddRow("harbour", "Harbour", 120.0, "", "", "", "oil", time.Now()))
	mock.ExpectQuery(q("FROM artwork_media WHERE artwork_id = ?")).WithArgs("harbour").
		WillReturnRows(sqlmock.NewRows([]string{"url", "storage_key", "kind", "size_bytes"}).
			AddRow("/uploads/h.png", "h.png", "image", int64(10)))

	got, err := m.GetByID(ctx, "harbour")
	require.NoError(t, err)
	assert.Equal(t, "oil", got.Medium)
	require.Len(t, got.Media, 1)
	assert.Equal(t, "/uploads/h.png", got.PreviewImage())

	mock.ExpectQuery(q("FROM artworks WHERE id = ?")).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(artworkColumns))
	_, err = m.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSaveReplacesMediaInOneTransaction(t *testing.T) {
	ctx := context.Background()
	m, mock := newMockMySQL(t)

	rec := &models.ArtworkRecord{
		Title: "Harbour", Price: 120,
		Media: []models.MediaRef{
			{URL: "/uploads/h.png", Key: "h.png", Kind: models.MediaImage, Size: 10},
			{URL: "/uploads/h.mp4", Key: "h.mp4", Kind: models.MediaVideo, Size: 20},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO artworks")).
		WithArgs(sqlmock.AnyArg(), "Harbour", 120.0, "", "", "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM artwork_media WHERE artwork_id = ?")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("INSERT INTO artwork_media")).
		WithArgs(sqlmock.AnyArg(), 0, "/uploads/h.png", "h.png", "image", int64(10)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(q("INSERT INTO artwork_media")).
		WithArgs(sqlmock.AnyArg(), 1, "/uploads/h.mp4", "h.mp4", "video", int64(20)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, m.Save(ctx, rec))
	assert.Regexp(t, `^harbour-[0-9a-f]{8}$`, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSaveRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	m, mock := newMockMySQL(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO artworks")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := m.Save(ctx, &models.ArtworkRecord{Title: "Harbour", Price: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)

	// Invalid records never reach the database.
	assert.ErrorIs(t, m.Save(ctx, &models.ArtworkRecord{Title: " ", Price: 1}), ErrInvalid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLDelete(t *testing.T) {
	ctx := context.Background()
	m, mock := newMockMySQL(t)

	// Media rows go with the artwork through the foreign key cascade.
	mock.ExpectExec(q("DELETE FROM artworks WHERE id = ?")).WithArgs("harbour").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, m.Delete(ctx, "harbour"))

	mock.ExpectExec(q("DELETE FROM artworks WHERE id = ?")).WithArgs("harbour").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, m.Delete(ctx, "harbour"), ErrNotFound)

	mock.ExpectExec(q("DELETE FROM artworks")).WillReturnResult(sqlmock.NewResult(0, 3))
	assert.NoError(t, m.Clear(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStats(t *testing.T) {
	ctx := context.Background()
	m, mock := newMockMySQL(t)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM artworks")).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
	mock.ExpectQuery(q("FROM artwork_media")).
		WillReturnRows(sqlmock.NewRows([]string{"media_count", "media_bytes"}).AddRow(3, int64(60)))

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Records: 2, MediaCount: 3, MediaBytes: 60}, stats)

	assert.NoError(t, mock.ExpectationsWereMet())
}
