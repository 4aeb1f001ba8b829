//go:build integration

package artwork

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/01moynul/artstudio-golang/internal/database"
	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: STUDIO_TEST_MYSQL_DSN=... go test -tags integration ./internal/artwork
func TestMySQLAgainstDatabase(t *testing.T) {
	dsn := os.Getenv("STUDIO_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("STUDIO_TEST_MYSQL_DSN is not set")
	}
	ctx := context.Background()

	db, err := database.OpenDB(dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db.DB))

	store, backend := New(BackendMySQL, nil, db)
	require.Equal(t, BackendMySQL, backend)
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Clear(ctx))

	rec := &models.ArtworkRecord{
		Title: "Harbour at Dusk", Price: 120.5, Medium: "oil",
		Media: []models.MediaRef{
			{URL: "/uploads/h.png", Key: "h.png", Kind: models.MediaImage, Size: 10},
			{URL: "/uploads/h.mp4", Key: "h.mp4", Kind: models.MediaVideo, Size: 20},
		},
	}
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Title, got.Title)
	assert.Equal(t, rec.Price, got.Price)
	assert.Equal(t, rec.Media, got.Media)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Millisecond)

	// Upsert replaces the media list.
	rec.Media = rec.Media[:1]
	require.NoError(t, store.Save(ctx, rec))
	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Records: 1, MediaCount: 1, MediaBytes: 10}, stats)

	// Deleting the artwork cascades to its media rows.
	require.NoError(t, store.Delete(ctx, rec.ID))
	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	_, err = store.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
