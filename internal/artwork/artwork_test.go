package artwork

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/01moynul/artstudio-golang/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(title string, price float64) *models.ArtworkRecord {
	return &models.ArtworkRecord{Title: title, Price: price, Medium: "oil on canvas"}
}

func TestLocalSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(storage.NewMemory())
	require.NoError(t, s.Init(ctx))

	r := record("Harbour at Dusk", 100)
	r.Media = []models.MediaRef{{URL: "http://x/uploads/a.png", Key: "a.png", Kind: models.MediaImage, Size: 2048}}
	require.NoError(t, s.Save(ctx, r))

	assert.True(t, strings.HasPrefix(r.ID, "harbour-at-dusk-"))
	assert.False(t, r.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, r.Title, got.Title)
	assert.Equal(t, r.Price, got.Price)
	assert.Equal(t, r.Media, got.Media)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
}

func TestLocalUpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(storage.NewMemory())

	a, b := record("A", 10), record("B", 20)
	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, s.Save(ctx, b))

	a.Price = 15
	require.NoError(t, s.Save(ctx, a))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, 15.0, all[0].Price)
}

func TestLocalDelete(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(storage.NewMemory())
	r := record("Blue Bowl", 50)
	require.NoError(t, s.Save(ctx, r))

	require.NoError(t, s.Delete(ctx, r.ID))
	_, err := s.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, r.ID), ErrNotFound)
}

func TestLocalClearAndStats(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(storage.NewMemory())

	withMedia := record("Study", 80)
	withMedia.Media = []models.MediaRef{
		{Key: "a.png", Kind: models.MediaImage, Size: 100},
		{Key: "b.mp4", Kind: models.MediaVideo, Size: 900},
	}
	require.NoError(t, s.Save(ctx, withMedia))
	require.NoError(t, s.Save(ctx, record("Sketch", 0)))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Records: 2, MediaCount: 2, MediaBytes: 1000}, st)

	require.NoError(t, s.Clear(ctx))
	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(storage.NewMemory())
	assert.ErrorIs(t, s.Save(ctx, record("  ", 10)), ErrInvalid)
	assert.ErrorIs(t, s.Save(ctx, record("Neg", -1)), ErrInvalid)
}

type quotaStore struct{ *storage.Memory }

func (quotaStore) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func TestSaveReportsStorageFailure(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(quotaStore{storage.NewMemory()})
	err := s.Save(ctx, record("Too Big", 10))
	require.Error(t, err)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNewSelectsBackend(t *testing.T) {
	adapter := storage.NewMemory()

	s, backend := New(BackendLocal, adapter, nil)
	assert.Equal(t, BackendLocal, backend)
	assert.IsType(t, &Local{}, s)

	s, backend = New(BackendMySQL, adapter, nil)
	assert.Equal(t, BackendLocal, backend)
	assert.IsType(t, &Local{}, s)
}

func TestNewID(t *testing.T) {
	id := NewID("Café au Lait!")
	assert.True(t, strings.HasPrefix(id, "cafe-au-lait-"), id)
	assert.NotEqual(t, id, NewID("Café au Lait!"))
	assert.Len(t, NewID("!!!"), 8)
}

func TestSort(t *testing.T) {
	now := time.Now()
	records := []models.ArtworkRecord{
		{ID: "mid", Title: "beta", Price: 50, CreatedAt: now.Add(-time.Hour)},
		{ID: "old", Title: "Alpha", Price: 200, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "new", Title: "gamma", Price: 10, CreatedAt: now},
	}
	ids := func() []string {
		out := make([]string, len(records))
		for i, r := range records {
			out[i] = r.ID
		}
		return out
	}

	Sort(records, PriceAsc)
	assert.Equal(t, []string{"new", "mid", "old"}, ids())
	Sort(records, PriceDesc)
	assert.Equal(t, []string{"old", "mid", "new"}, ids())
	Sort(records, Oldest)
	assert.Equal(t, []string{"old", "mid", "new"}, ids())
	Sort(records, Newest)
	assert.Equal(t, []string{"new", "mid", "old"}, ids())
	Sort(records, ByTitle)
	assert.Equal(t, []string{"old", "mid", "new"}, ids())

	assert.Equal(t, Newest, ParseOrder(""))
	assert.Equal(t, PriceAsc, ParseOrder("PRICE_ASC"))
	assert.Equal(t, Newest, ParseOrder("bogus"))
}

func TestCategories(t *testing.T) {
	records := []models.ArtworkRecord{
		{Title: "A", Category: "Ceramics"},
		{Title: "B", Category: "Oil Paintings"},
		{Title: "C", Category: "ceramics"},
		{Title: "D"},
	}

	cats := Categories(records)
	require.Len(t, cats, 2)
	assert.Equal(t, "ceramics", cats[0].Slug)
	assert.Equal(t, 2, cats[0].Count)
	assert.Equal(t, "oil-paintings", cats[1].Slug)

	assert.Len(t, FilterCategory(records, "ceramics"), 2)
	assert.Len(t, FilterCategory(records, "Oil Paintings"), 1)
	assert.Len(t, FilterCategory(records, ""), 4)
	assert.Empty(t, FilterCategory(records, "sculpture"))
}
