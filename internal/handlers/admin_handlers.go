package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/artstudio-golang/internal/artwork"
	"github.com/01moynul/artstudio-golang/internal/middleware"
	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//
// --- Admin Handlers ---
//

// ArtworkInput is the body for creating or replacing an artwork.
type ArtworkInput struct {
	Title       string            `json:"title" binding:"required"`
	Price       float64           `json:"price" binding:"gte=0"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Size        string            `json:"size"`
	Medium      string            `json:"medium"`
	Media       []models.MediaRef `json:"media"`
}

func (in ArtworkInput) record() (models.ArtworkRecord, error) {
	for _, m := range in.Media {
		if m.URL == "" || (m.Kind != models.MediaImage && m.Kind != models.MediaVideo) {
			return models.ArtworkRecord{}, errors.New("each media entry needs a url and kind image or video")
		}
	}
	return models.ArtworkRecord{
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		Size:        in.Size,
		Medium:      in.Medium,
		Media:       in.Media,
	}, nil
}

// saveFailure maps a store write error to a response.
func saveFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, artwork.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, artwork.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
	default:
		log.WithError(err).Error("Artwork store write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save artwork, storage may be full"})
	}
}

// CreateArtwork is the handler for POST /v1/admin/artworks
func (h *Handlers) CreateArtwork(c *gin.Context) {
	// 1. --- Bind ---
	var input ArtworkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	record, err := input.record()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Save (ID and createdAt are assigned by the store) ---
	if err := h.Artworks.Save(c.Request.Context(), &record); err != nil {
		saveFailure(c, err)
		return
	}

	log.WithFields(log.Fields{"id": record.ID, "user": currentUserID(c)}).Info("Artwork created")
	c.JSON(http.StatusCreated, gin.H{"message": "Artwork created", "artwork": record})
}

// UpdateArtwork is the handler for PUT /v1/admin/artworks/:id
func (h *Handlers) UpdateArtwork(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. --- Existing record ---
	existing, err := h.Artworks.GetByID(ctx, c.Param("id"))
	if err != nil {
		saveFailure(c, err)
		return
	}

	// 2. --- Bind ---
	var input ArtworkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	record, err := input.record()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	// 3. --- Upsert ---
	if err := h.Artworks.Save(ctx, &record); err != nil {
		saveFailure(c, err)
		return
	}
	h.removeOrphanedMedia(existing.Media, record.Media)

	c.JSON(http.StatusOK, gin.H{"message": "Artwork updated", "artwork": record})
}

// DeleteArtwork is the handler for DELETE /v1/admin/artworks/:id
func (h *Handlers) DeleteArtwork(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.Artworks.GetByID(ctx, id)
	if err != nil {
		saveFailure(c, err)
		return
	}
	if err := h.Artworks.Delete(ctx, id); err != nil {
		saveFailure(c, err)
		return
	}
	h.removeOrphanedMedia(existing.Media, nil)

	log.WithFields(log.Fields{"id": id, "user": currentUserID(c)}).Info("Artwork deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}

// ClearArtworks is the handler for DELETE /v1/admin/artworks
// Uploaded files are left on disk.
func (h *Handlers) ClearArtworks(c *gin.Context) {
	if err := h.Artworks.Clear(c.Request.Context()); err != nil {
		log.WithError(err).Error("Failed to clear artworks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear artworks"})
		return
	}
	log.WithField("user", currentUserID(c)).Warn("Artwork catalog cleared")
	c.JSON(http.StatusOK, gin.H{"message": "All artworks removed"})
}

// ArtworkStats is the handler for GET /v1/admin/artworks/stats
func (h *Handlers) ArtworkStats(c *gin.Context) {
	stats, err := h.Artworks.Stats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to compute artwork stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	Artworks             artwork.Stats     `json:"artworks"`
	Categories           []models.Category `json:"categories"`
	Accounts             int               `json:"accounts"`
	ActiveCarts          int               `json:"activeCarts"`
	NotificationsEnabled bool              `json:"notificationsEnabled"`
}

// GetDashboardStats is the handler for GET /v1/admin/dashboard
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	stats := DashboardStats{}

	// 1. Catalog
	var err error
	stats.Artworks, err = h.Artworks.Stats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	records, err := h.Artworks.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}
	stats.Categories = artwork.Categories(records)

	// 2. Visitors
	stats.Accounts = h.Sessions.Directory().Len()
	stats.ActiveCarts = h.Carts.Len()

	// 3. Integrations
	stats.NotificationsEnabled = h.Notifier.Configured()

	c.JSON(http.StatusOK, stats)
}

// removeOrphanedMedia deletes uploaded files that were in before but not in after.
func (h *Handlers) removeOrphanedMedia(before, after []models.MediaRef) {
	if h.Uploads == nil {
		return
	}
	keep := make(map[string]bool, len(after))
	for _, m := range after {
		keep[m.Key] = true
	}
	for _, m := range before {
		if m.Key == "" || keep[m.Key] {
			continue
		}
		if err := h.Uploads.Remove(m.Key); err != nil {
			log.WithField("key", m.Key).WithError(err).Warn("Failed to remove media file")
		}
	}
}

func currentUserID(c *gin.Context) string {
	if v, ok := c.Get(middleware.ContextUser); ok {
		if u, ok := v.(*models.UserSession); ok && u != nil {
			return u.ID
		}
	}
	return ""
}
