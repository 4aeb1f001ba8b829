package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/artstudio-golang/internal/artwork"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//
// --- Gallery Handlers (public) ---
//

// ListArtworks is the handler for GET /v1/artworks?sort=newest&category=ceramics
func (h *Handlers) ListArtworks(c *gin.Context) {
	records, err := h.Artworks.GetAll(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load artworks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}
	records = artwork.FilterCategory(records, c.Query("category"))

	order := artwork.ParseOrder(c.Query("sort"))
	artwork.Sort(records, order)

	c.JSON(http.StatusOK, gin.H{
		"artworks": records,
		"count":    len(records),
		"sort":     order,
	})
}

// GetArtwork is the handler for GET /v1/artworks/:id
func (h *Handlers) GetArtwork(c *gin.Context) {
	record, err := h.Artworks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, artwork.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		log.WithError(err).Error("Failed to load artwork")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artwork": record, "hasPreview": record.HasPreview()})
}

// GetCategories is the handler for GET /v1/categories
func (h *Handlers) GetCategories(c *gin.Context) {
	records, err := h.Artworks.GetAll(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load artworks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": artwork.Categories(records)})
}
