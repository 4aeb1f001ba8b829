package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/artstudio-golang/internal/ai"
	"github.com/01moynul/artstudio-golang/internal/artwork"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DescribeArtwork drafts a catalog description for an artwork.
// The draft is returned only; the admin decides whether to save it.
func (h *Handlers) DescribeArtwork(c *gin.Context) {
	// 1. Load the record
	record, err := h.Artworks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, artwork.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}

	// 2. Ask the model
	text, err := h.Describer.Describe(c.Request.Context(), record)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI descriptions are not configured"})
			return
		}
		log.WithField("id", record.ID).WithError(err).Error("Description generation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": text})
}
