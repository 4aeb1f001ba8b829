package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/artstudio-golang/internal/media"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// UploadMedia handles POST /v1/admin/uploads
// It stores one image or video and returns a media reference to attach to an artwork.
func (h *Handlers) UploadMedia(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if h.Uploads.MaxBytes > 0 && file.Size > h.Uploads.MaxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": media.ErrTooLarge.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
		return
	}
	defer src.Close()

	// 2. Sniff, store and build the public URL
	ref, err := h.Uploads.Save(src)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUnsupportedKind):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		case errors.Is(err, media.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			log.WithField("filename", file.Filename).WithError(err).Error("Failed to save upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		}
		return
	}

	// 3. Return the reference
	c.JSON(http.StatusCreated, gin.H{"media": ref})
}
