package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/artstudio-golang/internal/artwork"
	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//
// --- Contact Handlers ---
//

// PrefillContact is the handler for GET /v1/contact/prefill
// It turns page query parameters into a pre-filled contact form.
func (h *Handlers) PrefillContact(c *gin.Context) {
	form := models.ContactForm{
		Subject:   strings.TrimSpace(c.Query("subject")),
		Message:   c.Query("message"),
		ArtworkID: strings.TrimSpace(c.Query("artwork")),
		ClassID:   strings.TrimSpace(c.Query("class")),
	}

	// Logged-in visitors get their own details filled in.
	if user := h.authFor(c).Session(); user != nil {
		form.Name = strings.TrimSpace(user.FirstName + " " + user.LastName)
		form.Email = user.Email
		form.Phone = user.Phone
	}

	if form.ArtworkID != "" {
		record, err := h.Artworks.GetByID(c.Request.Context(), form.ArtworkID)
		switch {
		case err == nil:
			if form.Subject == "" {
				form.Subject = "Inquiry about " + record.Title
			}
			c.JSON(http.StatusOK, gin.H{"form": form, "artwork": record})
			return
		case errors.Is(err, artwork.ErrNotFound):
			// Unknown artwork references are kept as plain text.
		default:
			log.WithError(err).Warn("Artwork lookup for contact prefill failed")
		}
	}
	if form.Subject == "" && form.ClassID != "" {
		form.Subject = "Class inquiry: " + form.ClassID
	}

	c.JSON(http.StatusOK, gin.H{"form": form})
}

// SubmitContact is the handler for POST /v1/contact
// The submission succeeds even when the owner notification does not.
func (h *Handlers) SubmitContact(c *gin.Context) {
	// 1. --- Bind (JSON or form post) ---
	var form models.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in your name, a valid email and a message"})
		return
	}

	// 2. --- Notify the owner (one attempt) ---
	result := h.Notifier.SendContactNotification(c.Request.Context(), form)
	if !result.Success {
		log.WithFields(log.Fields{"email": form.Email, "reason": result.Error}).Warn("Contact notification not delivered")
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Thank you! We will get back to you soon.",
		"notified": result.Success,
	})
}
