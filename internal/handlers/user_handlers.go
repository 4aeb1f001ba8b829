package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/01moynul/artstudio-golang/internal/auth"
	"github.com/01moynul/artstudio-golang/internal/middleware"
	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//
// --- Account Handlers ---
//

func (h *Handlers) authFor(c *gin.Context) *auth.Container {
	return h.Sessions.For(c.Request.Context(), middleware.SessionID(c))
}

// authFailure writes the response for a failed auth operation.
func authFailure(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrPasswordTooLong):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrDuplicateAccount):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	default:
		log.WithError(err).Error("Account operation failed")
	}
	c.JSON(status, gin.H{"error": auth.Message(err)})
}

func accountResponse(container *auth.Container) gin.H {
	return gin.H{"status": container.Status(), "user": container.Session()}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	container := h.authFor(c)
	user, err := container.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if user != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logged in, but your session could not be saved"})
			return
		}
		authFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, accountResponse(container))
}

// Register is the handler for POST /v1/auth/register
// Self-service accounts are always customers.
func (h *Handlers) Register(c *gin.Context) {
	var input models.Profile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	container := h.authFor(c)
	user, err := container.Register(c.Request.Context(), input)
	if err != nil {
		if user != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Account created, but your session could not be saved"})
			return
		}
		authFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountResponse(container))
}

// Logout is the handler for POST /v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	container := h.authFor(c)
	if err := container.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logged out, but the saved session could not be removed"})
		return
	}
	c.JSON(http.StatusOK, accountResponse(container))
}

// GetAccount is the handler for GET /v1/account
func (h *Handlers) GetAccount(c *gin.Context) {
	c.JSON(http.StatusOK, accountResponse(h.authFor(c)))
}

// UpdateAccount is the handler for PATCH /v1/account
func (h *Handlers) UpdateAccount(c *gin.Context) {
	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	container := h.authFor(c)
	user, err := container.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		if user != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile updated, but your session could not be saved"})
			return
		}
		authFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, accountResponse(container))
}
