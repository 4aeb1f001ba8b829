package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/artstudio-golang/internal/artwork"
	"github.com/01moynul/artstudio-golang/internal/cart"
	"github.com/01moynul/artstudio-golang/internal/middleware"
	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//
// --- Cart Handlers ---
//

func (h *Handlers) cartFor(c *gin.Context) *cart.Container {
	return h.Carts.For(c.Request.Context(), middleware.SessionID(c))
}

// dispatchCart applies action and writes the response.
func (h *Handlers) dispatchCart(c *gin.Context, status int, action cart.Action) {
	state, err := h.cartFor(c).Dispatch(c.Request.Context(), action)
	if err != nil {
		log.WithField("session", middleware.SessionID(c)).WithError(err).Error("Cart update not saved")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save your cart", "cart": state})
		return
	}
	c.JSON(status, gin.H{"cart": state})
}

// GetCart is the handler for GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart": h.cartFor(c).State()})
}

type AddToCartInput struct {
	ArtworkID string `json:"artworkId" binding:"required"`
}

// AddToCart is the handler for POST /v1/cart/items
// The line's display fields are taken from the catalog, never from the client.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	record, err := h.Artworks.GetByID(c.Request.Context(), input.ArtworkID)
	if err != nil {
		if errors.Is(err, artwork.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		log.WithError(err).Error("Artwork lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}

	h.dispatchCart(c, http.StatusCreated, cart.AddItem{Item: cart.ItemFromArtwork(record)})
}

type UpdateCartItemInput struct {
	Quantity *int `json:"quantity" binding:"required"` // 0 or less removes the line
}

// UpdateCartItem is the handler for PUT /v1/cart/items/:id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatchCart(c, http.StatusOK, cart.UpdateQuantity{ID: c.Param("id"), Quantity: *input.Quantity})
}

// DeleteCartItem is the handler for DELETE /v1/cart/items/:id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	h.dispatchCart(c, http.StatusOK, cart.RemoveItem{ID: c.Param("id")})
}

// ClearCart is the handler for DELETE /v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	h.dispatchCart(c, http.StatusOK, cart.Clear{})
}

// cartSnapshot is used by checkout.
func (h *Handlers) cartSnapshot(c *gin.Context) models.CartState {
	return h.cartFor(c).State()
}
