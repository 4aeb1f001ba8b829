package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Checkout Handler ---
//

// Checkout is the handler for POST /v1/checkout
// Online payment is not available: after a simulated provider delay the
// visitor is sent to the contact form with the cart written into the message.
// The cart is left untouched.
func (h *Handlers) Checkout(c *gin.Context) {
	state := h.cartSnapshot(c)
	if len(state.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	if err := sleepCtx(c.Request.Context(), h.CheckoutLatency); err != nil {
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Checkout was cancelled"})
		return
	}

	subject := "Purchase inquiry"
	message := OrderSummary(state)
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("message", message)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Online payment is coming soon. Send us your order and we will arrange payment with you.",
		"redirect": "/contact?" + q.Encode(),
		"form":     models.ContactForm{Subject: subject, Message: message},
	})
}

// OrderSummary renders the cart as plain text for the contact message.
func OrderSummary(state models.CartState) string {
	var b strings.Builder
	b.WriteString("I would like to buy:\n")
	for _, item := range state.Items {
		details := []string{}
		for _, d := range []string{item.Medium, item.Size} {
			if d != "" {
				details = append(details, d)
			}
		}
		line := item.Title
		if len(details) > 0 {
			line += " (" + strings.Join(details, ", ") + ")"
		}
		fmt.Fprintf(&b, "- %s x%d: $%.2f\n", line, item.Quantity, item.LineTotal())
	}
	fmt.Fprintf(&b, "Total: $%.2f (%d items)", state.Total, state.ItemCount)
	return b.String()
}
