package handlers

import (
	"context"
	"time"

	"github.com/01moynul/artstudio-golang/internal/ai"
	"github.com/01moynul/artstudio-golang/internal/artwork"
	"github.com/01moynul/artstudio-golang/internal/auth"
	"github.com/01moynul/artstudio-golang/internal/cart"
	"github.com/01moynul/artstudio-golang/internal/media"
	"github.com/01moynul/artstudio-golang/internal/notify"
)

// Handlers holds every dependency the HTTP handlers use.
type Handlers struct {
	Artworks  artwork.Store
	Carts     *cart.Registry
	Sessions  *auth.Registry
	Notifier  *notify.Dispatcher
	Uploads   *media.Uploader
	Describer ai.Describer

	// CheckoutLatency simulates a payment provider round trip.
	CheckoutLatency time.Duration
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
