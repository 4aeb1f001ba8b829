package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/artstudio-golang/internal/ai"
	"github.com/01moynul/artstudio-golang/internal/auth"
	"github.com/01moynul/artstudio-golang/internal/cart"
	"github.com/01moynul/artstudio-golang/internal/handlers"
	"github.com/01moynul/artstudio-golang/internal/media"
	"github.com/01moynul/artstudio-golang/internal/notify"
	"github.com/01moynul/artstudio-golang/internal/routes"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serve(c *cli.Context) error {
	ctx := c.Context

	s, err := openStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	cfg := s.cfg

	// 3. --- Accounts and sessions ---
	dir, err := auth.NewDirectory(cfg.OwnerEmail, cfg.OwnerPassword)
	if err != nil {
		return err
	}
	sessions := auth.NewRegistry(dir, s.adapter, cfg.AuthLatency)
	carts := cart.NewRegistry(s.adapter)

	// 4. --- Optional integrations ---
	notifier := notify.New(notify.Config{
		Endpoint: cfg.NotifyEndpoint,
		Phone:    cfg.NotifyPhone,
		APIKey:   cfg.NotifyAPIKey,
	}, nil)
	if !notifier.Configured() {
		log.Warn("Notification relay is not configured, contact submissions will not alert the owner")
	}

	describer, closeAI, err := ai.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.WithError(err).Warn("Description drafting disabled")
		describer = ai.Disabled{}
	}
	defer closeAI()

	// --- Application Setup ---
	app := &handlers.Handlers{
		Artworks:        s.artworks,
		Carts:           carts,
		Sessions:        sessions,
		Notifier:        notifier,
		Uploads:         &media.Uploader{Dir: cfg.UploadDir, BaseURL: cfg.BaseURL, MaxBytes: cfg.MaxUploadBytes},
		Describer:       describer,
		CheckoutLatency: cfg.AuthLatency,
	}

	// --- Background Worker ---
	// Idle containers are dropped from memory; their state stays in storage.
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go evictIdle(workerCtx, cfg.SessionIdle, carts, sessions)

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Tokens:         auth.NewTokens(cfg.SessionSecret, cfg.SessionTTL),
		SessionTTL:     cfg.SessionTTL,
		SecureCookies:  cfg.SecureCookies(),
		UploadDir:      cfg.UploadDir,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.WithField("port", cfg.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	waitForKillSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func evictIdle(ctx context.Context, idle time.Duration, carts *cart.Registry, sessions *auth.Registry) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := carts.Evict(idle) + sessions.Evict(idle)
			if n > 0 {
				log.WithField("evicted", n).Debug("Dropped idle session containers")
			}
		}
	}
}

func waitForKillSignal() {
	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	switch <-killSignalChan {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
