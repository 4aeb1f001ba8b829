// Package notify sends the best-effort contact-form alert through an external message relay.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/01moynul/artstudio-golang/internal/models"
	log "github.com/sirupsen/logrus"
)

var ErrNotConfigured = errors.New("notification relay is not configured")

// Config holds the relay settings. All three are required.
type Config struct {
	Endpoint string
	Phone    string
	APIKey   string
}

func (c Config) complete() bool {
	return c.Endpoint != "" && c.Phone != "" && c.APIKey != ""
}

// Doer is the HTTP transport. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is the outcome of one send attempt.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher makes at most one request per call and never retries.
type Dispatcher struct {
	cfg    Config
	client Doer
}

// New returns a dispatcher. A nil client means http.DefaultClient.
func New(cfg Config, client Doer) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Dispatcher{cfg: cfg, client: client}
}

// Configured reports whether sends can be attempted at all.
func (d *Dispatcher) Configured() bool {
	return d.cfg.complete()
}

// SendContactNotification formats form and sends it to the relay.
func (d *Dispatcher) SendContactNotification(ctx context.Context, form models.ContactForm) Result {
	if !d.cfg.complete() {
		log.Warn("Contact notification skipped: relay not configured")
		return Result{Error: ErrNotConfigured.Error()}
	}

	req, err := d.buildRequest(ctx, FormatContactMessage(form))
	if err != nil {
		log.WithError(err).Error("Contact notification request could not be built")
		return Result{Error: err.Error()}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Contact notification failed")
		return Result{Error: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Error("Contact notification rejected by relay")
		return Result{Error: fmt.Sprintf("relay responded with status %d", resp.StatusCode)}
	}

	log.WithField("email", form.Email).Info("Contact notification sent")
	return Result{Success: true}
}

// buildRequest produces GET <endpoint>?phone=..&text=..&apikey=..
func (d *Dispatcher) buildRequest(ctx context.Context, text string) (*http.Request, error) {
	u, err := url.Parse(d.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid relay endpoint: %w", err)
	}

	q := u.Query()
	q.Set("phone", d.cfg.Phone)
	q.Set("text", text)
	q.Set("apikey", d.cfg.APIKey)
	u.RawQuery = q.Encode()

	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}

// FormatContactMessage renders the alert text. Blank optional fields are left out.
func FormatContactMessage(form models.ContactForm) string {
	var b strings.Builder
	b.WriteString("New contact form submission\n")
	line := func(label, value string) {
		value = strings.TrimSpace(value)
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	line("Name", form.Name)
	line("Email", form.Email)
	line("Phone", form.Phone)
	line("Subject", form.Subject)
	line("Artwork", form.ArtworkID)
	line("Class", form.ClassID)
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(form.Message))
	return b.String()
}
