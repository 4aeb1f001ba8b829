package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/01moynul/artstudio-golang/internal/storage"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrForbidden        = errors.New("not allowed to change role")
)

// Status is the auth state of a session.
type Status string

const (
	Anonymous      Status = "anonymous"
	Authenticating Status = "authenticating"
	Authenticated  Status = "authenticated"
	Failed         Status = "error"
)

// Container owns one session's login state.
type Container struct {
	mu      sync.Mutex
	dir     *Directory
	store   storage.Adapter
	key     string
	latency time.Duration

	status  Status
	session *models.UserSession
	err     error
}

// New hydrates a container from key. Unreadable session data is discarded.
func New(ctx context.Context, dir *Directory, store storage.Adapter, key string, latency time.Duration) *Container {
	c := &Container{dir: dir, store: store, key: key, latency: latency, status: Anonymous}

	var saved models.UserSession
	if storage.Load(ctx, store, key, &saved) && saved.ID != "" && saved.Email != "" && saved.Role.Valid() {
		c.session = &saved
		c.status = Authenticated
	}
	return c
}

// Status returns the current state.
func (c *Container) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Session returns a copy of the active session, or nil.
func (c *Container) Session() *models.UserSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Err returns the error that put the container in the error state.
func (c *Container) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Message renders err the way it is shown to visitors.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrDuplicateAccount):
		return "An account with this email already exists"
	case errors.Is(err, ErrPasswordTooLong):
		return "Password must be at most 72 bytes"
	case errors.Is(err, ErrNotAuthenticated):
		return "Please log in first"
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to change the account role"
	default:
		return "Something went wrong, please try again"
	}
}

// wait simulates backend latency.
func (c *Container) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(c.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Container) begin() {
	c.status = Authenticating
	c.err = nil
}

func (c *Container) fail(err error) error {
	c.status = Failed
	c.session = nil
	c.err = err
	return err
}

// succeed enters the authenticated state and writes the session through.
// A write failure is logged and returned; the login itself stands.
func (c *Container) succeed(ctx context.Context, s models.UserSession) error {
	c.status = Authenticated
	c.session = &s
	c.err = nil
	if err := storage.Save(ctx, c.store, c.key, s); err != nil {
		log.WithField("key", c.key).WithError(err).Error("Failed to persist session")
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Login checks email and password against the directory.
func (c *Container) Login(ctx context.Context, email, password string) (*models.UserSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.leaveSession(ctx); err != nil {
		return nil, err
	}
	c.begin()
	if err := c.wait(ctx); err != nil {
		return nil, c.fail(err)
	}

	s, err := c.dir.Authenticate(email, password)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.succeed(ctx, s); err != nil {
		return &s, err
	}
	return &s, nil
}

// Register creates a customer account and logs it in.
func (c *Container) Register(ctx context.Context, p models.Profile) (*models.UserSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.leaveSession(ctx); err != nil {
		return nil, err
	}
	c.begin()
	if err := c.wait(ctx); err != nil {
		return nil, c.fail(err)
	}

	s, err := c.dir.Register(p)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.succeed(ctx, s); err != nil {
		return &s, err
	}
	return &s, nil
}

// Logout returns to anonymous from any state and removes the stored session.
func (c *Container) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = Anonymous
	c.session = nil
	c.err = nil
	return c.removeStored(ctx)
}

// leaveSession removes the stored session before a new login or registration.
// When that fails the current state is kept so storage and memory agree.
func (c *Container) leaveSession(ctx context.Context) error {
	if c.status != Authenticated {
		return nil
	}
	return c.removeStored(ctx)
}

func (c *Container) removeStored(ctx context.Context) error {
	if err := c.store.Remove(ctx, c.key); err != nil {
		log.WithField("key", c.key).WithError(err).Error("Failed to remove stored session")
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// UpdateProfile merges u into the active session.
// Changing the role is only allowed for the owner address.
func (c *Container) UpdateProfile(ctx context.Context, u models.ProfileUpdate) (*models.UserSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != Authenticated || c.session == nil {
		return nil, ErrNotAuthenticated
	}

	next := *c.session
	if u.Role != nil && *u.Role != next.Role {
		if !u.Role.Valid() || !c.dir.IsOwner(next.Email) {
			return nil, ErrForbidden
		}
		next.Role = *u.Role
	}
	if u.FirstName != nil {
		next.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		next.LastName = *u.LastName
	}
	if u.Phone != nil {
		next.Phone = *u.Phone
	}

	if err := c.dir.Update(next); err != nil {
		log.WithField("user", next.ID).WithError(err).Warn("Profile not mirrored to directory")
	}
	if err := c.succeed(ctx, next); err != nil {
		return &next, err
	}
	return &next, nil
}
