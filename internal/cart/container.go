package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/01moynul/artstudio-golang/internal/storage"
	log "github.com/sirupsen/logrus"
)

// ErrPersist wraps a failed write-through. The in-memory state has still advanced.
var ErrPersist = errors.New("cart could not be saved")

// Container owns one session's cart.
type Container struct {
	mu    sync.Mutex
	store storage.Adapter
	key   string
	state models.CartState
}

// New hydrates a container from key. A missing or malformed value yields an empty cart.
func New(ctx context.Context, store storage.Adapter, key string) *Container {
	c := &Container{store: store, key: key, state: Empty()}

	var saved models.CartState
	if storage.Load(ctx, store, key, &saved) {
		// Derived fields are never trusted from storage, and neither are invalid lines.
		valid := saved.Items[:0]
		for _, item := range saved.Items {
			if item.ID != "" && item.Quantity >= 1 {
				valid = append(valid, item)
			}
		}
		saved.Items = valid
		c.state = Reduce(saved, noop{})
	}
	return c
}

type noop struct{}

func (noop) isAction() {}

// State returns a copy of the current state.
func (c *Container) State() models.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dispatch applies action and writes the new state through.
func (c *Container) Dispatch(ctx context.Context, action Action) (models.CartState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Reduce(c.state, action)

	if err := storage.Save(ctx, c.store, c.key, c.state); err != nil {
		log.WithField("key", c.key).WithError(err).Error("Failed to persist cart")
		return c.state.Clone(), fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return c.state.Clone(), nil
}
