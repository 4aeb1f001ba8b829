// Package storage is the key-value persistence boundary used by the cart, auth and artwork stores.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Adapter is a whole-value key-value store.
// Get reports false for a missing key or a value that cannot be read; it never fails.
// There is no atomicity across keys.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// SchemaVersion is written into every envelope.
const SchemaVersion = 1

// Key helpers.
const ArtworksKey = "artworks"

func CartKey(sessionID string) string    { return "cart:" + sessionID }
func SessionKey(sessionID string) string { return "session:" + sessionID }

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Save encodes v in a versioned envelope and writes it under key.
func Save(ctx context.Context, a Adapter, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return a.Set(ctx, key, raw)
}

// Load decodes the value under key into v.
// Missing, malformed or newer-than-supported values report false and leave v untouched.
func Load(ctx context.Context, a Adapter, key string, v any) bool {
	raw, ok := a.Get(ctx, key)
	if !ok {
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Data) == 0 {
		log.WithField("key", key).Warn("Discarding malformed stored value")
		return false
	}
	if env.Version < 1 || env.Version > SchemaVersion {
		log.WithFields(log.Fields{"key": key, "version": env.Version}).Warn("Discarding stored value with unsupported version")
		return false
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		log.WithField("key", key).WithError(err).Warn("Discarding undecodable stored value")
		return false
	}
	return true
}
