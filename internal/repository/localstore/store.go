// Package localstore implements the domain repositories over a kv.Backend.
// Each collection lives whole under one well-known key and is rewritten in
// full on every committed mutation.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
)

// Well-known storage keys.
const (
	keyUsers        = "users"
	keyCases        = "cases"
	keyAppointments = "appointments"
	keySession      = "authUser"
)

// loadCollection reads the collection under key. An absent key yields an
// empty collection. An unparseable collection is discarded: losing demo
// data beats refusing to start.
func loadCollection[T any](ctx context.Context, backend kv.Backend, key string) ([]T, error) {
	raw, err := backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if raw == nil {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt collection")
		return nil, nil
	}
	return items, nil
}

func saveCollection[T any](ctx context.Context, backend kv.Backend, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
