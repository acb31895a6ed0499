// Package kv provides the key-value persistence backends the local store
// writes its collections through. Every write replaces the whole value for
// a key; there are no partial updates.
package kv

import "context"

// Backend stores opaque values under well-known keys. Get returns
// (nil, nil) when the key is absent.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
