// Package kv is the client's persistent key-value storage.
//
// Values are opaque byte strings, usually JSON. Three backends implement
// Store: SQLite (the default), a diskv directory of flat files, and an
// in-memory map for tests and throwaway sessions.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/jourin/internal/logging"
)

// Store is a string-keyed byte store.
type Store interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// ErrCorrupt marks a stored value that could not be decoded.
var ErrCorrupt = errors.New("corrupt stored value")

// GetJSON decodes the value under key into v. It reports false when the key
// is absent and wraps ErrCorrupt when the value is not valid JSON for v.
// A corrupt value leaves v zeroed, never half-decoded.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	b, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		resetTarget(v)
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// resetTarget undoes a partial decode: json.Unmarshal may have filled part
// of v before hitting a type error.
func resetTarget(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().SetZero()
	}
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, b)
}

// LoadJSON is GetJSON that heals corruption: an undecodable value is logged,
// removed and reported as absent.
func LoadJSON(ctx context.Context, s Store, log logging.Logger, key string, v any) (bool, error) {
	ok, err := GetJSON(ctx, s, key, v)
	if !errors.Is(err, ErrCorrupt) {
		return ok, err
	}

	log.Warn(ctx, "discarding corrupt local value", "key", key, "error", err)
	if derr := s.Delete(ctx, key); derr != nil {
		return false, derr
	}
	return false, nil
}
