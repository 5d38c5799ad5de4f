// Package kv is the durable key-value storage behind session persistence.
package kv

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by backends that cannot reach their storage.
var ErrUnavailable = errors.New("kv: storage unavailable")

// Store reads and writes string values under string keys. Get reports
// found=false, with a nil error, for keys that were never set or were deleted.
// Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type prefixed struct {
	inner  Store
	prefix string
}

// WithPrefix returns a Store that prepends prefix to every key.
func WithPrefix(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return &prefixed{inner: s, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Ping(ctx context.Context) error {
	return p.inner.Ping(ctx)
}
