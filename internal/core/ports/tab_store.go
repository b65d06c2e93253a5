package ports

import (
	"context"
	"time"
)

// TabStore holds string entries in a per-browser namespace.
type TabStore interface {
	// GetAll returns the present entries among keys. Missing keys are absent
	// from the result.
	GetAll(ctx context.Context, namespace string, keys ...string) (map[string]string, error)
	// SetAll writes every entry in one step.
	SetAll(ctx context.Context, namespace string, entries map[string]string) error
	Remove(ctx context.Context, namespace string, keys ...string) error
	Ping(ctx context.Context) error
}

// Locker holds short-lived named markers in a namespace.
type Locker interface {
	// Acquire sets the marker unless it already exists and reports whether it did.
	Acquire(ctx context.Context, namespace, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, namespace, name string) error
}
