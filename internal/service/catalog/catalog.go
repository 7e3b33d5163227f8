// Package catalog manages the reference data flights are built from:
// airports, routes, airplane types, airplanes and crews.
package catalog

import (
	"context"
	"io"
)

// Cache stores reference lists. A nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type ImageStore interface {
	SaveImage(subdir, name string, r io.Reader) (string, error)
	Remove(url string) error
}
