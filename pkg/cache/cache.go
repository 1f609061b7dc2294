// Package cache stores rendered artifacts between runs.
//
// A placement run is deterministic: the same job file, input data, and font
// always produce the same labels. The pipeline therefore keys every rendered
// format by a hash of those inputs and skips loading, placing and rendering
// when all requested formats are already cached.
//
// Two implementations are provided: [FileCache] for CLI use, storing one
// JSON-wrapped entry per key under a directory, and the no-op cache returned
// by [NewNullCache] for disabling caching.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Boxes   bool
	Version string
}

// ArtifactKey returns the key of one rendered format of a job.
func ArtifactKey(jobHash, format string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", jobHash, format, opts)
}

type nullCache struct{}

// NewNullCache returns a cache that never stores anything.
func NewNullCache() Cache { return nullCache{} }

func (nullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error                     { return nil }
func (nullCache) Close() error                                             { return nil }
