// Package cache stores computed layouts and rendered charts.
//
// # Overview
//
// Rendering a chart is cheap but not free, and the site serves the same
// few dozen charts over and over. The pipeline keys every layout and
// artifact by its inputs and keeps the bytes in a [Cache]:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared storage for several site instances
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives keys from inputs. Layout keys include the dataset hash,
// so replacing the election data never serves charts of the old data.
// [NewScopedKeyer] prefixes every key, which lets several deployments share
// one Redis database.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "prod:")
//	key := k.LayoutKey(data.Hash(), cache.LayoutKeyOpts{Election: "legislativo", Year: 2019, Chart: "hemiciclo"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero ttl means the entry
// never expires. Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes. Election data only changes when the dataset
// does, and the dataset hash is part of every key.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
