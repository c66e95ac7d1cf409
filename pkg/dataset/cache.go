// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/NVIDIA/dataset-api/pkg/config"
	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
)

// entry pairs a dataset with the exact path string that produced it.
type entry struct {
	path string
	ds   *Dataset
}

// CacheStats is a point-in-time view of cache counters.
type CacheStats struct {
	Hits     uint64
	Misses   uint64
	Loads    uint64
	Failures uint64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLoader sets the loader used on cache misses.
func WithLoader(l *Loader) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.loader = l
		}
	}
}

// Cache holds the most recently loaded Dataset in a single slot keyed by
// the path string that produced it. It is safe for concurrent use.
type Cache struct {
	provider config.Provider
	loader   *Loader

	current atomic.Pointer[entry]
	group   singleflight.Group

	// gen is bumped by Clear. Loads started under an older generation are
	// neither joined by newer callers nor installed. mu orders Clear
	// against installs.
	gen atomic.Uint64
	mu  sync.Mutex

	hits     atomic.Uint64
	misses   atomic.Uint64
	loads    atomic.Uint64
	failures atomic.Uint64
}

// NewCache creates an empty cache that resolves its default path through p.
func NewCache(p config.Provider, opts ...CacheOption) *Cache {
	c := &Cache{
		provider: p,
		loader:   NewLoader(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetDefault resolves the configured data path and returns its dataset.
// The path is re-read from the provider on every call.
func (c *Cache) GetDefault(ctx context.Context) (*Dataset, error) {
	return c.Get(ctx, c.provider.DataFilePath())
}

// Get returns the dataset for path. When the cached entry was produced by
// the identical path string it is returned without touching the filesystem.
// Otherwise the path is validated and loaded, and on success the entry is
// replaced. On failure the existing entry is kept and the error returned.
func (c *Cache) Get(ctx context.Context, path string) (*Dataset, error) {
	if e := c.current.Load(); e != nil && e.path == path {
		c.hits.Add(1)
		datasetCacheHits.Inc()
		return e.ds, nil
	}

	c.misses.Add(1)
	datasetCacheMisses.Inc()

	gen := c.gen.Load()
	key := path + "\x00" + strconv.FormatUint(gen, 10)
	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.load(ctx, path, gen)
	})
	if err != nil {
		return nil, err
	}

	if shared {
		slog.DebugContext(ctx, "dataset load shared with concurrent request", "path", path)
	}

	return v.(*Dataset), nil
}

// load validates and parses path, then installs the result unless the
// cache was cleared after gen was observed.
func (c *Cache) load(ctx context.Context, path string, gen uint64) (*Dataset, error) {
	start := time.Now()
	c.loads.Add(1)

	ds, err := c.validateAndLoad(path)
	datasetLoadDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.failures.Add(1)
		code := dserrors.CodeOf(err)
		datasetLoadFailures.WithLabelValues(string(code)).Inc()
		slog.ErrorContext(ctx, "failed to load dataset",
			"path", path,
			"code", code,
			"error", err,
		)
		return nil, err
	}

	if ds.Empty() {
		slog.WarnContext(ctx, "data file is empty", "path", ds.Path())
	}

	if !c.install(gen, &entry{path: path, ds: ds}) {
		slog.DebugContext(ctx, "dataset load superseded by clear, not cached", "path", path)
		return ds, nil
	}
	datasetItems.Set(float64(ds.Len()))

	slog.InfoContext(ctx, "dataset loaded",
		"path", path,
		"resolved", ds.Path(),
		"items", ds.Len(),
		"etag", ds.ETag(),
		"duration", time.Since(start).String(),
	)

	return ds, nil
}

func (c *Cache) validateAndLoad(path string) (*Dataset, error) {
	resolved, err := ValidatePath(path)
	if err != nil {
		return nil, err
	}
	return c.loader.Load(resolved)
}

// install stores e if no Clear happened since gen was read.
func (c *Cache) install(gen uint64, e *entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != gen {
		return false
	}
	c.current.Store(e)
	return true
}

// Clear discards the cached entry. The next Get reloads from disk, even
// when a load of the same path is still in flight.
func (c *Cache) Clear() {
	c.reset()
	datasetCacheClears.Inc()
	slog.Info("data cache cleared")
}

// Current returns the cached entry without loading.
func (c *Cache) Current() (path string, ds *Dataset, ok bool) {
	e := c.current.Load()
	if e == nil {
		return "", nil, false
	}
	return e.path, e.ds, true
}

// Stats returns the cache counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Loads:    c.loads.Load(),
		Failures: c.failures.Load(),
	}
}

// Close releases the cached dataset. The cache remains usable.
func (c *Cache) Close() error {
	c.reset()
	return nil
}

func (c *Cache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen.Add(1)
	c.current.Store(nil)
}
