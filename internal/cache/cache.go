// Package cache provides the pluggable key-value cache used in front of the
// metadata catalog: search responses are expensive and rate limited upstream,
// so they are kept in an LRU with a TTL. Backends are registered by name;
// in-memory and Redis/Valkey implementations ship with the package.
package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Cache is a byte-oriented key-value cache with TTL semantics.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true on a hit,
	// or nil and false on a miss. A miss is an expected branch, never an error.
	Get(key string) ([]byte, bool)

	// Set stores a value under key, overwriting any existing entry.
	Set(key string, value []byte)

	// Len returns the number of entries currently held. External backends
	// may report the key count of the configured database.
	Len() int

	// Close releases any resources held by the cache (e.g. network
	// connections). In-memory caches treat this as a no-op.
	Close() error
}

// Options configures a cache backend.
type Options struct {
	// Size is the maximum number of entries for LRU backends.
	Size int

	// TTL is the time-to-live applied to every entry.
	TTL time.Duration

	// RedisAddress is the Redis/Valkey server address (e.g. "localhost:6379").
	RedisAddress string

	// RedisPassword authenticates against the Redis/Valkey server.
	RedisPassword string

	// RedisDB is the Redis/Valkey database number.
	RedisDB int

	// Group, when non-empty, namespaces Prometheus metrics for this cache
	// and enables instrumentation (hits, misses, entry count).
	Group string
}

// Backend constructs a Cache from options.
type Backend func(opts Options) (Cache, error)

var (
	mu       sync.RWMutex
	backends = make(map[string]Backend)
)

// Register registers a cache backend under the given name. It panics when the
// name is taken or the backend is nil; backends register from init.
func Register(name string, b Backend) {
	mu.Lock()
	defer mu.Unlock()

	if b == nil {
		panic("cache: Register backend is nil")
	}
	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("cache: backend %q already registered", name))
	}
	backends[name] = b
}

// New creates a Cache using the named backend. When opts.Group is non-empty
// the cache is wrapped with metric instrumentation: hits and misses are
// counted under the "cache" label, and a lazy entries collector reports Len()
// at scrape time.
func New(name string, opts Options) (Cache, error) {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown backend %q (registered: %v)", name, RegisteredBackends())
	}

	inner, err := b(opts)
	if err != nil {
		return nil, err
	}

	if opts.Group == "" {
		return inner, nil
	}
	return newInstrumentedCache(inner, opts.Group), nil
}

// RegisteredBackends returns a sorted list of registered backend names.
func RegisteredBackends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
