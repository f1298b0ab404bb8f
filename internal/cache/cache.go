// Package cache provides a Redis-backed cache for rendered listing
// responses. The catalog is read-only between loads, so entries simply
// expire on a TTL instead of being invalidated.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Listing caches serialized listing responses keyed by their canonical
// query string.
type Listing struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a Listing cache from a Redis URL.
func New(redisURL string, ttl time.Duration) (*Listing, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Listing{client: redis.NewClient(opts), ttl: ttl}, nil
}

// Ping verifies the Redis connection.
func (l *Listing) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (l *Listing) Close() error {
	return l.client.Close()
}

// Key canonicalizes request query parameters into a stable cache key:
// sorted by name, value order preserved, hashed to keep keys short.
func Key(params url.Values) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		for _, v := range params[name] {
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte('&')
		}
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "fancatalog:list:" + hex.EncodeToString(sum[:16])
}

// Get returns the cached response body for key, or ok=false on a miss.
// Redis errors degrade to a miss: the store can always answer.
func (l *Listing) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := l.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a response body under key with the configured TTL.
func (l *Listing) Set(ctx context.Context, key string, body []byte) error {
	return l.client.Set(ctx, key, body, l.ttl).Err()
}
