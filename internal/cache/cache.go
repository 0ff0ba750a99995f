package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/halalfood/halalfood/backend/api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Listings is a Redis-backed cache for the region/city picker responses.
// Values are stored as JSON under "<prefix><key>" with a fixed TTL. Any Redis
// failure degrades to a miss so the caller falls through to the store.
type Listings struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewListings creates the cache. Prefix may be empty.
func NewListings(client *redis.Client, prefix string, ttl time.Duration) *Listings {
	if prefix == "" {
		prefix = "listing:"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Listings{client: client, prefix: prefix, ttl: ttl}
}

func (l *Listings) key(k string) string {
	return l.prefix + k
}

func (l *Listings) GetStrings(ctx context.Context, key string) ([]string, bool) {
	b, err := l.client.Get(ctx, l.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Debugf("listing cache get %s: %v", key, err)
		}
		return nil, false
	}
	var vals []string
	if err := json.Unmarshal(b, &vals); err != nil {
		return nil, false
	}
	return vals, true
}

func (l *Listings) SetStrings(ctx context.Context, key string, vals []string) {
	b, err := json.Marshal(vals)
	if err != nil {
		return
	}
	if err := l.client.Set(ctx, l.key(key), b, l.ttl).Err(); err != nil {
		logger.Debugf("listing cache set %s: %v", key, err)
	}
}

// Purge drops every cached listing. Called after writes so the pickers never
// serve a region or city that no longer exists.
func (l *Listings) Purge(ctx context.Context) {
	iter := l.client.Scan(ctx, 0, l.prefix+"*", 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Debugf("listing cache purge scan: %v", err)
		return
	}
	if len(keys) > 0 {
		if err := l.client.Del(ctx, keys...).Err(); err != nil {
			logger.Debugf("listing cache purge del: %v", err)
		}
	}
}
