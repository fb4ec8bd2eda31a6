package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pages caches rendered listing bodies in Redis for a fixed interval.
// Within that interval the stored bytes are replayed verbatim, even if
// the underlying rows changed. Writes never invalidate entries; they
// simply age out.
type Pages struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewPages(redisClient *redis.Client, ttlSeconds int) *Pages {
	if ttlSeconds <= 0 {
		ttlSeconds = 20
	}
	return &Pages{
		redis: redisClient,
		ttl:   time.Duration(ttlSeconds) * time.Second,
	}
}

// Get returns the cached body for key. Without a Redis client every
// lookup is a miss, so the app keeps working uncached.
func (p *Pages) Get(ctx context.Context, key string) ([]byte, bool) {
	if p.redis == nil {
		return nil, false
	}
	body, err := p.redis.Get(ctx, pageKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (p *Pages) Set(ctx context.Context, key string, body []byte) {
	if p.redis == nil {
		return
	}
	if err := p.redis.Set(ctx, pageKey(key), body, p.ttl).Err(); err != nil {
		log.Printf("page cache set error: %v", err)
	}
}

func (p *Pages) TTL() time.Duration {
	return p.ttl
}

func pageKey(key string) string {
	return "pages:" + key
}
