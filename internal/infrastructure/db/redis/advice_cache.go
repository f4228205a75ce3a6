package redis

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mdip/intelligence-platform/internal/api/metrics"
	"github.com/mdip/intelligence-platform/internal/core/domain"
)

const defaultAdviceTTL = time.Hour

// AdviceCache memoizes canned advisor responses in Redis with a TTL.
// Key format: advice:<topic>:<sha256(prompt)>
type AdviceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAdviceCache creates an AdviceCache wrapping the given Redis client.
// A non-positive ttl falls back to one hour.
func NewAdviceCache(client *redis.Client, ttl time.Duration) *AdviceCache {
	if ttl <= 0 {
		ttl = defaultAdviceTTL
	}
	return &AdviceCache{client: client, ttl: ttl}
}

// Get returns the memoized answer for the prompt if it has not expired.
func (c *AdviceCache) Get(ctx context.Context, topic domain.AdviceTopic, prompt string) (string, bool, error) {
	answer, err := c.client.Get(ctx, c.key(topic, prompt)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.AdviceCacheTotal.WithLabelValues("miss").Inc()
			return "", false, nil
		}
		return "", false, fmt.Errorf("advice cache get: %w", err)
	}
	metrics.AdviceCacheTotal.WithLabelValues("hit").Inc()
	return answer, true, nil
}

// Put stores the answer for the prompt (expires after the cache TTL).
func (c *AdviceCache) Put(ctx context.Context, topic domain.AdviceTopic, prompt, answer string) error {
	return c.client.Set(ctx, c.key(topic, prompt), answer, c.ttl).Err()
}

func (c *AdviceCache) key(topic domain.AdviceTopic, prompt string) string {
	return fmt.Sprintf("advice:%s:%x", topic, sha256.Sum256([]byte(prompt)))
}
