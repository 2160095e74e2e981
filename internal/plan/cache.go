package plan

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnloop/learnloop/internal/platform/cache"
)

const (
	cacheKeyPrefix  = "plan:"
	cacheOpTimeout  = 3 * time.Second
	defaultCacheTTL = 10 * time.Minute
)

// CachedStore is a read-through cache over a Store. Reads hit the cache
// first; writes go to the backing store and invalidate or refresh the
// cached copy. Cache failures are logged and treated as misses, never as
// store errors.
type CachedStore struct {
	store Store
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachedStore wraps a Store with a Redis read-through cache. A ttl of
// zero uses the default.
func NewCachedStore(store Store, c *cache.Cache, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedStore{store: store, cache: c, ttl: ttl}
}

func (c *CachedStore) Create(p LearningPlan) (string, error) {
	id, err := c.store.Create(p)
	if err != nil {
		return "", err
	}
	// The store fills id and timestamps, so prime the cache from a
	// read-back rather than the input.
	if fresh, err := c.store.Get(id); err == nil {
		c.put(fresh)
	}
	return id, nil
}

func (c *CachedStore) Get(id string) (*LearningPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	raw, err := c.cache.Client.Get(ctx, cacheKeyPrefix+id).Bytes()
	if err == nil {
		var p LearningPlan
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
		slog.Warn("corrupt cached plan, falling through", "id", id)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("plan cache read failed", "id", id, "error", err)
	}

	p, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	c.put(p)
	return p, nil
}

func (c *CachedStore) ListByStudent(studentID string) ([]LearningPlan, error) {
	return c.store.ListByStudent(studentID)
}

func (c *CachedStore) Update(p *LearningPlan) error {
	if err := c.store.Update(p); err != nil {
		return err
	}
	c.put(p)
	return nil
}

func (c *CachedStore) put(p *LearningPlan) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.cache.Client.Set(ctx, cacheKeyPrefix+p.ID, raw, c.ttl).Err(); err != nil {
		slog.Warn("plan cache write failed", "id", p.ID, "error", err)
	}
}
