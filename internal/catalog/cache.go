package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	"github.com/ariefcatur/go-shop-backend.git/internal/redisx"
)

// CachedStore is a read-through cache over a ProductStore. Redis trouble is
// never a request failure: reads fall back to the store, invalidation
// failures are logged and the TTL catches up.
type CachedStore struct {
	store ProductStore
	redis *redis.Client
	log   *slog.Logger
}

func NewCachedStore(store ProductStore, rdb *redis.Client, log *slog.Logger) *CachedStore {
	return &CachedStore{store: store, redis: rdb, log: log}
}

func (c *CachedStore) GetByID(ctx context.Context, id int64) (*Product, error) {
	key := fmt.Sprintf(redisx.KeyProduct, id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == redisx.NotFoundSentinel {
			return nil, &apperr.NotFoundError{Resource: "product", ID: id}
		}
		var p Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		c.log.Debug("bad cached product, falling through", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Debug("redis get failed, falling through", "key", key, "err", err)
	}

	p, err := c.store.GetByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			c.set(ctx, key, []byte(redisx.NotFoundSentinel), redisx.TTLNotFound)
		}
		return nil, err
	}
	if b, err := json.Marshal(p); err == nil {
		c.set(ctx, key, b, redisx.TTLProduct)
	}
	return p, nil
}

// List caches only the unfiltered listing; filtered and searched listings
// always hit the store.
func (c *CachedStore) List(ctx context.Context, f ListFilter) ([]Product, error) {
	if f.Status != "" || f.Search != "" {
		return c.store.List(ctx, f)
	}

	if data, err := c.redis.Get(ctx, redisx.KeyProductList).Bytes(); err == nil {
		var ps []Product
		if err := json.Unmarshal(data, &ps); err == nil {
			return ps, nil
		}
	}

	ps, err := c.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(ps); err == nil {
		c.set(ctx, redisx.KeyProductList, b, redisx.TTLList)
	}
	return ps, nil
}

func (c *CachedStore) Insert(ctx context.Context, p *Product) error {
	if err := c.store.Insert(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID)
	return nil
}

func (c *CachedStore) Update(ctx context.Context, p *Product) error {
	if err := c.store.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID)
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, id int64) (string, error) {
	imageURL, err := c.store.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	c.invalidate(ctx, id)
	return imageURL, nil
}

func (c *CachedStore) set(ctx context.Context, key string, b []byte, ttl time.Duration) {
	if err := c.redis.Set(ctx, key, b, ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "key", key, "err", err)
	}
}

// InvalidateProducts drops the cached entries for the given products plus
// the listing. Checkout calls this after its stock decrements commit, so
// reads never serve pre-checkout stock for a full TTL.
func (c *CachedStore) InvalidateProducts(ctx context.Context, ids []int64) {
	for _, id := range ids {
		c.invalidate(ctx, id)
	}
}

func (c *CachedStore) invalidate(ctx context.Context, id int64) {
	keys := []string{fmt.Sprintf(redisx.KeyProduct, id), redisx.KeyProductList}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.log.Debug("cache invalidation failed", "keys", keys, "err", err)
	}
}
