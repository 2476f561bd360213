package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"callboard/internal/clients"
)

const defaultTTL = 5 * time.Minute

// ClientRepo is a read-through cache over a clients repository. GetByID is
// the hot path: the pipeline resolves a client name for every inbound call
// payload. Cache failures degrade to the inner repository, never to the
// caller.
type ClientRepo struct {
	inner clients.Repository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewClientRepo(inner clients.Repository, rdb *redis.Client, ttl time.Duration) *ClientRepo {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ClientRepo{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(id string) string { return "client:" + id }

func (r *ClientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	if raw, err := r.rdb.Get(ctx, cacheKey(id)).Bytes(); err == nil {
		var c clients.Client
		if err := json.Unmarshal(raw, &c); err == nil {
			return c, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Redis unavailable; serve from the inner repository.
		return r.inner.GetByID(ctx, id)
	}

	c, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return clients.Client{}, err
	}
	if raw, err := json.Marshal(c); err == nil {
		_ = r.rdb.Set(ctx, cacheKey(id), raw, r.ttl).Err()
	}
	return c, nil
}

func (r *ClientRepo) Insert(ctx context.Context, c clients.Client) (clients.Client, error) {
	return r.inner.Insert(ctx, c)
}

func (r *ClientRepo) Update(ctx context.Context, c clients.Client) error {
	if err := r.inner.Update(ctx, c); err != nil {
		return err
	}
	_ = r.rdb.Del(ctx, cacheKey(c.ID)).Err()
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.rdb.Del(ctx, cacheKey(id)).Err()
	return nil
}

func (r *ClientRepo) List(ctx context.Context) ([]clients.Client, error) {
	return r.inner.List(ctx)
}
