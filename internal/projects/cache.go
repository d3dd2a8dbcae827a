package projects

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyPrefix      = "productmanager:project:"
	generationKeyPrefix = "productmanager:project-gen:"
	// loadTimeout bounds a shared load once it is detached from its callers.
	loadTimeout = 10 * time.Second
)

var errStaleGeneration = errors.New("projects: cache generation changed")

// Cache is a read-through Redis cache for project details. A nil Cache or
// a Cache without a client always calls the loader. Redis failures are
// logged and fall back to the loader.
//
// Every invalidation bumps a per-project generation. A load only populates
// the cache if the generation it started under is still current, so a load
// racing a write never stores the pre-write view.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

func generationKey(id uuid.UUID) string {
	return generationKeyPrefix + id.String()
}

// Fetch returns the cached detail for id or populates it using load.
// Concurrent misses for the same id share one load, which runs detached
// from any single caller's cancellation.
func (c *Cache) Fetch(ctx context.Context, id uuid.UUID, load func(context.Context) (Detail, error)) (Detail, error) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return load(ctx)
	}
	key := cacheKey(id)
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var d Detail
		if err := json.Unmarshal(payload, &d); err == nil {
			return d, nil
		}
		c.logger.Warn("project cache decode", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("project cache get", slog.String("key", key), slog.Any("error", err))
	}

	resultChan := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		gen, genErr := c.generation(loadCtx, id)
		d, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if genErr != nil {
			c.logger.Warn("project cache generation", slog.String("key", key), slog.Any("error", genErr))
			return d, nil
		}
		c.store(loadCtx, id, gen, d)
		return d, nil
	})
	select {
	case <-ctx.Done():
		return Detail{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return Detail{}, res.Err
		}
		return res.Val.(Detail), nil
	}
}

func (c *Cache) generation(ctx context.Context, id uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store writes d unless the project was invalidated after gen was read.
func (c *Cache) store(ctx context.Context, id uuid.UUID, gen int64, d Detail) {
	key := cacheKey(id)
	raw, err := json.Marshal(d)
	if err != nil {
		c.logger.Warn("project cache encode", slog.String("key", key), slog.Any("error", err))
		return
	}
	genKey := generationKey(id)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("project cache skip stale load", slog.String("key", key))
	default:
		c.logger.Warn("project cache set", slog.String("key", key), slog.Any("error", err))
	}
}

// Invalidate drops the cached detail for id and retires in-flight loads.
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	key := cacheKey(id)
	genKey := generationKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, c.ttl+loadTimeout)
		pipe.Del(ctx, key)
		return nil
	})
	c.group.Forget(key)
	return err
}
