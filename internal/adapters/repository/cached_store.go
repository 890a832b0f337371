package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 30 * time.Minute

var _ domain.KeyValueStore = (*CachedStore)(nil)

// CachedStore is a read-through redis cache in front of a durable store.
// Writes go to the durable store first and then drop the cached copy.
type CachedStore struct {
	next  domain.KeyValueStore
	cache *redis.Client
	log   *zap.Logger
}

func NewCachedStore(next domain.KeyValueStore, cache *redis.Client, log *zap.Logger) *CachedStore {
	return &CachedStore{
		next:  next,
		cache: cache,
		log:   logger.Named(log, "repo.cache"),
	}
}

func (s *CachedStore) cacheKey(key string) string {
	return "state:" + key
}

func (s *CachedStore) invalidate(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, s.cacheKey(key)).Err(); err != nil {
		s.log.Warn("failed to invalidate cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedStore) Load(ctx context.Context, key string) ([]byte, error) {
	cacheKey := s.cacheKey(key)

	val, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.log.Warn("redis read error", zap.String("key", key), zap.Error(err))
	}

	value, err := s.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, cacheKey, value, cacheTTL).Err(); setErr != nil {
		if isRedisOOM(setErr) {
			s.log.Warn("redis out of memory, serving uncached", zap.String("key", key))
		} else {
			s.log.Warn("redis set error", zap.String("key", key), zap.Error(setErr))
		}
	}

	return value, nil
}

func (s *CachedStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.next.Save(ctx, key, value); err != nil {
		return err
	}
	s.invalidate(ctx, key)
	return nil
}

func isRedisOOM(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "OOM")
}
