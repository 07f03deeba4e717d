package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
)

const (
	itemKeyPrefix = "storefront:item:"
	itemListKey   = "storefront:items:all"
)

// CachedItemRepository is a cache-aside decorator over an ItemRepository.
// Cache failures are logged and the underlying store answers instead.
type CachedItemRepository struct {
	ItemRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedItemRepository wraps next with a Redis cache. A nil client or a
// non-positive ttl returns next unchanged.
func NewCachedItemRepository(next ItemRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) ItemRepository {
	if client == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedItemRepository{ItemRepository: next, client: client, ttl: ttl, logger: logger}
}

func (r *CachedItemRepository) Create(ctx context.Context, item *domain.Item) error {
	if err := r.ItemRepository.Create(ctx, item); err != nil {
		return err
	}
	if err := r.client.Del(ctx, itemListKey).Err(); err != nil {
		r.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
	return nil
}

func (r *CachedItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	key := fmt.Sprintf("%s%d", itemKeyPrefix, id)

	var cached domain.Item
	if hit, err := r.getJSON(ctx, key, &cached); err != nil {
		r.logger.Warn("item cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	item, err := r.ItemRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.setJSON(ctx, key, item); err != nil {
		r.logger.Warn("item cache write failed", zap.String("key", key), zap.Error(err))
	}
	return item, nil
}

func (r *CachedItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	var cached []domain.Item
	if hit, err := r.getJSON(ctx, itemListKey, &cached); err != nil {
		r.logger.Warn("item cache read failed", zap.String("key", itemListKey), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	items, err := r.ItemRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.setJSON(ctx, itemListKey, items); err != nil {
		r.logger.Warn("item cache write failed", zap.String("key", itemListKey), zap.Error(err))
	}
	return items, nil
}

func (r *CachedItemRepository) setJSON(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, r.ttl).Err()
}

func (r *CachedItemRepository) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	res, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}
