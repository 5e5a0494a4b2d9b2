package transientstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
)

const transientKeyPrefix = "transient:"

var _ secondary.TransientPort = &TransientStore{}

// TransientStore implements the TransientPort interface with Redis.
// Expiry is native Redis TTL; a missing or expired key reads as nil.
type TransientStore struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewTransientStore creates a new Redis transient store
func NewTransientStore(redisClient *redis.Client, logger primary.Logger) *TransientStore {
	return &TransientStore{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *TransientStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.redisClient.Get(ctx, transientKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Error("Failed to get transient", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get transient: %w", err)
	}
	return value, nil
}

func (s *TransientStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, transientKeyPrefix+key, value, ttl).Err(); err != nil {
		s.logger.Error("Failed to set transient", "key", key, "error", err)
		return fmt.Errorf("failed to set transient: %w", err)
	}
	return nil
}

func (s *TransientStore) Delete(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, transientKeyPrefix+key).Err(); err != nil {
		s.logger.Error("Failed to delete transient", "key", key, "error", err)
		return fmt.Errorf("failed to delete transient: %w", err)
	}
	return nil
}

// DeleteByPrefix removes every transient under the given key prefix using
// SCAN so large keyspaces are walked incrementally.
func (s *TransientStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	pattern := transientKeyPrefix + prefix + "*"
	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan transient keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
				s.logger.Error("Failed to delete transient batch", "error", err)
				return fmt.Errorf("failed to delete transient batch: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}
