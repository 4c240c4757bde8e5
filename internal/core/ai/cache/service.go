package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Caro-cyber/sistema-iareceita/internal/infrastructure/config"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// ErrCacheDisabled is returned when the cache is turned off by config.
	ErrCacheDisabled = errors.New("cache is disabled")
	// ErrCacheMiss is returned when no entry exists for the prompt.
	ErrCacheMiss = errors.New("cache miss")
)

// Service is a Redis-backed cache for generation responses, keyed by prompt
// hash. A disabled cache degrades to pass-through: Get always misses, Set is
// a no-op.
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService creates the cache service and verifies the Redis connection
// when caching is enabled.
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	common.LogInfo("response cache initialized",
		zap.String("addr", cfg.Addr),
		zap.Duration("ttl", cfg.TTL),
	)

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get returns the cached response for the prompt, if present.
func (s *Service) Get(ctx context.Context, prompt string) (string, error) {
	if !s.config.Enabled || s.client == nil {
		return "", ErrCacheDisabled
	}

	value, err := s.client.Get(ctx, cacheKey(prompt)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	return value, nil
}

// Set stores the response for the prompt with the configured TTL.
func (s *Service) Set(ctx context.Context, prompt, response string) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	if err := s.client.Set(ctx, cacheKey(prompt), response, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close releases the Redis connection.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "ai:response:" + hex.EncodeToString(sum[:])
}
