package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/tilalcrm/tilal/internal/ports"
)

// Config holds rate limiting configuration
type Config struct {
	Enabled  bool
	RedisURL string
	Window   time.Duration
}

// redisRateLimitService counts attempts per key in Redis with a sliding TTL
type redisRateLimitService struct {
	client *redis.Client
	window time.Duration
	logger *logrus.Logger
}

// New creates a Redis-backed rate limiter, or a noop limiter when disabled
func New(cfg Config, logger *logrus.Logger) (ports.RateLimitService, error) {
	if !cfg.Enabled {
		logger.Info("rate limiting disabled")
		return &noopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithField("window", cfg.Window).Info("rate limiting service initialized")
	return &redisRateLimitService{client: client, window: cfg.Window, logger: logger}, nil
}

// CheckLimit reports whether the key is still under its attempt limit
func (s *redisRateLimitService) CheckLimit(ctx context.Context, key string, limit int) (bool, error) {
	count, err := s.client.Get(ctx, s.redisKey(key)).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("failed to read attempt count: %w", err)
	}
	return count < limit, nil
}

// Increment records one attempt for the key, refreshing the window TTL
func (s *redisRateLimitService) Increment(ctx context.Context, key string) error {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, s.redisKey(key))
	pipe.Expire(ctx, s.redisKey(key), s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment attempt count: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":      key,
		"attempts": incr.Val(),
	}).Debug("rate limit attempt recorded")
	return nil
}

func (s *redisRateLimitService) redisKey(key string) string {
	return "ratelimit:" + key
}

// noopRateLimitService never limits anything
type noopRateLimitService struct{}

func (s *noopRateLimitService) CheckLimit(ctx context.Context, key string, limit int) (bool, error) {
	return true, nil
}

func (s *noopRateLimitService) Increment(ctx context.Context, key string) error {
	return nil
}
