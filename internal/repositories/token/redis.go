package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	tokenKeyPrefix = "host:token:"

	// defaultTTL matches the session retention window, so a host
	// token outlives every session it could address
	defaultTTL = 24 * time.Hour

	defaultOpTimeout = 5 * time.Second
)

// ErrTokenNotFound is returned when a token is missing or expired
var ErrTokenNotFound = errors.New("token not found")

// ErrStoreUnavailable is returned when the store cannot be reached
var ErrStoreUnavailable = errors.New("token store unavailable")

// Config holds configuration for the Redis token repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL overrides the token lifetime (optional)
	TTL time.Duration

	// OpTimeout overrides the per-operation timeout (optional)
	OpTimeout time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client    *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
}

// NewRedis creates a new Redis-backed token repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client:    cfg.RedisClient,
		ttl:       ttl,
		opTimeout: opTimeout,
	}, nil
}

// SaveToken stores a token in Redis with the configured lifetime
func (r *redisRepository) SaveToken(ctx context.Context, input *SaveTokenInput) error {
	if input == nil || input.Token == "" {
		return errors.New("input and token cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	tokenKey := fmt.Sprintf("%s%s", tokenKeyPrefix, input.Token)
	if err := r.client.Set(ctx, tokenKey, input.Username, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to save token: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// ValidateToken checks a token's presence in Redis
func (r *redisRepository) ValidateToken(ctx context.Context, input *ValidateTokenInput) error {
	if input == nil || input.Token == "" {
		return errors.New("input and token cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	tokenKey := fmt.Sprintf("%s%s", tokenKeyPrefix, input.Token)
	if err := r.client.Get(ctx, tokenKey).Err(); err != nil {
		if err == redis.Nil {
			return ErrTokenNotFound
		}
		return fmt.Errorf("%w: failed to validate token: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// DeleteToken removes a token from Redis
func (r *redisRepository) DeleteToken(ctx context.Context, input *DeleteTokenInput) error {
	if input == nil || input.Token == "" {
		return errors.New("input and token cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	tokenKey := fmt.Sprintf("%s%s", tokenKeyPrefix, input.Token)
	if err := r.client.Del(ctx, tokenKey).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete token: %v", ErrStoreUnavailable, err)
	}

	return nil
}
