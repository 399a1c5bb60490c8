package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Konrad-GB/voting-website/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "session:"
	sessionIndexKey  = "sessions"

	// defaultTTL is the retention window for stored sessions. Every
	// save refreshes it, so abandoned sessions age out on their own.
	defaultTTL = 24 * time.Hour

	// defaultOpTimeout bounds each store round trip
	defaultOpTimeout = 5 * time.Second
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when creating a session whose ID is
// already taken
var ErrSessionExists = errors.New("session already exists")

// ErrStoreUnavailable is returned when the store cannot be reached
// within the operation timeout
var ErrStoreUnavailable = errors.New("session store unavailable")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL overrides the retention window (optional)
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

// NewRedis creates a new Redis-backed session repository
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

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client:    cfg.RedisClient,
		ttl:       ttl,
		opTimeout: opTimeout,
	}, nil
}

// CreateSession persists a brand-new session to Redis. The session
// key must not already exist.
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	sessionJSON, err := json.Marshal(newSessionRecord(input.Session))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	created, err := r.client.SetNX(ctx, sessionKey, sessionJSON, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: failed to create session: %v", ErrStoreUnavailable, err)
	}
	if !created {
		return ErrSessionExists
	}

	// Keep the listing index in sync, newest sessions first
	err = r.client.ZAdd(ctx, sessionIndexKey, redis.Z{
		Score:  float64(input.Session.CreatedAt.UnixNano()),
		Member: input.Session.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("%w: failed to index session: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// SaveSession persists an existing session to Redis, refreshing its
// expiry. Saving a session whose key has expired or been deleted
// signals not-found rather than resurrecting it.
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	sessionJSON, err := json.Marshal(newSessionRecord(input.Session))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	saved, err := r.client.SetXX(ctx, sessionKey, sessionJSON, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: failed to save session: %v", ErrStoreUnavailable, err)
	}
	if !saved {
		return ErrSessionNotFound
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrStoreUnavailable, err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(sessionJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return record.toModel(), nil
}

// DeleteSession removes a session from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	deleted, err := r.client.Del(ctx, sessionKey).Result()
	if err != nil {
		return fmt.Errorf("%w: failed to delete session: %v", ErrStoreUnavailable, err)
	}

	if err := r.client.ZRem(ctx, sessionIndexKey, input.SessionID).Err(); err != nil {
		return fmt.Errorf("%w: failed to remove session from index: %v", ErrStoreUnavailable, err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListSessionSummaries retrieves the lightweight session index from
// Redis, newest first. Index entries whose session key has expired
// are pruned as they are encountered.
func (r *redisRepository) ListSessionSummaries(ctx context.Context, input *ListSessionSummariesInput) (*ListSessionSummariesOutput, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	sessionIDs, err := r.client.ZRevRange(ctx, sessionIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get session index: %v", ErrStoreUnavailable, err)
	}

	if len(sessionIDs) == 0 {
		return &ListSessionSummariesOutput{
			Summaries: []*models.SessionSummary{},
		}, nil
	}

	pipe := r.client.Pipeline()
	sessionCommands := make([]*redis.StringCmd, 0, len(sessionIDs))

	for _, sessionID := range sessionIDs {
		sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
		sessionCommands = append(sessionCommands, pipe.Get(ctx, sessionKey))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrStoreUnavailable, err)
	}

	summaries := make([]*models.SessionSummary, 0, len(sessionIDs))
	for i, cmd := range sessionCommands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Session expired after the index was read
				r.client.ZRem(ctx, sessionIndexKey, sessionIDs[i])
				continue
			}
			return nil, fmt.Errorf("%w: failed to get session %s: %v", ErrStoreUnavailable, sessionIDs[i], err)
		}

		var record sessionRecord
		if err := json.Unmarshal([]byte(sessionJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionIDs[i], err)
		}

		summaries = append(summaries, &models.SessionSummary{
			ID:        record.ID,
			Name:      record.Name,
			PollCount: len(record.Polls),
			Status:    models.SessionStatus(record.Status),
			CreatedAt: record.CreatedAt,
		})
	}

	return &ListSessionSummariesOutput{
		Summaries: summaries,
	}, nil
}

func (r *redisRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.opTimeout)
}
