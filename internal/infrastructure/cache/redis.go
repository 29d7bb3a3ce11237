package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/config"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const sessionKeyPrefix = "wallet-console:session:"

// RedisSessionStore keeps console session inputs in Redis so any API
// instance can rehydrate a session
type RedisSessionStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisSessionStore creates a new Redis backed session store
func NewRedisSessionStore(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	return &RedisSessionStore{
		client: client,
		logger: logger,
		ttl:    ttl,
	}, nil
}

// Close closes the Redis connection
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

// Save stores the session state and refreshes its expiry
func (s *RedisSessionStore) Save(ctx context.Context, state repositories.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(state.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Load returns the stored session state, or nil when it expired or never existed
func (s *RedisSessionStore) Load(ctx context.Context, id string) (*repositories.SessionState, error) {
	val, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var state repositories.SessionState
	if err := json.Unmarshal(val, &state); err != nil {
		s.logger.Warn("Dropping unreadable session",
			zap.String("session_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &state, nil
}

// Delete removes the session state
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// HealthCheck checks if Redis is reachable
func (s *RedisSessionStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
