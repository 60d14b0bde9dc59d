package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists sessions as JSON values with a server-side TTL,
// letting multiple instances share one session space.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	updates *keyedMutex
}

// RedisConfig holds connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisStore(cfg RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl, updates: newKeyedMutex()}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	// refresh expiry on access
	s.client.Expire(ctx, key(id), s.ttl)

	return &sess, nil
}

func (s *RedisStore) Put(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Update runs fn against the stored session and saves the result. The
// per-session lock serializes edits within this process; each editing
// session is owned by the instance that accepted its upload.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) error {
	s.updates.lock(id)
	defer s.updates.unlock(id)

	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}
	return s.Put(ctx, sess)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(id string) string {
	return "session:" + id
}
