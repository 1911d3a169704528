// Package session keeps server-side sessions and their flash messages in Redis.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Lifetime matches the original application's seven-day session window.
const Lifetime = 7 * 24 * time.Hour

// Flash is a one-shot message shown on the next page the user loads.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Store interface {
	// Start opens an anonymous session and returns its token.
	Start(ctx context.Context) (string, error)
	// SetUser binds a logged-in user to the session.
	SetUser(ctx context.Context, token string, userID int) error
	// UserID resolves a token. ok is false when the session does not exist;
	// a zero user ID with ok true is an anonymous session.
	UserID(ctx context.Context, token string) (userID int, ok bool, err error)
	Destroy(ctx context.Context, token string) error
	AddFlash(ctx context.Context, token string, flash Flash) error
	PopFlashes(ctx context.Context, token string) ([]Flash, error)
}

// RedisStore implements Store on a Redis connection.
type RedisStore struct {
	rdb *goredis.Client
}

// NewRedisStore connects to Redis with retry.
func NewRedisStore(addr string) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err == nil {
			cancel()
			log.Println("Connected to Redis")
			return &RedisStore{rdb: rdb}, nil
		}
		cancel()
		log.Printf("Waiting for Redis... (%d/10)", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("redis: failed to connect after 10 attempts")
}

func sessionKey(token string) string { return "session:" + token }
func flashKey(token string) string   { return "flash:" + token }

func (s *RedisStore) Start(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(token), 0, Lifetime).Err(); err != nil {
		return "", fmt.Errorf("error starting session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) SetUser(ctx context.Context, token string, userID int) error {
	return s.rdb.Set(ctx, sessionKey(token), userID, Lifetime).Err()
}

func (s *RedisStore) UserID(ctx context.Context, token string) (int, bool, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("error reading session: %w", err)
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session value %q: %w", val, err)
	}
	return userID, true, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token), flashKey(token)).Err()
}

func (s *RedisStore) AddFlash(ctx context.Context, token string, flash Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(token), payload)
	pipe.Expire(ctx, flashKey(token), Lifetime)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) PopFlashes(ctx context.Context, token string) ([]Flash, error) {
	pipe := s.rdb.TxPipeline()
	listCmd := pipe.LRange(ctx, flashKey(token), 0, -1)
	pipe.Del(ctx, flashKey(token))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("error popping flashes: %w", err)
	}

	var flashes []Flash
	for _, raw := range listCmd.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
