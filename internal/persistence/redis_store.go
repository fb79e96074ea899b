package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists snapshots as plain Redis keys. Snapshots never
// expire: the durable copy must survive idle periods.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and verifies the connection with a ping.
func NewRedisStore(redisHost, redisPort string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     "",
		DB:           0,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func snapshotKey(name string) string {
	return fmt.Sprintf("snapshot:%s", name)
}

// SaveSnapshot stores the blob under the snapshot's key.
func (s *RedisStore) SaveSnapshot(ctx context.Context, name string, blob []byte) error {
	if err := s.client.Set(ctx, snapshotKey(name), blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	return nil
}

// LoadSnapshot returns the blob stored under the snapshot's key, if any.
func (s *RedisStore) LoadSnapshot(ctx context.Context, name string) ([]byte, bool, error) {
	result := s.client.Get(ctx, snapshotKey(name))
	if errors.Is(result.Err(), redis.Nil) {
		return nil, false, nil
	}
	if result.Err() != nil {
		return nil, false, fmt.Errorf("failed to load snapshot %q: %w", name, result.Err())
	}
	blob, err := result.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot %q: %w", name, err)
	}
	return blob, true, nil
}
