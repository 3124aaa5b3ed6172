package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.MediaCache = (*RedisMediaCache)(nil)

const mediaKeyPrefix = "media:"

// RedisMediaCache implements domain.MediaCache on a Redis server.
// Entries expire through Redis TTLs.
type RedisMediaCache struct {
	client *redis.Client
	prefix string
}

// NewRedisMediaCache wraps client. keyPrefix namespaces keys when several
// sites share one Redis database.
func NewRedisMediaCache(client *redis.Client, keyPrefix string) *RedisMediaCache {
	return &RedisMediaCache{
		client: client,
		prefix: keyPrefix + mediaKeyPrefix,
	}
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr string, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisMediaCache) key(id int) string {
	return c.prefix + strconv.Itoa(id)
}

func (c *RedisMediaCache) GetMedia(ctx context.Context, id int) (*domain.Media, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get media %d: %w", id, err)
	}

	m := &domain.Media{}
	if err := json.Unmarshal(data, m); err != nil {
		// a corrupt entry behaves like a miss and gets overwritten on the next save
		return nil, domain.ErrCacheMiss
	}
	return m, nil
}

func (c *RedisMediaCache) SaveMedia(ctx context.Context, m *domain.Media, ttl time.Duration) error {
	if m == nil {
		return fmt.Errorf("media cannot be nil")
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal media %d: %w", m.ID, err)
	}

	if err := c.client.Set(ctx, c.key(m.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set media %d: %w", m.ID, err)
	}
	return nil
}

func (c *RedisMediaCache) DeleteMedia(ctx context.Context, id int) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete media %d: %w", id, err)
	}
	return nil
}
