package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"musify/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "musify:album:"
	albumListKey = "musify:albums"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// AlbumCache caches album reads. Writers invalidate after their transaction commits.
type AlbumCache interface {
	GetAlbum(ctx context.Context, albumID int64) (*models.Album, error)
	SetAlbum(ctx context.Context, album *models.Album) error
	GetAlbumList(ctx context.Context) ([]models.Album, error)
	SetAlbumList(ctx context.Context, albums []models.Album) error
	// Invalidate drops the given albums and the album list.
	Invalidate(ctx context.Context, albumIDs ...int64) error
	Close() error
}

type redisAlbumCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAlbumCache connects to Redis and verifies the connection.
func NewRedisAlbumCache(ctx context.Context, redisURL, password string, ttl time.Duration) (AlbumCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewAlbumCacheWithClient(client, ttl), nil
}

// NewAlbumCacheWithClient wraps an existing client.
func NewAlbumCacheWithClient(client *redis.Client, ttl time.Duration) AlbumCache {
	return &redisAlbumCache{client: client, ttl: ttl}
}

func albumKey(albumID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, albumID)
}

func (c *redisAlbumCache) GetAlbum(ctx context.Context, albumID int64) (*models.Album, error) {
	var album models.Album
	if err := c.get(ctx, albumKey(albumID), &album); err != nil {
		return nil, err
	}
	return &album, nil
}

func (c *redisAlbumCache) SetAlbum(ctx context.Context, album *models.Album) error {
	return c.set(ctx, albumKey(album.ID), album)
}

func (c *redisAlbumCache) GetAlbumList(ctx context.Context) ([]models.Album, error) {
	var albums []models.Album
	if err := c.get(ctx, albumListKey, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

func (c *redisAlbumCache) SetAlbumList(ctx context.Context, albums []models.Album) error {
	return c.set(ctx, albumListKey, albums)
}

func (c *redisAlbumCache) Invalidate(ctx context.Context, albumIDs ...int64) error {
	keys := make([]string, 0, len(albumIDs)+1)
	keys = append(keys, albumListKey)
	for _, id := range albumIDs {
		keys = append(keys, albumKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate albums: %w", err)
	}
	return nil
}

func (c *redisAlbumCache) Close() error {
	return c.client.Close()
}

func (c *redisAlbumCache) get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (c *redisAlbumCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// noopAlbumCache is used when Redis is not configured; every read is a miss.
type noopAlbumCache struct{}

func NewNoopAlbumCache() AlbumCache {
	return noopAlbumCache{}
}

func (noopAlbumCache) GetAlbum(context.Context, int64) (*models.Album, error) { return nil, ErrMiss }
func (noopAlbumCache) SetAlbum(context.Context, *models.Album) error { return nil }
func (noopAlbumCache) GetAlbumList(context.Context) ([]models.Album, error) { return nil, ErrMiss }
func (noopAlbumCache) SetAlbumList(context.Context, []models.Album) error { return nil }
func (noopAlbumCache) Invalidate(context.Context, ...int64) error { return nil }
func (noopAlbumCache) Close() error { return nil }
