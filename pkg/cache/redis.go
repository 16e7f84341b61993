package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// Redis stores msgpack-encoded entries in Redis.
type Redis struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. An empty prefix keeps the default
// "markup:render:".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedis returns a store backed by client.
func NewRedis(client RedisClient, ttl time.Duration, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "markup:render:",
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DialRedis connects to the server at url (redis://host:port/db) and checks
// the connection.
func DialRedis(ctx context.Context, url string, ttl time.Duration, opts ...RedisOption) (*Redis, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	client := redis.NewClient(o)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: ping %s: %w", o.Addr, err)
	}
	return NewRedis(client, ttl, opts...), nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Get loads and decodes the entry stored under key.
func (r *Redis) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return UnmarshalEntry(data)
}

// Set encodes and stores e with the store's TTL.
func (r *Redis) Set(ctx context.Context, key string, e *Entry) error {
	data, err := e.Marshal()
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, r.ttl).Err()
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
