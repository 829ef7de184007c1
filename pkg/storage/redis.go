package storage

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
)

// DefaultRedisPrefix namespaces signlib keys in a shared database.
const DefaultRedisPrefix = "signlib:"

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Redis is a KV storing each key as a Redis string.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ KV = (*Redis)(nil)

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultRedisPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  constants.DefaultTimeout,
		ReadTimeout:  constants.DefaultTimeout,
		WriteTimeout: constants.DefaultTimeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapResource("connect", "redis", opts.Addr, err)
	}
	return &Redis{client: client, prefix: opts.Prefix}, nil
}

// Get implements KV.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(key)
		}
		return nil, errors.WrapResource("read", "key", key, err)
	}
	return v, nil
}

// Set implements KV.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return errors.WrapResource("write", "key", key, err)
	}
	return nil
}

// Delete implements KV.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return errors.WrapResource("delete", "key", key, err)
	}
	return nil
}

// Size implements KV by summing STRLEN over the prefixed keys.
func (r *Redis) Size(ctx context.Context) (int64, error) {
	var n int64
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		l, err := r.client.StrLen(ctx, iter.Val()).Result()
		if err != nil {
			return 0, errors.WrapResource("measure", "key", iter.Val(), err)
		}
		n += l
	}
	if err := iter.Err(); err != nil {
		return 0, errors.WrapResource("scan", "redis", r.prefix, err)
	}
	return n, nil
}

// Close implements KV.
func (r *Redis) Close() error {
	return r.client.Close()
}
