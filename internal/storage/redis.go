package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisKV backs the key-value store with Redis for deployments that want
// debt records to survive restarts.
type RedisKV struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisKV connects to the Redis instance at addr.
func NewRedisKV(addr string) *RedisKV {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisKV{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisKV) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisKV) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Close releases the client connection.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
