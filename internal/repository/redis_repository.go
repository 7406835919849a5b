package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redis_v9 "github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	client *redis_v9.Client
}

func NewRedisRepository(client *redis_v9.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) SaveStructCached(ctx context.Context, key string, model any, ttl time.Duration) (bool, error) {
	val, err := json.Marshal(model)
	if err != nil {
		return false, fmt.Errorf("error saving struct to cache: %s", err)
	}
	if err := r.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return false, fmt.Errorf("error saving struct to cache: %s", err)
	}
	return true, nil
}

func (r *RedisRepository) GetStructCached(ctx context.Context, key string, model any) error {
	encoded, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("error get struct in cache: %s", err)
	}
	return json.Unmarshal(encoded, model)
}

func (r *RedisRepository) SaveInt(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, fmt.Errorf("error saving int64 value to cache: %s", err)
	}
	return true, nil
}

func (r *RedisRepository) GetInt(ctx context.Context, key string) int64 {
	value, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return value
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// BlacklistToken remembers a revoked credential until it would have expired
// anyway; Exists answers logout-aware token checks.
func (r *RedisRepository) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	key := "blacklist:" + token
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, key, 1, ttl).Err(); err != nil {
		log.Printf("error blacklisting token: %s", err)
		return err
	}
	return nil
}

func (r *RedisRepository) IsTokenBlacklisted(ctx context.Context, token string) bool {
	n, err := r.client.Exists(ctx, "blacklist:"+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
