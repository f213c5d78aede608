package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Storage struct {
	Responses interface {
		Get(context.Context, string) (*CachedResponse, error)
		Set(context.Context, string, *CachedResponse) error
		Delete(context.Context, string)
	}
}

func NewRedisClient(addr, pw string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pw,
		DB:       db,
	})
}

func NewRedisStorage(rdb *redis.Client, ttl time.Duration) Storage {
	return Storage{
		Responses: &ResponseStore{rdb: rdb, ttl: ttl},
	}
}
