package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

// CachedResponse is a finished proxy response as stored at the edge: the
// encoded bytes plus every header the handler needs to replay it.
type CachedResponse struct {
	Body         []byte `json:"body"`
	ContentType  string `json:"content_type"`
	CacheControl string `json:"cache_control"`
	ETag         string `json:"etag"`
	LastModified string `json:"last_modified"`
}

// Key derives the cache key for one transformation. Callers pass the
// operations string joined with the full source URL, query string included,
// so every distinct (operations, source) pair keys its own entry.
func Key(request string) string {
	return fmt.Sprintf("imgproxy-%x", xxhash.Sum64String(request))
}

type ResponseStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func (s *ResponseStore) Get(ctx context.Context, key string) (*CachedResponse, error) {
	data, err := s.rdb.Get(ctx, key).Result()
	switch {
	case err == redis.Nil, data == "":
	case err != nil:
		return nil, err
	}

	if data != "" {
		var res CachedResponse
		if err := json.Unmarshal([]byte(data), &res); err != nil {
			return nil, err
		}
		return &res, nil
	}

	return nil, nil
}

func (s *ResponseStore) Set(ctx context.Context, key string, res *CachedResponse) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}

	return s.rdb.SetEx(ctx, key, data, s.ttl).Err()
}

func (s *ResponseStore) Delete(ctx context.Context, key string) {
	s.rdb.Del(ctx, key)
}
