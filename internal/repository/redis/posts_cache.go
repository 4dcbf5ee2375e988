package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const PostsCacheKey = "posts:feed"

// PostsCacheRepository 缓存外部抓取到的帖子列表，避免每次请求都打抓取服务。
type PostsCacheRepository struct {
	RDB *redis.Client
	TTL time.Duration
}

// Get 读取缓存的帖子列表；未命中返回 (nil, false, nil)。
func (r *PostsCacheRepository) Get(ctx context.Context) ([]string, bool, error) {
	data, err := r.RDB.Get(ctx, PostsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var posts []string
	if err := json.Unmarshal(data, &posts); err != nil {
		// 缓存内容损坏按未命中处理，下次 Set 会覆盖
		return nil, false, nil
	}
	return posts, true, nil
}

func (r *PostsCacheRepository) Set(ctx context.Context, posts []string) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, PostsCacheKey, data, r.TTL).Err()
}
