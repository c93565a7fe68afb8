package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/devconnect/internal/model"
	"github.com/d60-Lab/devconnect/pkg/logger"
)

const feedKey = "feed:posts"

// FeedCache 帖子列表的整页缓存；任何写操作后失效。
// 缓存不可用时调用方直接回落到数据库读。
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

func (c *FeedCache) Get(ctx context.Context) ([]*model.Post, bool) {
	data, err := c.rdb.Get(ctx, feedKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("feed cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var posts []*model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

func (c *FeedCache) Set(ctx context.Context, posts []*model.Post) {
	payload, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, feedKey, payload, c.ttl).Err(); err != nil {
		logger.Warn("feed cache write failed", zap.Error(err))
	}
}

func (c *FeedCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, feedKey).Err(); err != nil {
		logger.Warn("feed cache invalidate failed", zap.Error(err))
	}
}
