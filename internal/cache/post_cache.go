package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/social-platform/internal/domain"
)

// PostCache is an explicit cache-aside layer over post lookups. Entries expire
// after the configured TTL; writes refresh the entry and deletes evict it.
// A nil client disables caching entirely.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPostCache constructs the cache.
func NewPostCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PostCache {
	return &PostCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached post and whether it was present. Cache failures are
// treated as misses; the store stays authoritative.
func (pc *PostCache) Get(ctx context.Context, id int64) (*domain.Post, bool) {
	if pc == nil || pc.client == nil {
		return nil, false
	}

	raw, err := pc.client.Get(ctx, postKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			pc.logger.Warn("post cache get failed", zap.Int64("post_id", id), zap.Error(err))
		}
		return nil, false
	}

	var post domain.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		pc.logger.Warn("post cache entry corrupt", zap.Int64("post_id", id), zap.Error(err))
		return nil, false
	}
	return &post, true
}

// Set stores or refreshes the cached post.
func (pc *PostCache) Set(ctx context.Context, post *domain.Post) {
	if pc == nil || pc.client == nil || post == nil {
		return
	}

	raw, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := pc.client.Set(ctx, postKey(post.ID), raw, pc.ttl).Err(); err != nil {
		pc.logger.Warn("post cache set failed", zap.Int64("post_id", post.ID), zap.Error(err))
	}
}

// Evict removes the cached post.
func (pc *PostCache) Evict(ctx context.Context, id int64) {
	if pc == nil || pc.client == nil {
		return
	}
	if err := pc.client.Del(ctx, postKey(id)).Err(); err != nil {
		pc.logger.Warn("post cache evict failed", zap.Int64("post_id", id), zap.Error(err))
	}
}

func postKey(id int64) string {
	return fmt.Sprintf("post:%d", id)
}
